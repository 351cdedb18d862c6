package main

import (
	"net/http"
	"time"

	"kosman/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func listRentalsHandler(c *gin.Context) {
	var rentals []models.Rental
	q := db.Preload("Tenant").Preload("Room")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&rentals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rentals)
}

func getRentalHandler(c *gin.Context) {
	var rental models.Rental
	if err := db.Preload("Tenant").Preload("Room").First(&rental, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "kontrak tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, rental)
}

// createRentalHandler assigns a tenant to a vacant room. The tenant is
// either referenced by id or created inline from the "tenant" payload;
// tenant creation, rental creation and the room status flip run in one
// gorm transaction so a failure leaves nothing behind.
func createRentalHandler(c *gin.Context) {
	var req struct {
		RoomID         uint         `json:"room_id" binding:"required"`
		TenantID       uint         `json:"tenant_id"`
		Tenant         *tenantInput `json:"tenant"`
		Harga          int64        `json:"harga" binding:"required,gt=0"`
		TanggalMulai   time.Time    `json:"tanggal_mulai" binding:"required"`
		TanggalSelesai *time.Time   `json:"tanggal_selesai"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TenantID == 0 && req.Tenant == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant_id atau data penghuni baru wajib diisi"})
		return
	}

	var room models.Room
	if err := db.First(&room, req.RoomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "kamar tidak ditemukan"})
		return
	}
	if room.Status != models.RoomKosong {
		c.JSON(http.StatusConflict, gin.H{"error": "kamar sedang tidak kosong"})
		return
	}

	var rental models.Rental
	err := db.Transaction(func(tx *gorm.DB) error {
		tenantID := req.TenantID
		if tenantID != 0 {
			var tenant models.Tenant
			if err := tx.First(&tenant, tenantID).Error; err != nil {
				return errTenantNotFound
			}
		} else {
			tenant := models.Tenant{
				Nama:    req.Tenant.Nama,
				Telepon: req.Tenant.Telepon,
				Email:   req.Tenant.Email,
				KTP:     req.Tenant.KTP,
				Alamat:  req.Tenant.Alamat,
			}
			if err := tx.Create(&tenant).Error; err != nil {
				return err
			}
			tenantID = tenant.ID
		}

		// Re-check occupancy inside the transaction; the denormalized room
		// status is the fast path, the active-rental count is the truth.
		var active int64
		if err := tx.Model(&models.Rental{}).
			Where("room_id = ? AND status = ?", room.ID, models.RentalAktif).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return errRoomOccupied
		}

		rental = models.Rental{
			TenantID:       tenantID,
			RoomID:         room.ID,
			Harga:          req.Harga,
			TanggalMulai:   req.TanggalMulai,
			TanggalSelesai: req.TanggalSelesai,
			Status:         models.RentalAktif,
		}
		if err := tx.Create(&rental).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("status", models.RoomTerisi).Error
	})
	switch err {
	case nil:
	case errTenantNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "penghuni tidak ditemukan"})
		return
	case errRoomOccupied:
		c.JSON(http.StatusConflict, gin.H{"error": "kamar sudah memiliki kontrak aktif"})
		return
	default:
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "nomor KTP sudah terdaftar"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	db.Preload("Tenant").Preload("Room").First(&rental, rental.ID)
	c.JSON(http.StatusOK, rental)
}

// endRentalHandler closes an active rental and frees the room. Existing
// bills, paid or not, are left untouched.
func endRentalHandler(c *gin.Context) {
	var rental models.Rental
	if err := db.First(&rental, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "kontrak tidak ditemukan"})
		return
	}
	if rental.Status != models.RentalAktif {
		c.JSON(http.StatusConflict, gin.H{"error": "kontrak sudah selesai"})
		return
	}
	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&rental).Updates(map[string]interface{}{
			"status":          models.RentalSelesai,
			"tanggal_selesai": now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).Where("id = ?", rental.RoomID).
			Update("status", models.RoomKosong).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kontrak berhasil diakhiri"})
}

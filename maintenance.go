package main

import (
	"fmt"
	"net/http"
	"time"

	"kosman/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func listMaintenanceHandler(c *gin.Context) {
	var reports []models.Maintenance
	q := db.Preload("Room")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func getMaintenanceHandler(c *gin.Context) {
	var report models.Maintenance
	if err := db.Preload("Room").First(&report, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "laporan tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// createMaintenanceHandler opens a damage report and flags the room as
// under repair.
func createMaintenanceHandler(c *gin.Context) {
	var req struct {
		RoomID    uint   `json:"room_id" binding:"required"`
		Deskripsi string `json:"deskripsi" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var room models.Room
	if err := db.First(&room, req.RoomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "kamar tidak ditemukan"})
		return
	}
	report := models.Maintenance{RoomID: room.ID, Deskripsi: req.Deskripsi, Status: models.MaintDibuka}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("status", models.RoomPerbaikan).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// updateMaintenanceHandler edits a report. Completing one posts its cost as
// a pengeluaran entry and puts the room back to its rental-derived status
// (terisi when an active rental exists, kosong otherwise).
func updateMaintenanceHandler(c *gin.Context) {
	var report models.Maintenance
	if err := db.Preload("Room").First(&report, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "laporan tidak ditemukan"})
		return
	}
	var req struct {
		Petugas *string `json:"petugas"`
		Status  *string `json:"status"`
		Biaya   *int64  `json:"biaya"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]interface{}{}
	if req.Petugas != nil {
		updates["petugas"] = *req.Petugas
	}
	if req.Biaya != nil {
		if *req.Biaya < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "biaya tidak boleh negatif"})
			return
		}
		updates["biaya"] = *req.Biaya
	}
	completing := false
	if req.Status != nil {
		switch *req.Status {
		case models.MaintDibuka, models.MaintDikerjakan, models.MaintSelesai:
			updates["status"] = *req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "status laporan tidak dikenal"})
			return
		}
		completing = *req.Status == models.MaintSelesai && report.Status != models.MaintSelesai
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&report).Updates(updates).Error; err != nil {
				return err
			}
		}
		if !completing {
			return nil
		}
		biaya := report.Biaya
		if req.Biaya != nil {
			biaya = *req.Biaya
		}
		if biaya > 0 {
			trx := models.Transaction{
				Tipe:     models.TrxPengeluaran,
				Jumlah:   biaya,
				Sumber:   fmt.Sprintf("Perbaikan kamar %s", report.Room.NomorKamar),
				Kategori: "perbaikan",
				Tanggal:  time.Now(),
			}
			if err := tx.Create(&trx).Error; err != nil {
				return err
			}
		}
		// Room leaves perbaikan: back to terisi when an active rental
		// exists, kosong otherwise.
		var active int64
		if err := tx.Model(&models.Rental{}).
			Where("room_id = ? AND status = ?", report.RoomID, models.RentalAktif).
			Count(&active).Error; err != nil {
			return err
		}
		newStatus := models.RoomKosong
		if active > 0 {
			newStatus = models.RoomTerisi
		}
		return tx.Model(&models.Room{}).Where("id = ?", report.RoomID).
			Update("status", newStatus).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	db.Preload("Room").First(&report, report.ID)
	c.JSON(http.StatusOK, report)
}

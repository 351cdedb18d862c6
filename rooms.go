package main

import (
	"net/http"

	"kosman/models"

	"github.com/gin-gonic/gin"
)

func listRoomsHandler(c *gin.Context) {
	var rooms []models.Room
	q := db.Model(&models.Room{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("nomor_kamar asc").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func getRoomHandler(c *gin.Context) {
	var room models.Room
	if err := db.First(&room, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "kamar tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func createRoomHandler(c *gin.Context) {
	var req struct {
		NomorKamar string `json:"nomor_kamar" binding:"required"`
		Harga      int64  `json:"harga" binding:"required,gt=0"`
		Fasilitas  string `json:"fasilitas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var existing models.Room
	if err := db.Where("nomor_kamar = ?", req.NomorKamar).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "nomor kamar sudah ada"})
		return
	}
	room := models.Room{NomorKamar: req.NomorKamar, Harga: req.Harga, Fasilitas: req.Fasilitas, Status: models.RoomKosong}
	if err := db.Create(&room).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "nomor kamar sudah ada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func updateRoomHandler(c *gin.Context) {
	var room models.Room
	if err := db.First(&room, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "kamar tidak ditemukan"})
		return
	}
	var req struct {
		NomorKamar *string `json:"nomor_kamar"`
		Harga      *int64  `json:"harga"`
		Fasilitas  *string `json:"fasilitas"`
		Status     *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]interface{}{}
	if req.NomorKamar != nil {
		updates["nomor_kamar"] = *req.NomorKamar
	}
	if req.Harga != nil {
		if *req.Harga <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "harga harus lebih dari 0"})
			return
		}
		updates["harga"] = *req.Harga
	}
	if req.Fasilitas != nil {
		updates["fasilitas"] = *req.Fasilitas
	}
	if req.Status != nil {
		switch *req.Status {
		case models.RoomKosong, models.RoomTerisi, models.RoomPerbaikan:
			updates["status"] = *req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "status kamar tidak dikenal"})
			return
		}
	}
	if len(updates) > 0 {
		if err := db.Model(&room).Updates(updates).Error; err != nil {
			if isUniqueConstraintError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "nomor kamar sudah ada"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
	}
	c.JSON(http.StatusOK, room)
}

func deleteRoomHandler(c *gin.Context) {
	var room models.Room
	if err := db.First(&room, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "kamar tidak ditemukan"})
		return
	}
	var active int64
	db.Model(&models.Rental{}).Where("room_id = ? AND status = ?", room.ID, models.RentalAktif).Count(&active)
	if active > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "tidak bisa hapus kamar yang masih ada kontrak aktif"})
		return
	}
	if err := db.Delete(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kamar berhasil dihapus"})
}

package main

import (
	"net/http"
	"strconv"

	"kosman/models"

	"github.com/gin-gonic/gin"
)

// User management, super_admin only.

func listUsersHandler(c *gin.Context) {
	var users []models.User
	if err := db.Order("id asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func deleteUserHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}
	selfVal, _ := c.Get("user_id")
	if self, ok := selfVal.(uint); ok && self == uint(id) {
		c.JSON(http.StatusConflict, gin.H{"error": "tidak bisa hapus akun sendiri"})
		return
	}
	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user berhasil dihapus"})
}

package main

import (
	"net/http"

	"kosman/models"

	"github.com/gin-gonic/gin"
)

// listCategoriesHandler lists categories, optionally narrowed to those
// usable for a given transaction tipe ("both" categories always match).
func listCategoriesHandler(c *gin.Context) {
	var cats []models.Category
	q := db.Model(&models.Category{})
	if tipe := c.Query("tipe"); tipe != "" {
		q = q.Where("tipe = ? OR tipe = ?", tipe, models.CategoryBoth)
	}
	if err := q.Order("nama asc").Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

func createCategoryHandler(c *gin.Context) {
	var req struct {
		Nama string `json:"nama" binding:"required"`
		Tipe string `json:"tipe" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Tipe != models.TrxPemasukan && req.Tipe != models.TrxPengeluaran && req.Tipe != models.CategoryBoth {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tipe harus pemasukan, pengeluaran, atau both"})
		return
	}
	cat := models.Category{Nama: req.Nama, Tipe: req.Tipe}
	if err := db.Create(&cat).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "kategori sudah ada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

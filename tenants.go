package main

import (
	"net/http"

	"kosman/models"

	"github.com/gin-gonic/gin"
)

func listTenantsHandler(c *gin.Context) {
	var tenants []models.Tenant
	if err := db.Order("nama asc").Find(&tenants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, tenants)
}

func getTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := db.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "penghuni tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// tenantInput is shared between the tenant endpoints and the inline
// new-tenant payload of createRentalHandler.
type tenantInput struct {
	Nama    string `json:"nama" binding:"required"`
	Telepon string `json:"telepon" binding:"required"`
	Email   string `json:"email"`
	KTP     string `json:"ktp" binding:"required"`
	Alamat  string `json:"alamat"`
}

func createTenantHandler(c *gin.Context) {
	var req tenantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tenant := models.Tenant{Nama: req.Nama, Telepon: req.Telepon, Email: req.Email, KTP: req.KTP, Alamat: req.Alamat}
	if err := db.Create(&tenant).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "nomor KTP sudah terdaftar"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func updateTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := db.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "penghuni tidak ditemukan"})
		return
	}
	var req struct {
		Nama    *string `json:"nama"`
		Telepon *string `json:"telepon"`
		Email   *string `json:"email"`
		KTP     *string `json:"ktp"`
		Alamat  *string `json:"alamat"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]interface{}{}
	if req.Nama != nil {
		updates["nama"] = *req.Nama
	}
	if req.Telepon != nil {
		updates["telepon"] = *req.Telepon
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.KTP != nil {
		updates["ktp"] = *req.KTP
	}
	if req.Alamat != nil {
		updates["alamat"] = *req.Alamat
	}
	if len(updates) > 0 {
		if err := db.Model(&tenant).Updates(updates).Error; err != nil {
			if isUniqueConstraintError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "nomor KTP sudah terdaftar"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
	}
	c.JSON(http.StatusOK, tenant)
}

// deleteTenantHandler blocks deletion while any active rental references the
// tenant. Tenants on only historical (selesai) rentals can be removed.
func deleteTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := db.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "penghuni tidak ditemukan"})
		return
	}
	var active int64
	db.Model(&models.Rental{}).Where("tenant_id = ? AND status = ?", tenant.ID, models.RentalAktif).Count(&active)
	if active > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "tidak bisa hapus penghuni yang memiliki kontrak aktif"})
		return
	}
	if err := db.Delete(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "penghuni berhasil dihapus"})
}

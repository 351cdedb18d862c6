package main

import (
	"net/http"
	"strconv"
	"time"

	"kosman/models"

	"github.com/gin-gonic/gin"
)

func listTransactionsHandler(c *gin.Context) {
	var trx []models.Transaction
	q := db.Model(&models.Transaction{})
	if tipe := c.Query("tipe"); tipe != "" {
		q = q.Where("tipe = ?", tipe)
	}
	if err := q.Order("tanggal desc, id desc").Find(&trx).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, trx)
}

// recordTransaction appends a ledger entry after checking the category is
// compatible with the entry's tipe. Jumlah is positive regardless of tipe.
func recordTransaction(tipe string, jumlah int64, sumber, kategori string, tanggal time.Time) (*models.Transaction, error) {
	if tipe != models.TrxPemasukan && tipe != models.TrxPengeluaran {
		return nil, errValidation("tipe harus pemasukan atau pengeluaran")
	}
	if jumlah <= 0 {
		return nil, errValidation("jumlah harus lebih dari 0")
	}
	var cat models.Category
	if err := db.Where("nama = ?", kategori).First(&cat).Error; err != nil {
		return nil, errValidation("kategori tidak ditemukan")
	}
	if !cat.CompatibleWith(tipe) {
		return nil, errValidation("kategori tidak sesuai dengan tipe transaksi")
	}
	trx := models.Transaction{Tipe: tipe, Jumlah: jumlah, Sumber: sumber, Kategori: kategori, Tanggal: tanggal}
	if err := db.Create(&trx).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

type validationError string

func (e validationError) Error() string { return string(e) }

func errValidation(msg string) error { return validationError(msg) }

func createTransactionHandler(c *gin.Context) {
	var req struct {
		Tipe     string     `json:"tipe" binding:"required"`
		Jumlah   int64      `json:"jumlah" binding:"required"`
		Sumber   string     `json:"sumber" binding:"required"`
		Kategori string     `json:"kategori" binding:"required"`
		Tanggal  *time.Time `json:"tanggal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tanggal := time.Now()
	if req.Tanggal != nil {
		tanggal = *req.Tanggal
	}
	trx, err := recordTransaction(req.Tipe, req.Jumlah, req.Sumber, req.Kategori, tanggal)
	if err != nil {
		if _, ok := err.(validationError); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, trx)
}

// monthRange returns the half-open [start, end) interval of a month.
func monthRange(bulan, tahun int) (time.Time, time.Time) {
	start := time.Date(tahun, time.Month(bulan), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

// ledgerSummary sums the month's entries split by tipe. Laba may be
// negative.
func ledgerSummary(bulan, tahun int) (pemasukan, pengeluaran int64, err error) {
	start, end := monthRange(bulan, tahun)
	var trx []models.Transaction
	if err = db.Where("tanggal >= ? AND tanggal < ?", start, end).Find(&trx).Error; err != nil {
		return 0, 0, err
	}
	for _, t := range trx {
		if t.Tipe == models.TrxPemasukan {
			pemasukan += t.Jumlah
		} else {
			pengeluaran += t.Jumlah
		}
	}
	return pemasukan, pengeluaran, nil
}

func transactionSummaryHandler(c *gin.Context) {
	now := time.Now()
	bulan := int(now.Month())
	tahun := now.Year()
	if v := c.Query("bulan"); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil || b < 1 || b > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bulan harus 1-12"})
			return
		}
		bulan = b
	}
	if v := c.Query("tahun"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tahun tidak valid"})
			return
		}
		tahun = y
	}
	pemasukan, pengeluaran, err := ledgerSummary(bulan, tahun)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bulan":       bulan,
		"tahun":       tahun,
		"pemasukan":   pemasukan,
		"pengeluaran": pengeluaran,
		"laba":        pemasukan - pengeluaran,
	})
}

package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"kosman/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func listBillsHandler(c *gin.Context) {
	var bills []models.Bill
	q := db.Preload("Rental").Preload("Rental.Tenant").Preload("Rental.Room")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if rentalID := c.Query("rental_id"); rentalID != "" {
		q = q.Where("rental_id = ?", rentalID)
	}
	if err := q.Order("tahun desc, bulan desc, id desc").Find(&bills).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, bills)
}

func getBillHandler(c *gin.Context) {
	var bill models.Bill
	if err := db.Preload("Rental").Preload("Rental.Tenant").Preload("Rental.Room").
		First(&bill, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tagihan tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, bill)
}

// createBillHandler inserts a manual bill: either an extra charge
// (tipe=tambahan) or a hand-entered rent bill subject to the one-sewa-per-
// period rule.
func createBillHandler(c *gin.Context) {
	var req struct {
		RentalID   uint   `json:"rental_id" binding:"required"`
		Bulan      int    `json:"bulan" binding:"required,min=1,max=12"`
		Tahun      int    `json:"tahun" binding:"required,min=2000"`
		Jumlah     int64  `json:"jumlah" binding:"required,gt=0"`
		Tipe       string `json:"tipe"`
		Keterangan string `json:"keterangan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Tipe == "" {
		req.Tipe = models.BillSewa
	}
	if req.Tipe != models.BillSewa && req.Tipe != models.BillTambahan {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tipe tagihan harus sewa atau tambahan"})
		return
	}
	var rental models.Rental
	if err := db.First(&rental, req.RentalID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "kontrak tidak ditemukan"})
		return
	}
	if req.Tipe == models.BillSewa {
		var cnt int64
		db.Model(&models.Bill{}).
			Where("rental_id = ? AND bulan = ? AND tahun = ? AND tipe = ?",
				req.RentalID, req.Bulan, req.Tahun, models.BillSewa).
			Count(&cnt)
		if cnt > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": errDuplicateBill.Error()})
			return
		}
	}
	bill := models.Bill{
		RentalID:   req.RentalID,
		Bulan:      req.Bulan,
		Tahun:      req.Tahun,
		Jumlah:     req.Jumlah,
		Tipe:       req.Tipe,
		Status:     models.BillBelumBayar,
		Keterangan: req.Keterangan,
	}
	if err := db.Create(&bill).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": errDuplicateBill.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, bill)
}

// generateMonthlyBills creates one sewa bill per active rental for the given
// period, skipping rentals that already have one. Each insert is its own
// unit: one failure is collected and the batch continues. Re-running within
// the same period is a no-op for already-billed rentals.
func generateMonthlyBills(bulan, tahun int) (created, skipped int, errs []string) {
	var rentals []models.Rental
	if err := db.Where("status = ?", models.RentalAktif).Find(&rentals).Error; err != nil {
		return 0, 0, []string{err.Error()}
	}
	for _, rental := range rentals {
		var cnt int64
		if err := db.Model(&models.Bill{}).
			Where("rental_id = ? AND bulan = ? AND tahun = ? AND tipe = ?",
				rental.ID, bulan, tahun, models.BillSewa).
			Count(&cnt).Error; err != nil {
			errs = append(errs, fmt.Sprintf("kontrak %d: %v", rental.ID, err))
			continue
		}
		if cnt > 0 {
			skipped++
			continue
		}
		bill := models.Bill{
			RentalID: rental.ID,
			Bulan:    bulan,
			Tahun:    tahun,
			Jumlah:   rental.Harga,
			Tipe:     models.BillSewa,
			Status:   models.BillBelumBayar,
		}
		if err := db.Create(&bill).Error; err != nil {
			if isUniqueConstraintError(err) {
				// lost a race with a concurrent generate; the bill exists
				skipped++
				continue
			}
			errs = append(errs, fmt.Sprintf("kontrak %d: %v", rental.ID, err))
			continue
		}
		created++
	}
	return created, skipped, errs
}

func generateMonthlyBillsHandler(c *gin.Context) {
	now := time.Now()
	created, skipped, errs := generateMonthlyBills(int(now.Month()), now.Year())
	resp := gin.H{
		"bulan":   int(now.Month()),
		"tahun":   now.Year(),
		"created": created,
		"skipped": skipped,
	}
	if len(errs) > 0 {
		resp["errors"] = errs
		log.Printf("generate-monthly: %d created, %d skipped, %d errors", created, skipped, len(errs))
	}
	c.JSON(http.StatusOK, resp)
}

// markBillPaid flips a bill belum_bayar -> lunas and posts the mirroring
// income entry to the ledger. Both writes run in one gorm transaction: a
// bill is never lunas without its ledger entry. The transition is one-way;
// a second call is a conflict, never a silent success.
func markBillPaid(billID uint, caraBayar string, now time.Time) (*models.Bill, error) {
	var bill models.Bill
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Rental").Preload("Rental.Room").
			First(&bill, billID).Error; err != nil {
			return gorm.ErrRecordNotFound
		}
		if bill.Status == models.BillLunas {
			return errBillPaid
		}
		if err := tx.Model(&bill).Updates(map[string]interface{}{
			"status":        models.BillLunas,
			"tanggal_bayar": now,
			"cara_bayar":    caraBayar,
		}).Error; err != nil {
			return err
		}
		billID := bill.ID
		trx := models.Transaction{
			Tipe:     models.TrxPemasukan,
			Jumlah:   bill.Jumlah,
			Sumber:   fmt.Sprintf("Pembayaran sewa kamar %s", bill.Rental.Room.NomorKamar),
			Kategori: "sewa",
			Tanggal:  now,
			BillID:   &billID,
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		return nil, err
	}
	bill.Status = models.BillLunas
	bill.TanggalBayar = &now
	bill.CaraBayar = caraBayar
	return &bill, nil
}

func markBillPaidHandler(c *gin.Context) {
	caraBayar := c.Query("cara_bayar")
	if caraBayar != models.BayarTunai && caraBayar != models.BayarNonTunai {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cara_bayar harus tunai atau non_tunai"})
		return
	}
	var bill models.Bill
	if err := db.First(&bill, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tagihan tidak ditemukan"})
		return
	}
	paid, err := markBillPaid(bill.ID, caraBayar, time.Now())
	switch err {
	case nil:
	case errBillPaid:
		c.JSON(http.StatusConflict, gin.H{"error": errBillPaid.Error()})
		return
	case gorm.ErrRecordNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "tagihan tidak ditemukan"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menandai lunas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tagihan berhasil ditandai lunas", "bill": paid})
}

package main

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"kosman/models"

	"github.com/gin-gonic/gin"
)

// dashboardHandler is a pure read-side projection over the other entities,
// recomputed on every request. It owns no state of its own.
func dashboardHandler(c *gin.Context) {
	var terisi, kosong int64
	db.Model(&models.Room{}).Where("status = ?", models.RoomTerisi).Count(&terisi)
	db.Model(&models.Room{}).Where("status = ?", models.RoomKosong).Count(&kosong)

	var unpaidCount int64
	db.Model(&models.Bill{}).Where("status = ?", models.BillBelumBayar).Count(&unpaidCount)

	now := time.Now()
	pemasukan, _, err := ledgerSummary(int(now.Month()), now.Year())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	var openReports int64
	db.Model(&models.Maintenance{}).Where("status <> ?", models.MaintSelesai).Count(&openReports)

	var unpaidBills []models.Bill
	db.Preload("Rental").Preload("Rental.Tenant").Preload("Rental.Room").
		Where("status = ?", models.BillBelumBayar).
		Order("tahun desc, bulan desc").Limit(50).Find(&unpaidBills)
	tagihan := make([]gin.H, 0, len(unpaidBills))
	for _, b := range unpaidBills {
		tagihan = append(tagihan, gin.H{
			"id":          b.ID,
			"bulan":       b.Bulan,
			"tahun":       b.Tahun,
			"jumlah":      b.Jumlah,
			"tipe":        b.Tipe,
			"penghuni":    b.Rental.Tenant.Nama,
			"nomor_kamar": b.Rental.Room.NomorKamar,
		})
	}

	var vacantRooms []models.Room
	db.Where("status = ?", models.RoomKosong).Order("nomor_kamar asc").Find(&vacantRooms)

	c.JSON(http.StatusOK, gin.H{
		"jumlah_kamar_terisi":        terisi,
		"jumlah_kamar_kosong":        kosong,
		"jumlah_tagihan_belum_bayar": unpaidCount,
		"pemasukan_bulan_ini":        pemasukan,
		"jumlah_laporan_kerusakan":   openReports,
		"tagihan_belum_bayar":        tagihan,
		"kamar_kosong":               vacantRooms,
		"aktivitas_terbaru":          recentActivity(),
	})
}

type activity struct {
	Tipe      string    `json:"tipe"`
	Deskripsi string    `json:"deskripsi"`
	Jumlah    int64     `json:"jumlah,omitempty"`
	Status    string    `json:"status,omitempty"`
	Tanggal   time.Time `json:"tanggal"`
}

// recentActivity merges the latest ledger entries and maintenance reports
// into one feed, newest first, capped at 10.
func recentActivity() []activity {
	var trx []models.Transaction
	db.Order("tanggal desc").Limit(5).Find(&trx)
	var reports []models.Maintenance
	db.Preload("Room").Order("created_at desc").Limit(5).Find(&reports)

	feed := make([]activity, 0, len(trx)+len(reports))
	for _, t := range trx {
		feed = append(feed, activity{
			Tipe:      "transaksi",
			Deskripsi: t.Sumber,
			Jumlah:    t.Jumlah,
			Tanggal:   t.Tanggal,
		})
	}
	for _, m := range reports {
		feed = append(feed, activity{
			Tipe:      "perbaikan",
			Deskripsi: fmt.Sprintf("Perbaikan kamar %s: %s", m.Room.NomorKamar, m.Deskripsi),
			Status:    m.Status,
			Tanggal:   m.CreatedAt,
		})
	}
	sort.Slice(feed, func(i, j int) bool { return feed[i].Tanggal.After(feed[j].Tanggal) })
	if len(feed) > 10 {
		feed = feed[:10]
	}
	return feed
}

package models

import "time"

// Bill status and type values.
const (
	BillBelumBayar = "belum_bayar"
	BillLunas      = "lunas"

	BillSewa     = "sewa"
	BillTambahan = "tambahan"

	BayarTunai    = "tunai"
	BayarNonTunai = "non_tunai"
)

// Bill is one period's payment obligation for a rental (tagihan).
// Sewa bills are unique per (rental_id, bulan, tahun); the partial unique
// index backing that lives in db.go because GORM tags cannot express it.
// The only mutation after creation is the one-way belum_bayar -> lunas
// transition performed by the mark-paid handler.
type Bill struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`
	RentalID     uint       `gorm:"index;not null" json:"rental_id"`
	Rental       Rental     `gorm:"foreignKey:RentalID" json:"rental,omitempty"`
	Bulan        int        `gorm:"not null" json:"bulan"`
	Tahun        int        `gorm:"not null" json:"tahun"`
	Jumlah       int64      `gorm:"not null" json:"jumlah"`
	Tipe         string     `gorm:"size:16;not null;default:sewa" json:"tipe"`
	Status       string     `gorm:"size:16;not null;default:belum_bayar;index" json:"status"`
	Keterangan   string     `gorm:"size:255" json:"keterangan,omitempty"`
	TanggalBayar *time.Time `json:"tanggal_bayar,omitempty"`
	CaraBayar    string     `gorm:"size:16" json:"cara_bayar,omitempty"`
	BuktiBayar   string     `gorm:"size:255" json:"bukti_bayar,omitempty"`
}

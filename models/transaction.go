package models

import "time"

// Transaction type values.
const (
	TrxPemasukan   = "pemasukan"
	TrxPengeluaran = "pengeluaran"
)

// Transaction is one append-only ledger entry. Jumlah is always positive;
// the sign is carried by Tipe. Entries are immutable once created.
// BillID links settlement-generated income back to its source bill for
// reconciliation; manual entries leave it nil.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Tipe      string    `gorm:"size:16;not null;index" json:"tipe"`
	Jumlah    int64     `gorm:"not null" json:"jumlah"`
	Sumber    string    `gorm:"size:255;not null" json:"sumber"`
	Kategori  string    `gorm:"size:64;not null" json:"kategori"`
	Tanggal   time.Time `gorm:"not null;index" json:"tanggal"`
	BillID    *uint     `gorm:"index" json:"bill_id,omitempty"`
}

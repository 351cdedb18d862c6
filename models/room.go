package models

import "time"

// Room status values. Status is maintained by the rental and maintenance
// lifecycle and stored denormalized for cheap occupancy lookups.
const (
	RoomKosong    = "kosong"
	RoomTerisi    = "terisi"
	RoomPerbaikan = "perbaikan"
)

// Room is one rentable kost room.
type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
	NomorKamar string    `gorm:"size:32;not null;uniqueIndex" json:"nomor_kamar"`
	Harga      int64     `gorm:"not null" json:"harga"` // monthly price, whole rupiah
	Fasilitas  string    `gorm:"size:512" json:"fasilitas"`
	Status     string    `gorm:"size:16;not null;default:kosong;index" json:"status"`
}

package models

import "time"

// Rental status values.
const (
	RentalAktif   = "aktif"
	RentalSelesai = "selesai"
)

// Rental binds one tenant to one room for a price and period (kontrak).
// Harga is a snapshot taken at signing and may diverge from the room's
// current price. At most one aktif rental exists per room.
type Rental struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"-"`
	TenantID       uint       `gorm:"index;not null" json:"tenant_id"`
	Tenant         Tenant     `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	RoomID         uint       `gorm:"index;not null" json:"room_id"`
	Room           Room       `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Harga          int64      `gorm:"not null" json:"harga"`
	TanggalMulai   time.Time  `gorm:"not null" json:"tanggal_mulai"`
	TanggalSelesai *time.Time `json:"tanggal_selesai,omitempty"`
	Status         string     `gorm:"size:16;not null;default:aktif;index" json:"status"`
}

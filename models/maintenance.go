package models

import "time"

// Maintenance status values.
const (
	MaintDibuka     = "dibuka"
	MaintDikerjakan = "dikerjakan"
	MaintSelesai    = "selesai"
)

// Maintenance is a damage/repair report for a room (laporan kerusakan).
// Completing a report with a cost posts a pengeluaran transaction and
// returns the room to its rental-derived status.
type Maintenance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	RoomID    uint      `gorm:"index;not null" json:"room_id"`
	Room      Room      `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Deskripsi string    `gorm:"size:512;not null" json:"deskripsi"`
	Petugas   string    `gorm:"size:255" json:"petugas,omitempty"`
	Status    string    `gorm:"size:16;not null;default:dibuka;index" json:"status"`
	Biaya     int64     `json:"biaya"`
}

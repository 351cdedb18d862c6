package models

import "time"

// Tenant is a kost resident (penghuni).
type Tenant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
	Nama      string    `gorm:"size:255;not null" json:"nama"`
	Telepon   string    `gorm:"size:32;not null" json:"telepon"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	KTP       string    `gorm:"size:32;not null;uniqueIndex" json:"ktp"`
	Alamat    string    `gorm:"size:512" json:"alamat"`
}

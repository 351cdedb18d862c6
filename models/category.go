package models

import "time"

// CategoryBoth marks a category usable for both transaction types.
const CategoryBoth = "both"

// Category constrains which kategori values a transaction of a given tipe
// may use. Tipe is pemasukan, pengeluaran, or both.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
	Nama      string    `gorm:"size:64;not null;uniqueIndex" json:"nama"`
	Tipe      string    `gorm:"size:16;not null" json:"tipe"`
}

// CompatibleWith reports whether the category may be used for a
// transaction of the given tipe.
func (c Category) CompatibleWith(tipe string) bool {
	return c.Tipe == tipe || c.Tipe == CategoryBoth
}

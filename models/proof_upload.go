package models

import "time"

// ProofUpload records one stored proof-of-payment file for a bill.
// DetectedAmount is filled by the OCR reader (upload handler or the
// proofscan tool) and is advisory only: it never changes the bill.
type ProofUpload struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
	BillID         uint      `gorm:"index;not null" json:"bill_id"`
	Bill           Bill      `gorm:"foreignKey:BillID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FileName       string    `gorm:"size:255;not null" json:"file_name"`
	StorePath      string    `gorm:"size:512" json:"store_path"` // public relative path under /uploads
	ContentType    string    `gorm:"size:128" json:"content_type"`
	DetectedAmount int64     `json:"detected_amount"`
	// Failed marks uploads the OCR reader could not process; the record is
	// kept so an admin can review the proof manually.
	Failed       bool   `gorm:"default:false;index" json:"failed"`
	FailedReason string `gorm:"size:255" json:"failed_reason,omitempty"`
}

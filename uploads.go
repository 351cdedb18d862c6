package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"kosman/models"
	"kosman/pkg/ocr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxProofSize = 5 * 1024 * 1024 // 5MB

// allowedProofExts are the accepted proof-of-payment formats.
var allowedProofExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// proofOCREnabled gates the Tesseract pass; off by default so deployments
// without the tesseract runtime still accept uploads.
func proofOCREnabled() bool {
	return os.Getenv("PROOF_OCR") == "1"
}

// uploadProofHandler stores a proof-of-payment file for a bill. Size and
// type are rejected before anything touches disk, and the bill row is only
// updated after the file is fully written. The attachment is optional and
// never required for a bill to count as settled.
func uploadProofHandler(c *gin.Context) {
	var bill models.Bill
	if err := db.First(&bill, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tagihan tidak ditemukan"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file wajib diisi"})
		return
	}
	if file.Size > maxProofSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ukuran file maksimal 5MB"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedProofExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format file harus gambar atau PDF"})
		return
	}

	fileName := fmt.Sprintf("%d_%s%s", bill.ID, uuid.NewString(), ext)
	fullPath := filepath.Join(uploadBaseDir(), fileName)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	up := models.ProofUpload{
		BillID:      bill.ID,
		FileName:    fileName,
		StorePath:   "uploads/" + fileName,
		ContentType: file.Header.Get("Content-Type"),
	}
	if proofOCREnabled() && ext != ".pdf" {
		if amt, conf, _, err := ocr.ExtractAmountFromImage(fullPath); err == nil && conf > 0.15 {
			up.DetectedAmount = amt
		} else if err != nil {
			up.Failed = true
			up.FailedReason = err.Error()
			log.Printf("proof OCR failed for %s: %v", fileName, err)
		}
	}
	if err := db.Create(&up).Error; err != nil {
		_ = os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	if err := db.Model(&bill).Update("bukti_bayar", fileName).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	resp := gin.H{"filename": fileName, "message": "bukti bayar berhasil diupload"}
	if up.DetectedAmount > 0 && up.DetectedAmount != bill.Jumlah {
		resp["selisih"] = gin.H{
			"jumlah_tagihan":    bill.Jumlah,
			"jumlah_terdeteksi": up.DetectedAmount,
		}
	}
	c.JSON(http.StatusOK, resp)
}

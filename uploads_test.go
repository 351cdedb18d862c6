package main

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kosman/models"
)

func multipartProof(t *testing.T, fieldFile, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", fieldFile)
	if err != nil {
		t.Fatalf("multipart: %v", err)
	}
	fw.Write([]byte(content))
	w.Close()
	return &buf, w.FormDataContentType()
}

func seedBill(t *testing.T, r http.Handler, token string) uint {
	t.Helper()
	_, rentalID := seedRental(t, r, token, "U1", 1300000)
	now := time.Now()
	resp := postJSON(r, "/api/bills", map[string]any{
		"rental_id": rentalID, "bulan": int(now.Month()), "tahun": now.Year(), "jumlah": 1300000,
	}, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("seed bill failed: %s", resp.Body.String())
	}
	return uint(decodeBody(t, resp)["id"].(float64))
}

func TestUploadProof(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	billID := seedBill(t, r, admin)

	body, ctype := multipartProof(t, "bukti.png", "fake png bytes")
	resp := performRequest(r, http.MethodPost, fmt.Sprintf("/api/bills/%d/upload", billID), body, admin, ctype)
	if resp.Code != http.StatusOK {
		t.Fatalf("upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	out := decodeBody(t, resp)
	fileName, _ := out["filename"].(string)
	if fileName == "" {
		t.Fatalf("no filename in response: %v", out)
	}
	if _, err := os.Stat(filepath.Join(uploadBaseDir(), fileName)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	var bill models.Bill
	db.First(&bill, billID)
	if bill.BuktiBayar != fileName {
		t.Fatalf("bukti_bayar not set, got %q", bill.BuktiBayar)
	}
	var up models.ProofUpload
	if err := db.Where("bill_id = ?", billID).First(&up).Error; err != nil {
		t.Fatalf("proof record missing: %v", err)
	}
	if up.FileName != fileName {
		t.Fatalf("proof record filename %q != %q", up.FileName, fileName)
	}
}

func TestUploadProofRejectsBadFiles(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	billID := seedBill(t, r, admin)

	// wrong extension
	body, ctype := multipartProof(t, "bukti.txt", "not an image")
	resp := performRequest(r, http.MethodPost, fmt.Sprintf("/api/bills/%d/upload", billID), body, admin, ctype)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for .txt got %d", resp.Code)
	}

	// oversized file
	big := make([]byte, maxProofSize+1)
	body, ctype = multipartProof(t, "bukti.jpg", string(big))
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/api/bills/%d/upload", billID), body, admin, ctype)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized file got %d", resp.Code)
	}

	// missing file part
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/api/bills/%d/upload", billID), nil, admin, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file got %d", resp.Code)
	}

	// unknown bill
	body, ctype = multipartProof(t, "bukti.png", "x")
	resp = performRequest(r, http.MethodPost, "/api/bills/9999/upload", body, admin, ctype)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown bill got %d", resp.Code)
	}

	// nothing was attached and nothing was written
	var bill models.Bill
	db.First(&bill, billID)
	if bill.BuktiBayar != "" {
		t.Fatalf("bukti_bayar set after rejected uploads: %q", bill.BuktiBayar)
	}
	entries, _ := os.ReadDir(uploadBaseDir())
	if len(entries) != 0 {
		t.Fatalf("upload dir not empty after rejected uploads: %d files", len(entries))
	}
}

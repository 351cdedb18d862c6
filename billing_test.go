package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"kosman/models"
)

func TestGenerateMonthlyIdempotent(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	seedRental(t, r, admin, "A1", 1500000)
	seedRental(t, r, admin, "A2", 1750000)

	resp := postJSON(r, "/api/bills/generate-monthly", nil, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("generate failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	body := decodeBody(t, resp)
	if body["created"].(float64) != 2 || body["skipped"].(float64) != 0 {
		t.Fatalf("first run expected created=2 skipped=0 got %v", body)
	}

	// re-running in the same period creates nothing
	resp = postJSON(r, "/api/bills/generate-monthly", nil, admin)
	body = decodeBody(t, resp)
	if body["created"].(float64) != 0 || body["skipped"].(float64) != 2 {
		t.Fatalf("second run expected created=0 skipped=2 got %v", body)
	}

	var cnt int64
	db.Model(&models.Bill{}).Count(&cnt)
	if cnt != 2 {
		t.Fatalf("expected 2 bills total got %d", cnt)
	}

	// bill amount is the rental's snapshot price
	var bill models.Bill
	db.Preload("Rental").First(&bill)
	if bill.Jumlah != bill.Rental.Harga {
		t.Fatalf("bill amount %d != rental price %d", bill.Jumlah, bill.Rental.Harga)
	}
	if bill.Status != models.BillBelumBayar || bill.Tipe != models.BillSewa {
		t.Fatalf("unexpected generated bill %+v", bill)
	}
}

func TestGenerateSkipsEndedRentals(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	_, rentalID := seedRental(t, r, admin, "B1", 900000)

	resp := postJSON(r, fmt.Sprintf("/api/rentals/%d/end", rentalID), nil, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("end rental failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	resp = postJSON(r, "/api/bills/generate-monthly", nil, admin)
	body := decodeBody(t, resp)
	if body["created"].(float64) != 0 {
		t.Fatalf("ended rental must not be billed, got %v", body)
	}
}

func TestManualBillSewaPeriodUnique(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	_, rentalID := seedRental(t, r, admin, "C1", 1200000)

	payload := map[string]any{
		"rental_id": rentalID, "bulan": 3, "tahun": 2025, "jumlah": 1200000, "tipe": "sewa",
	}
	resp := postJSON(r, "/api/bills", payload, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("create sewa bill failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = postJSON(r, "/api/bills", payload, admin)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate sewa period got %d", resp.Code)
	}

	// extra charges for the same period are fine, and more than one of them
	extra := map[string]any{
		"rental_id": rentalID, "bulan": 3, "tahun": 2025, "jumlah": 150000,
		"tipe": "tambahan", "keterangan": "denda keterlambatan",
	}
	for i := 0; i < 2; i++ {
		resp = postJSON(r, "/api/bills", extra, admin)
		if resp.Code != http.StatusOK {
			t.Fatalf("tambahan #%d failed status=%d body=%s", i+1, resp.Code, resp.Body.String())
		}
	}
}

func TestMarkPaidPostsIncomeOnce(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	_, rentalID := seedRental(t, r, admin, "D7", 2000000)

	now := time.Now()
	resp := postJSON(r, "/api/bills", map[string]any{
		"rental_id": rentalID, "bulan": int(now.Month()), "tahun": now.Year(), "jumlah": 2000000,
	}, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("create bill failed: %s", resp.Body.String())
	}
	billID := uint(decodeBody(t, resp)["id"].(float64))

	// invalid payment method is rejected before any write
	resp = postJSON(r, fmt.Sprintf("/api/bills/%d/mark-paid?cara_bayar=transfer", billID), nil, admin)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad cara_bayar got %d", resp.Code)
	}

	resp = postJSON(r, fmt.Sprintf("/api/bills/%d/mark-paid?cara_bayar=tunai", billID), nil, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("mark-paid failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	var bill models.Bill
	db.First(&bill, billID)
	if bill.Status != models.BillLunas || bill.CaraBayar != models.BayarTunai || bill.TanggalBayar == nil {
		t.Fatalf("bill not settled properly: %+v", bill)
	}

	var trxs []models.Transaction
	db.Where("bill_id = ?", billID).Find(&trxs)
	if len(trxs) != 1 {
		t.Fatalf("expected exactly one ledger entry, got %d", len(trxs))
	}
	trx := trxs[0]
	if trx.Tipe != models.TrxPemasukan || trx.Jumlah != 2000000 || trx.Kategori != "sewa" {
		t.Fatalf("unexpected ledger entry %+v", trx)
	}
	if trx.Sumber != "Pembayaran sewa kamar D7" {
		t.Fatalf("unexpected sumber %q", trx.Sumber)
	}

	// the month summary reflects the settlement
	resp = performRequest(r, http.MethodGet, "/api/transactions/summary", nil, admin, "")
	sum := decodeBody(t, resp)
	if sum["pemasukan"].(float64) != 2000000 || sum["laba"].(float64) != 2000000 {
		t.Fatalf("summary not updated after settlement: %v", sum)
	}

	// settling again is a conflict and the ledger stays unchanged
	resp = postJSON(r, fmt.Sprintf("/api/bills/%d/mark-paid?cara_bayar=tunai", billID), nil, admin)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for already-paid bill got %d", resp.Code)
	}
	var cnt int64
	db.Model(&models.Transaction{}).Count(&cnt)
	if cnt != 1 {
		t.Fatalf("ledger changed on rejected settlement, %d entries", cnt)
	}
}

func TestMarkPaidUnknownBill(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	resp := postJSON(r, "/api/bills/9999/mark-paid?cara_bayar=tunai", nil, admin)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

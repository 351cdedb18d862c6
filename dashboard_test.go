package main

import (
	"fmt"
	"net/http"
	"testing"
)

func TestDashboardRollups(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)

	// two occupied rooms, one vacant
	seedRental(t, r, admin, "K1", 1000000)
	_, rental2 := seedRental(t, r, admin, "K2", 1200000)
	postJSON(r, "/api/rooms", map[string]any{"nomor_kamar": "K3", "harga": 900000}, admin)

	// bill both rentals, settle one
	resp := postJSON(r, "/api/bills/generate-monthly", nil, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("generate failed: %s", resp.Body.String())
	}
	var billID uint
	{
		resp = performRequest(r, http.MethodGet, fmt.Sprintf("/api/bills?rental_id=%d", rental2), nil, admin, "")
		var bills []struct {
			ID uint `json:"id"`
		}
		mustDecodeList(t, resp.Body.Bytes(), &bills)
		if len(bills) != 1 {
			t.Fatalf("expected one bill for rental %d got %d", rental2, len(bills))
		}
		billID = bills[0].ID
	}
	resp = postJSON(r, fmt.Sprintf("/api/bills/%d/mark-paid?cara_bayar=non_tunai", billID), nil, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("mark-paid failed: %s", resp.Body.String())
	}

	// one open damage report on the vacant room
	resp = performRequest(r, http.MethodGet, "/api/rooms?status=kosong", nil, admin, "")
	var vacant []struct {
		ID uint `json:"id"`
	}
	mustDecodeList(t, resp.Body.Bytes(), &vacant)
	if len(vacant) != 1 {
		t.Fatalf("expected one vacant room got %d", len(vacant))
	}
	postJSON(r, "/api/maintenance", map[string]any{"room_id": vacant[0].ID, "deskripsi": "lampu mati"}, admin)

	resp = performRequest(r, http.MethodGet, "/api/dashboard", nil, admin, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("dashboard failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	dash := decodeBody(t, resp)

	if dash["jumlah_kamar_terisi"].(float64) != 2 {
		t.Fatalf("jumlah_kamar_terisi = %v", dash["jumlah_kamar_terisi"])
	}
	// K3 is now perbaikan, so no room counts as kosong
	if dash["jumlah_kamar_kosong"].(float64) != 0 {
		t.Fatalf("jumlah_kamar_kosong = %v", dash["jumlah_kamar_kosong"])
	}
	if dash["jumlah_tagihan_belum_bayar"].(float64) != 1 {
		t.Fatalf("jumlah_tagihan_belum_bayar = %v", dash["jumlah_tagihan_belum_bayar"])
	}
	if dash["pemasukan_bulan_ini"].(float64) != 1200000 {
		t.Fatalf("pemasukan_bulan_ini = %v", dash["pemasukan_bulan_ini"])
	}
	if dash["jumlah_laporan_kerusakan"].(float64) != 1 {
		t.Fatalf("jumlah_laporan_kerusakan = %v", dash["jumlah_laporan_kerusakan"])
	}

	unpaid, ok := dash["tagihan_belum_bayar"].([]any)
	if !ok || len(unpaid) != 1 {
		t.Fatalf("tagihan_belum_bayar = %v", dash["tagihan_belum_bayar"])
	}
	first := unpaid[0].(map[string]any)
	if first["nomor_kamar"] != "K1" || first["penghuni"] != "Penghuni K1" {
		t.Fatalf("unexpected unpaid bill row %v", first)
	}

	feed, ok := dash["aktivitas_terbaru"].([]any)
	if !ok || len(feed) == 0 {
		t.Fatalf("aktivitas_terbaru = %v", dash["aktivitas_terbaru"])
	}
}

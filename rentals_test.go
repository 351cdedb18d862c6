package main

import (
	"fmt"
	"net/http"
	"testing"

	"kosman/models"
)

func TestCreateRentalOccupiedRoom(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	roomID, _ := seedRental(t, r, admin, "E1", 1000000)

	resp := postJSON(r, "/api/rentals", map[string]any{
		"room_id": roomID,
		"harga":   1000000,
		"tenant": map[string]any{
			"nama": "Penghuni Kedua", "telepon": "08129999", "ktp": "3171999", "alamat": "Depok",
		},
		"tanggal_mulai": "2025-02-01T00:00:00Z",
	}, admin)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for occupied room got %d body=%s", resp.Code, resp.Body.String())
	}

	// the failed attempt must leave no tenant or rental behind
	var tenants, rentals int64
	db.Model(&models.Tenant{}).Count(&tenants)
	db.Model(&models.Rental{}).Count(&rentals)
	if tenants != 1 || rentals != 1 {
		t.Fatalf("state changed on rejected rental: tenants=%d rentals=%d", tenants, rentals)
	}
}

func TestCreateRentalUnknownRoomAndTenant(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)

	resp := postJSON(r, "/api/rentals", map[string]any{
		"room_id": 404, "harga": 1000000, "tenant_id": 1,
		"tanggal_mulai": "2025-02-01T00:00:00Z",
	}, admin)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown room got %d", resp.Code)
	}

	roomResp := postJSON(r, "/api/rooms", map[string]any{"nomor_kamar": "F1", "harga": 800000}, admin)
	roomID := uint(decodeBody(t, roomResp)["id"].(float64))

	resp = postJSON(r, "/api/rentals", map[string]any{
		"room_id": roomID, "harga": 800000, "tenant_id": 404,
		"tanggal_mulai": "2025-02-01T00:00:00Z",
	}, admin)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown tenant got %d", resp.Code)
	}

	// neither tenant id nor inline tenant
	resp = postJSON(r, "/api/rentals", map[string]any{
		"room_id": roomID, "harga": 800000, "tanggal_mulai": "2025-02-01T00:00:00Z",
	}, admin)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without tenant got %d", resp.Code)
	}

	// room stays vacant after all the failed attempts
	var room models.Room
	db.First(&room, roomID)
	if room.Status != models.RoomKosong {
		t.Fatalf("room status changed to %q", room.Status)
	}
}

func TestEndRentalThenReRent(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	roomID, rentalID := seedRental(t, r, admin, "G1", 1100000)

	resp := postJSON(r, fmt.Sprintf("/api/rentals/%d/end", rentalID), nil, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("end rental failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	var rental models.Rental
	db.First(&rental, rentalID)
	if rental.Status != models.RentalSelesai || rental.TanggalSelesai == nil {
		t.Fatalf("rental not closed: %+v", rental)
	}
	var room models.Room
	db.First(&room, roomID)
	if room.Status != models.RoomKosong {
		t.Fatalf("room not freed, status=%q", room.Status)
	}

	// ending twice is a conflict
	resp = postJSON(r, fmt.Sprintf("/api/rentals/%d/end", rentalID), nil, admin)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 ending a closed rental got %d", resp.Code)
	}

	// the freed room can be rented again to a new tenant
	resp = postJSON(r, "/api/rentals", map[string]any{
		"room_id": roomID, "harga": 1250000,
		"tenant": map[string]any{
			"nama": "Penghuni Baru", "telepon": "08125555", "ktp": "3171555", "alamat": "Bekasi",
		},
		"tanggal_mulai": "2025-03-01T00:00:00Z",
	}, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("re-rent failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	db.First(&room, roomID)
	if room.Status != models.RoomTerisi {
		t.Fatalf("room not marked terisi after re-rent, status=%q", room.Status)
	}
}

func TestDeleteRoomWithActiveRental(t *testing.T) {
	r := setupTestServer(t)
	admin := adminToken(t)
	roomID, rentalID := seedRental(t, r, admin, "H1", 950000)

	resp := performRequest(r, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", roomID), nil, admin, "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting occupied room got %d", resp.Code)
	}

	var rental models.Rental
	db.First(&rental, rentalID)
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/tenants/%d", rental.TenantID), nil, admin, "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting tenant with active rental got %d", resp.Code)
	}

	// after the rental ends both deletes go through
	postJSON(r, fmt.Sprintf("/api/rentals/%d/end", rentalID), nil, admin)
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", roomID), nil, admin, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete vacant room failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

package main

import "errors"

// Sentinel errors used to map transaction-scoped failures to HTTP codes.
var (
	errTenantNotFound = errors.New("penghuni tidak ditemukan")
	errRoomOccupied   = errors.New("kamar sudah memiliki kontrak aktif")
	errBillPaid       = errors.New("tagihan sudah lunas")
	errDuplicateBill  = errors.New("tagihan sewa untuk periode ini sudah ada")
)

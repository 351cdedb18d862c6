package ocr

import "testing"

func TestParseAmountStripDecimals(t *testing.T) {
	amt, err := ParseAmount("10.000,00")
	if err != nil || amt != 10000 {
		t.Fatalf("expected 10000 got %d err=%v", amt, err)
	}
	amt2, err2 := ParseAmount("7,500.00")
	if err2 != nil || amt2 != 7500 {
		t.Fatalf("expected 7500 got %d err=%v", amt2, err2)
	}
}

func TestParseAmountGrouping(t *testing.T) {
	amt, err := ParseAmount("Rp1.000.000")
	if err != nil || amt != 1000000 {
		t.Fatalf("expected 1000000 got %d err=%v", amt, err)
	}
}

func TestParseAmountEmpty(t *testing.T) {
	if _, err := ParseAmount("   "); err == nil {
		t.Fatal("expected error for blank input")
	}
	if _, err := ParseAmount("Rp"); err == nil {
		t.Fatal("expected error for marker without digits")
	}
}

package ocr

import "strings"

// isPlausibleAmount decides whether a numeric substring likely represents a
// monetary amount rather than a phone number, RRN, or transaction id.
// Currency hints and grouping separators are trusted; bare digit runs must
// be short and round-ish.
func isPlausibleAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	low := strings.ToLower(s)
	if strings.Contains(low, "rp") || strings.Contains(low, "idr") {
		return true
	}
	d := onlyDigits(s)
	if d == "" || d[0] == '0' {
		return false
	}
	if strings.Contains(s, ".") || strings.Contains(s, ",") {
		return len(d) >= 3
	}
	if len(d) < 2 || len(d) > 7 {
		return false
	}
	if len(d) >= 5 && !(strings.HasSuffix(d, "000") || strings.HasSuffix(d, "500")) {
		// irregular mid-size digit runs are usually ids, not rupiah
		return false
	}
	return true
}

package ocr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var centsRE = regexp.MustCompile(`[.,]\d{2}$`)

// ParseAmount normalizes a matched substring into whole rupiah. A trailing
// two-digit decimal part is dropped (10.000,00 -> 10000); every other
// separator is treated as grouping.
func ParseAmount(found string) (int64, error) {
	found = strings.TrimSpace(found)
	if found == "" {
		return 0, fmt.Errorf("empty")
	}
	digits := found
	if centsRE.MatchString(found) {
		digits = found[:len(found)-3]
	}
	digits = onlyDigits(digits)
	if digits == "" {
		return 0, fmt.Errorf("no digits extracted from %q", found)
	}
	amt, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", digits, err)
	}
	if amt < 0 {
		amt = -amt
	}
	return amt, nil
}

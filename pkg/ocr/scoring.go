package ocr

import "strings"

// BestAmount selects the most amount-like candidate. Currency markers and
// grouping separators outrank bare digit runs; ties go to the larger value.
func BestAmount(matches []string) (int64, string, bool) {
	type cand struct {
		amt   int64
		raw   string
		score int
	}
	scoreFor := func(raw string) int {
		s := 0
		low := strings.ToLower(raw)
		if strings.Contains(low, "rp") || strings.Contains(low, "idr") {
			s += 10
		}
		if strings.Contains(low, "total") || strings.Contains(low, "jumlah") {
			s += 8
		}
		if strings.Contains(raw, ".") || strings.Contains(raw, ",") {
			s += 5
		}
		if strings.HasSuffix(raw, ",00") || strings.HasSuffix(raw, ".00") {
			s += 3
		}
		if len(onlyDigits(raw)) >= 4 {
			s++
		}
		return s
	}
	var best *cand
	for _, m := range matches {
		amt, err := ParseAmount(m)
		if err != nil || amt <= 0 {
			continue
		}
		c := cand{amt: amt, raw: m, score: scoreFor(m)}
		if best == nil ||
			c.score > best.score ||
			(c.score == best.score && c.amt > best.amt) ||
			(c.score == best.score && c.amt == best.amt && len(c.raw) > len(best.raw)) {
			v := c
			best = &v
		}
	}
	if best == nil {
		return 0, "", false
	}
	return best.amt, best.raw, true
}

// Package ocr reads the transfer amount out of a proof-of-payment image.
// The result is advisory: callers use it to cross-check a bill's amount,
// never to change it.
package ocr

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// amountPatterns are tried in order over the normalized OCR text. Keyword
// context (jumlah/total/transfer) and explicit Rp/IDR markers come first;
// bare grouped or long digit runs are last-resort candidates.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:jumlah(?:\s+transfer)?|total(?:\s+bayar)?|total pembayaran|transfer)[:\s]*(?:Rp|IDR)?[\s]*([0-9\.,]+)`),
	regexp.MustCompile(`(?i)Rp[\s]*([0-9\.,]+)`),
	regexp.MustCompile(`(?i)IDR[\s]*([0-9\.,]+)`),
	regexp.MustCompile(`([0-9]{1,3}(?:[.,][0-9]{3})+)`),
	regexp.MustCompile(`([0-9]{5,})`),
}

// ExtractAmountFromImage runs light preprocessing plus a Tesseract pass and
// returns the detected amount in whole rupiah with a rough confidence in
// [0,1]. Returns ErrNoAmount when nothing plausible is found.
func ExtractAmountFromImage(path string) (int64, float64, string, error) {
	text, err := readText(path)
	if err != nil {
		return 0, 0, "", err
	}
	matches := findMatches(text)
	if len(matches) == 0 {
		return 0, 0, "", ErrNoAmount
	}
	amt, raw, ok := BestAmount(matches)
	if !ok {
		return 0, 0, "", ErrNoAmount
	}
	log.Printf("ocr: %s candidates=%v chosen=%s amount=%d text=%q", path, matches, raw, amt, snippet(text, 120))

	// Confidence proxy: currency markers and decimal suffixes are strong
	// signals, otherwise scale by how much of the text the match covers.
	conf := float64(len(raw)) / float64(len(text)+1)
	if conf > 1 {
		conf = 1
	}
	low := strings.ToLower(raw)
	if strings.Contains(low, "rp") || strings.Contains(low, "idr") ||
		strings.HasSuffix(low, ",00") || strings.HasSuffix(low, ".00") {
		if conf < 0.85 {
			conf = 0.85
		}
	}
	return amt, conf, raw, nil
}

// findMatches collects candidate amount substrings from OCR text,
// re-attaching a stripped Rp marker so scoring can prioritize it.
func findMatches(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, re := range amountPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			s := strings.TrimSpace(m[1])
			if s == "" {
				continue
			}
			full := strings.ToLower(m[0])
			lowS := strings.ToLower(s)
			if (strings.Contains(full, "rp") || strings.Contains(full, "idr")) &&
				!strings.Contains(lowS, "rp") && !strings.Contains(lowS, "idr") {
				s = "Rp" + s
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			if isPlausibleAmount(s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// readText preprocesses the image (grayscale, upscale small captures) and
// runs Tesseract with a digits-and-currency whitelist.
func readText(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	gray := imaging.Grayscale(img)
	if gray.Bounds().Dy() < 800 {
		gray = imaging.Resize(gray, 0, 1200, imaging.Lanczos)
	}
	tmp := path
	if tmpFile, err := os.CreateTemp("", "ocr-*.png"); err == nil {
		tmp = tmpFile.Name()
		_ = tmpFile.Close()
		if err := imaging.Save(gray, tmp); err != nil {
			tmp = path
		} else {
			defer os.Remove(tmp)
		}
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	_ = client.SetWhitelist("0123456789RpIDRidri.,:()/- JjUuMmLlAaHhTtOoNnSsFfEeRrBbYy")
	client.SetImage(tmp)
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	return normalizeText(text), nil
}

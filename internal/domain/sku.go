package domain

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Segment derives a 4-character SKU segment from a free-text field,
// e.g. "Blue Side" becomes "BLSI" and "Ace" becomes "ACE1".
func Segment(text string) string {
	if text == "" {
		return "XXXX"
	}

	clean := nonAlphanumeric.ReplaceAllString(text, "")
	words := strings.Fields(clean)

	var code string
	switch {
	case len(words) >= 2:
		code = strings.ToUpper(firstN(words[0], 2) + firstN(words[1], 2))
	case len(words) == 1:
		code = strings.ToUpper(firstN(words[0], 4))
	}

	for len(code) < 4 {
		code += "1"
	}

	return code
}

// BaseSKU builds the three-segment base SKU from brand, category and collection
func BaseSKU(brand, category, collection string) string {
	return fmt.Sprintf("%s-%s-%s", Segment(brand), Segment(category), Segment(collection))
}

// ResolveCollision returns a SKU not present in existing. The third segment is
// shortened to three characters and suffixed 1 through 9; if all nine are
// taken, a random two-digit suffix is appended to the base as a last resort.
func ResolveCollision(baseSKU string, existing map[string]bool) string {
	if !existing[baseSKU] {
		return baseSKU
	}

	parts := strings.Split(baseSKU, "-")
	if len(parts) < 3 {
		return baseSKU + "-01"
	}

	prefix := parts[0] + "-" + parts[1]
	baseName := firstN(parts[2], 3)

	for i := 1; i <= 9; i++ {
		candidate := fmt.Sprintf("%s-%s%d", prefix, baseName, i)
		if !existing[candidate] {
			return candidate
		}
	}

	return fmt.Sprintf("%s%d", baseSKU, 10+rand.Intn(90))
}

// QRCode builds the per-unit QR payload from a SKU and a unit sequence number
func QRCode(sku string, sequence int) string {
	return fmt.Sprintf("%s-%04d", sku, sequence)
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

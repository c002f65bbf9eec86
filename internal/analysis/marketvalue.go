package analysis

import (
	"strconv"
	"strings"

	"github.com/yotambraun/football-scout-rag/internal/domain"
)

// ParseMarketValue turns a scraped market-value string ("€25.00m", "$500k")
// into a euro amount. Malformed or absent input degrades to 0.0; this
// function never fails the caller.
//
// Currency symbols are stripped before suffix detection, since the suffix is
// matched as literal text on the cleaned string.
func ParseMarketValue(text string) float64 {
	if text == "" || text == domain.NotFound {
		return 0.0
	}

	cleaned := text
	for _, symbol := range []string{"€", "$", "£", "EUR", "USD", "GBP"} {
		cleaned = strings.ReplaceAll(cleaned, symbol, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	multiplier := 1.0
	lower := strings.ToLower(cleaned)
	switch {
	case strings.Contains(lower, "m"):
		multiplier = 1_000_000
		cleaned = strings.ReplaceAll(lower, "m", "")
	case strings.Contains(lower, "k"):
		multiplier = 1_000
		cleaned = strings.ReplaceAll(lower, "k", "")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0.0
	}

	return value * multiplier
}

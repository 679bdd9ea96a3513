package pricing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// priceToken matches the numeric part of a price-like string, allowing
// thousands separators in either western or Indian grouping.
var priceToken = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// parsePrice extracts a numeric amount from a price-like token such as
// "₹1,29,999" or "Rs. 4,599.00". Tokens without a usable positive number
// are discarded, not errors.
func parsePrice(s string) (float64, bool) {
	match := priceToken.FindString(s)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil || value <= 0 {
		return 0, false
	}

	return value, true
}

// median returns the middle value of the samples. The median resists outlier
// listings (bundles, parts-only sales) better than the mean.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

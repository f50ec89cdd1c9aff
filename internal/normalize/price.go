package normalize

import (
	"regexp"
	"strconv"
)

var numericToken = regexp.MustCompile(`\d+\.\d+|\d+`)

// Price scans free text for numeric tokens and returns the one selected by
// PriceIndex (default: the first, which on tiered listings is the adult
// price). Text without digits is a free or unpriced listing and yields 0.
// The result is never negative.
func (n Normalizer) Price(raw string) float64 {
	tokens := numericToken.FindAllString(raw, -1)
	if len(tokens) == 0 {
		return 0
	}
	i := n.PriceIndex
	if i < 0 || i >= len(tokens) {
		i = 0
	}
	v, err := strconv.ParseFloat(tokens[i], 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

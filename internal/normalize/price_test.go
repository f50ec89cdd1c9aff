package normalize

import "testing"

func TestNormalizer_Price(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		index int
		want  float64
	}{
		{"dollar amount", "$12.50 per session", 0, 12.50},
		{"integer amount", "Admission: 25 dollars", 0, 25},
		{"first token wins on tiers", "Adults $10, children $5", 0, 10},
		{"index selects later tier", "Adults $10, children $5", 1, 5},
		{"index out of range falls back to first", "Adults $10", 3, 10},
		{"free listing", "Free!", 0, 0},
		{"no digits at all", "Contact us for pricing", 0, 0},
		{"empty input", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalizer{PriceIndex: tt.index}
			if got := n.Price(tt.raw); got != tt.want {
				t.Errorf("Price(%q) with index %d = %v, want %v", tt.raw, tt.index, got, tt.want)
			}
		})
	}
}

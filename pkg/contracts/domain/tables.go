package domain

// DivisorTable maps (species, diameter class index) to the divisor that
// converts the flat harvesting cost rate into a price per cubic meter.
// A missing or non-positive divisor means the class is unpriced.
type DivisorTable struct {
	Divisors map[SpeciesCategory][]float64 `json:"divisors"`
}

// NewDivisorTable returns an empty table with one unset slot per species and
// diameter class.
func NewDivisorTable() DivisorTable {
	t := DivisorTable{Divisors: make(map[SpeciesCategory][]float64, len(SpeciesOrder))}
	for _, sp := range SpeciesOrder {
		t.Divisors[sp] = make([]float64, len(DiameterClasses))
	}
	return t
}

// Divisor returns the divisor for a (species, class index) slot and whether a
// strictly positive value is configured there.
func (t DivisorTable) Divisor(sp SpeciesCategory, classIdx int) (float64, bool) {
	row, ok := t.Divisors[sp]
	if !ok || classIdx < 0 || classIdx >= len(row) {
		return 0, false
	}
	if row[classIdx] <= 0 {
		return 0, false
	}
	return row[classIdx], true
}

// SetDivisor stores a divisor value; out-of-range indices are ignored.
func (t *DivisorTable) SetDivisor(sp SpeciesCategory, classIdx int, v float64) {
	if t.Divisors == nil {
		t.Divisors = make(map[SpeciesCategory][]float64, len(SpeciesOrder))
	}
	row, ok := t.Divisors[sp]
	if !ok {
		row = make([]float64, len(DiameterClasses))
		t.Divisors[sp] = row
	}
	if classIdx < 0 || classIdx >= len(row) {
		return
	}
	row[classIdx] = v
}

// LegacyBreakpoints is the fixed set of average-stem-volume breakpoints (m³)
// the legacy single-bin model prices against.
var LegacyBreakpoints = []float64{
	0.05, 0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40, 0.45, 0.50,
	0.60, 0.70, 0.80, 0.90, 1.00,
}

// LegacyPriceTable holds one price per legacy breakpoint. A zero price means
// the breakpoint is unset.
type LegacyPriceTable struct {
	Prices []float64 `json:"prices"`
}

// NewLegacyPriceTable returns a table with every breakpoint unset.
func NewLegacyPriceTable() LegacyPriceTable {
	return LegacyPriceTable{Prices: make([]float64, len(LegacyBreakpoints))}
}

// Price returns the price stored for a breakpoint index, zero if unset or out
// of range.
func (t LegacyPriceTable) Price(idx int) float64 {
	if idx < 0 || idx >= len(t.Prices) {
		return 0
	}
	return t.Prices[idx]
}

// SetPrice stores a price for a breakpoint index; out-of-range indices are
// ignored.
func (t *LegacyPriceTable) SetPrice(idx int, price float64) {
	if t.Prices == nil {
		t.Prices = make([]float64, len(LegacyBreakpoints))
	}
	if idx < 0 || idx >= len(t.Prices) {
		return
	}
	t.Prices[idx] = price
}

// NearestBreakpoint returns the index of the breakpoint closest to avgVolume
// by absolute difference. Exact ties resolve to the lowest index.
func NearestBreakpoint(avgVolume float64) int {
	best := 0
	bestDiff := abs(avgVolume - LegacyBreakpoints[0])
	for i := 1; i < len(LegacyBreakpoints); i++ {
		if d := abs(avgVolume - LegacyBreakpoints[i]); d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

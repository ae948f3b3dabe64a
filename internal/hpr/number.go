package hpr

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal parses numeric text as found in harvester files: surrounding
// and internal whitespace is dropped and a comma decimal separator is
// accepted. Anything that does not parse to a finite number is zero, never an
// error.
func ParseDecimal(s string) float64 {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

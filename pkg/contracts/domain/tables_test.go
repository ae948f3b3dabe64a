package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivisorTable(t *testing.T) {
	table := NewDivisorTable()
	require.Len(t, table.Divisors, len(SpeciesOrder))

	_, ok := table.Divisor(SpeciesPine, 0)
	assert.False(t, ok, "fresh table has no configured divisors")

	table.SetDivisor(SpeciesPine, 3, 18.5)
	v, ok := table.Divisor(SpeciesPine, 3)
	require.True(t, ok)
	assert.InDelta(t, 18.5, v, 1e-9)

	// Non-positive values leave the slot unpriced.
	table.SetDivisor(SpeciesSpruce, 0, -1)
	_, ok = table.Divisor(SpeciesSpruce, 0)
	assert.False(t, ok)

	// Out-of-range indices are ignored.
	table.SetDivisor(SpeciesPine, len(DiameterClasses), 5)
	_, ok = table.Divisor(SpeciesPine, len(DiameterClasses))
	assert.False(t, ok)

	// Writes to an unknown species row should not panic.
	var zero DivisorTable
	zero.SetDivisor(SpeciesBroadleaf, 1, 7)
	v, ok = zero.Divisor(SpeciesBroadleaf, 1)
	require.True(t, ok)
	assert.InDelta(t, 7, v, 1e-9)
}

func TestLegacyPriceTable(t *testing.T) {
	table := NewLegacyPriceTable()
	require.Len(t, table.Prices, len(LegacyBreakpoints))
	assert.Zero(t, table.Price(0))
	assert.Zero(t, table.Price(-1))
	assert.Zero(t, table.Price(len(LegacyBreakpoints)))

	table.SetPrice(4, 115)
	assert.InDelta(t, 115, table.Price(4), 1e-9)

	var zero LegacyPriceTable
	zero.SetPrice(2, 90)
	assert.InDelta(t, 90, zero.Price(2), 1e-9)
}

func TestNearestBreakpoint(t *testing.T) {
	tests := []struct {
		avgVolume float64
		want      int
	}{
		{0, 0},
		{0.05, 0},
		{0.07, 0},
		{0.08, 1},
		{0.20, 3},
		{0.57, 10},
		{0.93, 13},
		{1.00, 14},
		{3.5, 14},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NearestBreakpoint(tt.avgVolume), "avg volume %v", tt.avgVolume)
	}
}

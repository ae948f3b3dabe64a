package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hprcalc/pkg/contracts/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCalcSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	s := newTestStore(t)

	saved := domain.CalcSettings{HarvestingCostRate: 2000, ForwardingRate: 1400, K1: 1.1}
	require.NoError(t, s.SaveSettings(saved))

	loaded, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSaveAndLoadDivisors(t *testing.T) {
	s := newTestStore(t)

	table := domain.NewDivisorTable()
	table.SetDivisor(domain.SpeciesSpruce, 4, 20)
	require.NoError(t, s.SaveDivisors(table))

	loaded, err := s.LoadDivisors()
	require.NoError(t, err)
	div, ok := loaded.Divisor(domain.SpeciesSpruce, 4)
	require.True(t, ok)
	assert.InDelta(t, 20, div, 1e-9)

	_, ok = loaded.Divisor(domain.SpeciesPine, 4)
	assert.False(t, ok)
}

func TestLoadDivisorsPadsShortRows(t *testing.T) {
	s := newTestStore(t)

	table := domain.DivisorTable{Divisors: map[domain.SpeciesCategory][]float64{
		domain.SpeciesPine: {15, 16},
	}}
	require.NoError(t, s.SaveDivisors(table))

	loaded, err := s.LoadDivisors()
	require.NoError(t, err)
	for _, sp := range domain.SpeciesOrder {
		assert.Len(t, loaded.Divisors[sp], len(domain.DiameterClasses))
	}
	div, ok := loaded.Divisor(domain.SpeciesPine, 1)
	require.True(t, ok)
	assert.InDelta(t, 16, div, 1e-9)
}

func TestSaveAndLoadLegacyPrices(t *testing.T) {
	s := newTestStore(t)

	table := domain.NewLegacyPriceTable()
	table.SetPrice(3, 110)
	require.NoError(t, s.SaveLegacyPrices(table))

	loaded, err := s.LoadLegacyPrices()
	require.NoError(t, err)
	assert.InDelta(t, 110, loaded.Price(3), 1e-9)
	assert.Len(t, loaded.Prices, len(domain.LegacyBreakpoints))
}

package calc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hprcalc/pkg/contracts/domain"
)

func TestEngineSpruceDivisorScenario(t *testing.T) {
	// One 150mm spruce at 0.8m³ with divisor 20 for the 160 class and a
	// 1800 kr/h rate prices at 90 kr/m³ and 72 kr total.
	records := []domain.TreeRecord{rec(domain.SpeciesSpruce, 150, 0.8)}
	settings := domain.CalcSettings{HarvestingCostRate: 1800, MaxTreeTimeSec: 30}

	divisors := domain.NewDivisorTable()
	divisors.SetDivisor(domain.SpeciesSpruce, domain.ClassIndex(160), 20)

	result := NewEngine(nil).Calculate(context.Background(), records, settings, divisors, domain.NewLegacyPriceTable())
	require.Len(t, result.Rows, 1)
	assert.InDelta(t, 90, result.Rows[0].PricePerM3, 1e-9)
	assert.InDelta(t, 72, result.Rows[0].TotalPrice, 1e-9)
}

func TestEngineForwardingScenario(t *testing.T) {
	settings := domain.CalcSettings{
		ForwardingRate:   1500,
		SkiddingDistance: 300,
		StandRemoval:     280,
		K1:               1,
		K2:               0.73,
		C11:              11.45,
	}

	result := NewEngine(nil).Calculate(context.Background(), nil, settings, domain.NewDivisorTable(), domain.NewLegacyPriceTable())
	assert.InDelta(t, 1.4344, result.Totals.ForwardingTimeFactor, 0.001)
	assert.InDelta(t, 47.86, result.Totals.ForwardingCostPerM3, 0.01)
}

func TestEngineForwardingFactorZeroWithoutStandRemoval(t *testing.T) {
	settings := domain.CalcSettings{ForwardingRate: 1500, SkiddingDistance: 100, K1: 1, K2: 0.73, C11: 11.45}

	result := NewEngine(nil).Calculate(context.Background(), nil, settings, domain.NewDivisorTable(), domain.NewLegacyPriceTable())
	assert.Zero(t, result.Totals.ForwardingTimeFactor)
	// Skidding still contributes.
	assert.InDelta(t, 4, result.Totals.ForwardingCostPerM3, 1e-9)
}

func TestEngineMissingDivisorPricesAtZero(t *testing.T) {
	records := []domain.TreeRecord{
		rec(domain.SpeciesPine, 150, 0.8),
		rec(domain.SpeciesSpruce, 150, 0.5),
	}
	settings := domain.CalcSettings{HarvestingCostRate: 1800, MaxTreeTimeSec: 30}

	divisors := domain.NewDivisorTable()
	divisors.SetDivisor(domain.SpeciesSpruce, domain.ClassIndex(160), 20)

	result := NewEngine(nil).Calculate(context.Background(), records, settings, divisors, domain.NewLegacyPriceTable())
	require.Len(t, result.Rows, 2)

	pine := result.Rows[0]
	assert.Equal(t, domain.SpeciesPine, pine.Species)
	assert.Zero(t, pine.PricePerM3)
	assert.Zero(t, pine.TotalPrice)
	// The unpriced bin still counts toward stems and volume.
	assert.Equal(t, 2, result.Totals.Stems)
	assert.InDelta(t, 1.3, result.Totals.Volume, 1e-9)
}

func TestEngineTotals(t *testing.T) {
	records := []domain.TreeRecord{
		rec(domain.SpeciesSpruce, 150, 0.8),
		rec(domain.SpeciesSpruce, 155, 1.2),
	}
	settings := domain.CalcSettings{
		HarvestingCostRate: 1800,
		ForwardingRate:     1500,
		SkiddingDistance:   300,
		StandRemoval:       280,
		MaxTreeTimeSec:     30,
		K1:                 1,
		K2:                 0.73,
		C11:                11.45,
	}
	divisors := domain.NewDivisorTable()
	divisors.SetDivisor(domain.SpeciesSpruce, domain.ClassIndex(160), 20)

	result := NewEngine(nil).Calculate(context.Background(), records, settings, divisors, domain.NewLegacyPriceTable())
	require.Len(t, result.Rows, 1)

	assert.InDelta(t, 2.0, result.Totals.Volume, 1e-9)
	assert.InDelta(t, 180, result.Totals.TotalPrice, 1e-9)
	assert.InDelta(t, 90, result.Totals.AveragePricePerM3, 1e-9)
	assert.InDelta(t, result.Totals.ForwardingCostPerM3*2.0, result.Totals.TotalForwardingCost, 1e-9)
	assert.InDelta(t, result.Totals.TotalPrice+result.Totals.TotalForwardingCost, result.Totals.CombinedTotal, 1e-9)

	row := result.Rows[0]
	assert.InDelta(t, 2.0/(60.0/3600.0), row.Productivity, 1e-9)
	assert.InDelta(t, (60.0/2.0)*(1800.0/3600.0), row.HarvestingCost, 1e-9)
}

func TestEngineLegacyNearestLookup(t *testing.T) {
	legacy := domain.NewLegacyPriceTable()
	legacy.SetPrice(3, 110) // breakpoint 0.20
	legacy.SetPrice(4, 115) // breakpoint 0.25

	settings := domain.CalcSettings{MaxTreeTimeSec: 30}

	// Average stem volume exactly on a breakpoint selects that entry.
	records := []domain.TreeRecord{rec(domain.SpeciesSpruce, 150, 0.20)}
	result := NewEngine(nil).Calculate(context.Background(), records, settings, domain.NewDivisorTable(), legacy)
	assert.Equal(t, 3, result.Legacy.BreakpointIndex)
	assert.InDelta(t, 110, result.Legacy.PricePerM3, 1e-9)
	assert.InDelta(t, 110*0.20, result.Legacy.TotalPrice, 1e-9)

	// Exactly equidistant between 0.20 and 0.25 selects the lower index.
	records = []domain.TreeRecord{rec(domain.SpeciesSpruce, 150, 0.225)}
	result = NewEngine(nil).Calculate(context.Background(), records, settings, domain.NewDivisorTable(), legacy)
	assert.Equal(t, 3, result.Legacy.BreakpointIndex)
}

func TestEngineEmptyDataset(t *testing.T) {
	result := NewEngine(nil).Calculate(context.Background(), nil, domain.DefaultCalcSettings(), domain.NewDivisorTable(), domain.NewLegacyPriceTable())
	assert.Empty(t, result.Rows)
	assert.Zero(t, result.Totals.Stems)
	assert.Zero(t, result.Legacy.TotalPrice)
	assert.Zero(t, result.Legacy.AvgStemVolume)
}

func TestEngineDeterministic(t *testing.T) {
	records := []domain.TreeRecord{
		rec(domain.SpeciesPine, 90, 0.1),
		rec(domain.SpeciesSpruce, 300, 0.9),
		rec(domain.SpeciesBroadleaf, 700, 2.0),
	}
	settings := domain.DefaultCalcSettings()
	divisors := domain.NewDivisorTable()
	divisors.SetDivisor(domain.SpeciesPine, 0, 15)

	e := NewEngine(nil)
	a := e.Calculate(context.Background(), records, settings, divisors, domain.NewLegacyPriceTable())
	b := e.Calculate(context.Background(), records, settings, divisors, domain.NewLegacyPriceTable())
	assert.Equal(t, a, b)
}

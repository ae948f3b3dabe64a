package calc

import (
	"context"
	"log/slog"
	"math"

	"hprcalc/pkg/contracts/domain"
)

// Engine computes the per-bin and legacy pricing models over aggregated bins.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a pricing engine. A nil logger falls back to slog.Default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With(slog.String("component", "pricing_engine"))}
}

// Calculate runs the full aggregation and pricing pipeline. It never fails:
// missing divisors price a bin at zero, empty datasets produce empty rows and
// zeroed totals.
func (e *Engine) Calculate(
	ctx context.Context,
	records []domain.TreeRecord,
	settings domain.CalcSettings,
	divisors domain.DivisorTable,
	legacy domain.LegacyPriceTable,
) domain.CalcResult {
	bins := Aggregate(records, settings.MaxTreeTimeSec)

	factor := forwardingTimeFactor(settings)
	forwardingCost := (factor/60)*settings.ForwardingRate + (settings.SkiddingDistance/100)*4

	result := domain.CalcResult{Rows: make([]domain.ResultRow, 0, len(bins))}
	for _, b := range bins {
		row := domain.ResultRow{
			Species: b.Species,
			Class:   b.Class,
			Stems:   b.Stems,
			Volume:  b.Volume,
			TimeSec: b.TimeSec,
		}
		if b.TimeSec > 0 {
			row.Productivity = b.Volume / (b.TimeSec / 3600)
		}
		if b.Volume > 0 {
			row.HarvestingCost = (b.TimeSec / b.Volume) * (settings.HarvestingCostRate / 3600)
		}
		if div, ok := divisors.Divisor(b.Species, domain.ClassIndex(b.Class)); ok {
			row.PricePerM3 = settings.HarvestingCostRate / div
		}
		row.TotalPrice = row.PricePerM3 * b.Volume
		row.TotalCost = row.HarvestingCost + forwardingCost - row.PricePerM3

		result.Rows = append(result.Rows, row)
		result.Totals.Stems += row.Stems
		result.Totals.Volume += row.Volume
		result.Totals.TotalPrice += row.TotalPrice
	}

	result.Totals.ForwardingTimeFactor = factor
	result.Totals.ForwardingCostPerM3 = forwardingCost
	if result.Totals.Volume > 0 {
		result.Totals.AveragePricePerM3 = result.Totals.TotalPrice / result.Totals.Volume
	}
	result.Totals.TotalForwardingCost = forwardingCost * result.Totals.Volume
	result.Totals.CombinedTotal = result.Totals.TotalPrice + result.Totals.TotalForwardingCost

	result.Legacy = legacyTotals(result.Totals, legacy)

	e.logger.DebugContext(ctx, "calculation complete",
		slog.Int("bins", len(result.Rows)),
		slog.Int("stems", result.Totals.Stems),
		slog.Float64("volume", result.Totals.Volume))
	return result
}

// forwardingTimeFactor is global per run: it depends only on the stand
// settings, never on a bin.
func forwardingTimeFactor(s domain.CalcSettings) float64 {
	if s.StandRemoval <= 0 {
		return 0
	}
	return s.K1 * (5.7 + s.K2*s.StandRemoval + s.C11*math.Sqrt(s.StandRemoval)) / s.StandRemoval
}

// legacyTotals prices the dataset as a single bin via the nearest
// average-stem-volume breakpoint.
func legacyTotals(t domain.Totals, table domain.LegacyPriceTable) domain.LegacyTotals {
	lt := domain.LegacyTotals{Stems: t.Stems, Volume: t.Volume}
	if t.Stems == 0 {
		return lt
	}
	lt.AvgStemVolume = t.Volume / float64(t.Stems)
	lt.BreakpointIndex = domain.NearestBreakpoint(lt.AvgStemVolume)
	lt.Breakpoint = domain.LegacyBreakpoints[lt.BreakpointIndex]
	lt.PricePerM3 = table.Price(lt.BreakpointIndex)
	lt.TotalPrice = lt.PricePerM3 * t.Volume
	return lt
}

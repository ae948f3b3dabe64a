// Package exporter serializes calculation results for download: CSV for
// plain-text consumers and XLSX for spreadsheet users. The exporters are pure
// consumers of a CalcResult; they never recompute anything.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"hprcalc/pkg/contracts/domain"
)

var resultHeaders = []string{
	"Species",
	"Diameter class (mm)",
	"Stems",
	"Volume (m3)",
	"Productivity (m3/h)",
	"Harvesting cost (kr/m3)",
	"Price (kr/m3)",
	"Total price (kr)",
	"Total cost (kr/m3)",
}

// CSVWriter exports calculation results as CSV.
type CSVWriter struct {
	logger *slog.Logger
	// BOMPrefix adds a UTF-8 BOM for Excel compatibility.
	BOMPrefix bool
}

// NewCSVWriter creates a CSV exporter.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_exporter"))}
}

// Write serializes the result rows, the per-bin totals and the legacy totals.
func (w *CSVWriter) Write(out io.Writer, result domain.CalcResult) error {
	if w.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(resultHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for _, row := range result.Rows {
		record := []string{
			string(row.Species),
			strconv.Itoa(int(row.Class)),
			strconv.Itoa(row.Stems),
			formatFloat(row.Volume),
			formatFloat(row.Productivity),
			formatFloat(row.HarvestingCost),
			formatFloat(row.PricePerM3),
			formatFloat(row.TotalPrice),
			formatFloat(row.TotalCost),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	totals := [][]string{
		{""},
		{"Total stems", strconv.Itoa(result.Totals.Stems)},
		{"Total volume (m3)", formatFloat(result.Totals.Volume)},
		{"Total price (kr)", formatFloat(result.Totals.TotalPrice)},
		{"Average price (kr/m3)", formatFloat(result.Totals.AveragePricePerM3)},
		{"Forwarding cost (kr/m3)", formatFloat(result.Totals.ForwardingCostPerM3)},
		{"Total forwarding cost (kr)", formatFloat(result.Totals.TotalForwardingCost)},
		{"Combined total (kr)", formatFloat(result.Totals.CombinedTotal)},
		{""},
		{"Legacy avg stem volume (m3)", formatFloat(result.Legacy.AvgStemVolume)},
		{"Legacy breakpoint (m3)", formatFloat(result.Legacy.Breakpoint)},
		{"Legacy price (kr/m3)", formatFloat(result.Legacy.PricePerM3)},
		{"Legacy total (kr)", formatFloat(result.Legacy.TotalPrice)},
	}
	for _, record := range totals {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write totals: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	w.logger.Info("exported results as CSV", slog.Int("rows", len(result.Rows)))
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

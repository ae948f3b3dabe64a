package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"hprcalc/pkg/contracts/domain"
)

const resultSheet = "Results"

// ExcelWriter exports calculation results as an XLSX workbook.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an XLSX exporter.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger.With(slog.String("component", "excel_exporter"))}
}

// Write builds the workbook and streams it to out.
func (w *ExcelWriter) Write(out io.Writer, result domain.CalcResult) error {
	f, err := w.build(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	w.logger.Info("exported results as XLSX", slog.Int("rows", len(result.Rows)))
	return nil
}

func (w *ExcelWriter) build(result domain.CalcResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", resultSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(resultSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range result.Rows {
		values := []interface{}{
			string(row.Species),
			int(row.Class),
			row.Stems,
			row.Volume,
			row.Productivity,
			row.HarvestingCost,
			row.PricePerM3,
			row.TotalPrice,
			row.TotalCost,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(resultSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	totals := [][2]interface{}{
		{"Total stems", result.Totals.Stems},
		{"Total volume (m3)", result.Totals.Volume},
		{"Total price (kr)", result.Totals.TotalPrice},
		{"Average price (kr/m3)", result.Totals.AveragePricePerM3},
		{"Forwarding cost (kr/m3)", result.Totals.ForwardingCostPerM3},
		{"Total forwarding cost (kr)", result.Totals.TotalForwardingCost},
		{"Combined total (kr)", result.Totals.CombinedTotal},
		{"Legacy avg stem volume (m3)", result.Legacy.AvgStemVolume},
		{"Legacy breakpoint (m3)", result.Legacy.Breakpoint},
		{"Legacy price (kr/m3)", result.Legacy.PricePerM3},
		{"Legacy total (kr)", result.Legacy.TotalPrice},
	}
	base := len(result.Rows) + 3
	for i, kv := range totals {
		labelCell, _ := excelize.CoordinatesToCellName(1, base+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, base+i)
		if err := f.SetCellValue(resultSheet, labelCell, kv[0]); err != nil {
			return nil, fmt.Errorf("write totals label: %w", err)
		}
		if err := f.SetCellValue(resultSheet, valueCell, kv[1]); err != nil {
			return nil, fmt.Errorf("write totals value: %w", err)
		}
	}

	return f, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hprcalc/internal/calc"
	"hprcalc/internal/pricetable"
	"hprcalc/pkg/contracts/domain"
)

// TableStore is the persistence surface the calculator needs. The pipeline
// treats load/save as opaque get/set operations.
type TableStore interface {
	LoadSettings() (domain.CalcSettings, error)
	SaveSettings(domain.CalcSettings) error
	LoadDivisors() (domain.DivisorTable, error)
	SaveDivisors(domain.DivisorTable) error
	LoadLegacyPrices() (domain.LegacyPriceTable, error)
	SaveLegacyPrices(domain.LegacyPriceTable) error
}

// CalcService orchestrates calculation runs: it assembles (dataset, settings,
// divisor table, legacy price table) and hands them to the pricing engine.
// Runs are stateless and idempotent given unchanged inputs.
type CalcService struct {
	store    TableStore
	datasets *DatasetService
	engine   *calc.Engine
	importer *pricetable.Importer
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewCalcService creates the calculation service.
func NewCalcService(store TableStore, datasets *DatasetService, logger *slog.Logger) *CalcService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalcService{
		store:    store,
		datasets: datasets,
		engine:   calc.NewEngine(logger),
		importer: pricetable.NewImporter(logger),
		logger:   logger.With(slog.String("component", "calc_service")),
		tracer:   otel.Tracer("hprcalc/services"),
	}
}

// Calculate runs the full pipeline over the current dataset.
func (s *CalcService) Calculate(ctx context.Context) (domain.CalcResult, error) {
	ctx, span := s.tracer.Start(ctx, "calc.Calculate")
	defer span.End()

	settings, err := s.store.LoadSettings()
	if err != nil {
		return domain.CalcResult{}, fmt.Errorf("load settings: %w", err)
	}
	divisors, err := s.store.LoadDivisors()
	if err != nil {
		return domain.CalcResult{}, fmt.Errorf("load divisors: %w", err)
	}
	legacy, err := s.store.LoadLegacyPrices()
	if err != nil {
		return domain.CalcResult{}, fmt.Errorf("load legacy prices: %w", err)
	}

	dataset := s.datasets.Snapshot()
	result := s.engine.Calculate(ctx, dataset.Records, settings, divisors, legacy)

	span.SetAttributes(
		attribute.Int("dataset.records", len(dataset.Records)),
		attribute.Int("result.rows", len(result.Rows)),
	)
	s.logger.InfoContext(ctx, "calculation run",
		slog.Int("records", len(dataset.Records)),
		slog.Int("rows", len(result.Rows)),
		slog.Int("stems", result.Totals.Stems))
	return result, nil
}

// Settings returns the persisted calculation settings.
func (s *CalcService) Settings(ctx context.Context) (domain.CalcSettings, error) {
	return s.store.LoadSettings()
}

// UpdateSettings persists new calculation settings.
func (s *CalcService) UpdateSettings(ctx context.Context, settings domain.CalcSettings) error {
	if err := s.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.logger.InfoContext(ctx, "settings updated")
	return nil
}

// Divisors returns the persisted divisor table.
func (s *CalcService) Divisors(ctx context.Context) (domain.DivisorTable, error) {
	return s.store.LoadDivisors()
}

// UpdateDivisors persists the divisor table.
func (s *CalcService) UpdateDivisors(ctx context.Context, table domain.DivisorTable) error {
	if err := s.store.SaveDivisors(table); err != nil {
		return fmt.Errorf("save divisors: %w", err)
	}
	s.logger.InfoContext(ctx, "divisor table updated")
	return nil
}

// LegacyPrices returns the persisted legacy price table.
func (s *CalcService) LegacyPrices(ctx context.Context) (domain.LegacyPriceTable, error) {
	return s.store.LoadLegacyPrices()
}

// UpdateLegacyPrices persists the legacy price table.
func (s *CalcService) UpdateLegacyPrices(ctx context.Context, table domain.LegacyPriceTable) error {
	if err := s.store.SaveLegacyPrices(table); err != nil {
		return fmt.Errorf("save legacy prices: %w", err)
	}
	s.logger.InfoContext(ctx, "legacy price table updated")
	return nil
}

// ImportLegacyPrices runs the bulk-paste importer over the persisted table.
// The boolean reports whether at least one entry was updated; callers use it
// to decide whether to clear the paste input.
func (s *CalcService) ImportLegacyPrices(ctx context.Context, text string) (bool, error) {
	table, err := s.store.LoadLegacyPrices()
	if err != nil {
		return false, fmt.Errorf("load legacy prices: %w", err)
	}
	updated := s.importer.ImportText(&table, text)
	if !updated {
		return false, nil
	}
	if err := s.store.SaveLegacyPrices(table); err != nil {
		return false, fmt.Errorf("save legacy prices: %w", err)
	}
	return true, nil
}

// ExportLegacyPrices renders the persisted table as pasteable text.
func (s *CalcService) ExportLegacyPrices(ctx context.Context) (string, error) {
	table, err := s.store.LoadLegacyPrices()
	if err != nil {
		return "", fmt.Errorf("load legacy prices: %w", err)
	}
	return pricetable.ExportText(table), nil
}

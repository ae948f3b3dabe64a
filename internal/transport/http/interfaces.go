// Package http contains the chi HTTP handlers for the calculator and admin
// surfaces. Handlers validate and translate; all domain behavior lives in the
// services.
package http

import (
	"context"

	"hprcalc/pkg/contracts/domain"
)

// CalcServiceInterface is the calculation service surface the handlers need.
type CalcServiceInterface interface {
	Calculate(ctx context.Context) (domain.CalcResult, error)
	Settings(ctx context.Context) (domain.CalcSettings, error)
	UpdateSettings(ctx context.Context, settings domain.CalcSettings) error
	Divisors(ctx context.Context) (domain.DivisorTable, error)
	UpdateDivisors(ctx context.Context, table domain.DivisorTable) error
	LegacyPrices(ctx context.Context) (domain.LegacyPriceTable, error)
	UpdateLegacyPrices(ctx context.Context, table domain.LegacyPriceTable) error
	ImportLegacyPrices(ctx context.Context, text string) (bool, error)
	ExportLegacyPrices(ctx context.Context) (string, error)
}

// DatasetServiceInterface is the dataset service surface the handlers need.
type DatasetServiceInterface interface {
	AddFile(ctx context.Context, name string, data []byte) domain.SourceFile
	Clear(ctx context.Context)
	Snapshot() domain.Dataset
}

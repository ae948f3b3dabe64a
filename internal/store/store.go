// Package store persists the operator-editable configuration (calculation
// settings, the divisor table and the legacy price table) as JSON files in
// the data directory. The calculation pipeline itself never touches disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"hprcalc/pkg/contracts/domain"
)

const (
	settingsFile     = "settings.json"
	divisorsFile     = "divisors.json"
	legacyPricesFile = "legacy_prices.json"
)

// Store is a file-backed key-value store for the persisted tables. All
// methods are safe for concurrent use, although mutation is user-driven
// request/response and effectively serial.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger.With(slog.String("component", "store"))}, nil
}

// LoadSettings returns the saved calculation settings, or the defaults when
// nothing has been saved yet.
func (s *Store) LoadSettings() (domain.CalcSettings, error) {
	settings := domain.DefaultCalcSettings()
	err := s.load(settingsFile, &settings)
	return settings, err
}

// SaveSettings persists the calculation settings.
func (s *Store) SaveSettings(settings domain.CalcSettings) error {
	return s.save(settingsFile, settings)
}

// LoadDivisors returns the saved divisor table, or an empty one. Loaded rows
// are padded to the full class count so older files stay readable.
func (s *Store) LoadDivisors() (domain.DivisorTable, error) {
	table := domain.NewDivisorTable()
	err := s.load(divisorsFile, &table)
	for _, sp := range domain.SpeciesOrder {
		row := table.Divisors[sp]
		for len(row) < len(domain.DiameterClasses) {
			row = append(row, 0)
		}
		table.Divisors[sp] = row
	}
	return table, err
}

// SaveDivisors persists the divisor table.
func (s *Store) SaveDivisors(table domain.DivisorTable) error {
	return s.save(divisorsFile, table)
}

// LoadLegacyPrices returns the saved legacy price table, or an empty one.
func (s *Store) LoadLegacyPrices() (domain.LegacyPriceTable, error) {
	table := domain.NewLegacyPriceTable()
	err := s.load(legacyPricesFile, &table)
	for len(table.Prices) < len(domain.LegacyBreakpoints) {
		table.Prices = append(table.Prices, 0)
	}
	return table, err
}

// SaveLegacyPrices persists the legacy price table.
func (s *Store) SaveLegacyPrices(table domain.LegacyPriceTable) error {
	return s.save(legacyPricesFile, table)
}

// load reads a JSON file into v. A missing file is not an error: v keeps its
// defaults.
func (s *Store) load(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// save writes v as JSON via a temp file and rename, so a crash mid-write
// never leaves a truncated table on disk.
func (s *Store) save(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}

	s.logger.Debug("saved table", slog.String("file", name))
	return nil
}

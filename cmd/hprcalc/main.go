// Command hprcalc processes harvester production files from a directory and
// writes the aggregated cost calculation to a CSV or Excel file, using the
// same settings and price tables as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hprcalc/internal/config"
	"hprcalc/internal/exporter"
	"hprcalc/internal/hpr"
	"hprcalc/internal/infrastructure"
	"hprcalc/internal/services"
	"hprcalc/internal/store"
	"hprcalc/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", ".", "input directory with .hpr files")
	outFile := flag.String("out", "results.csv", "output file (.csv or .xlsx)")
	dataDir := flag.String("data", "", "directory holding settings and price tables (defaults to the configured data dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config, using defaults", "error", err)
		def := config.Default()
		cfg = &def
	}
	if *dataDir == "" {
		*dataDir = cfg.Paths.DataDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := run(context.Background(), logger, *inDir, *outFile, *dataDir); err != nil {
		logger.Error("Processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, inDir, outFile, dataDir string) error {
	st, err := store.New(dataDir, logger)
	if err != nil {
		return fmt.Errorf("open table store: %w", err)
	}

	datasets := services.NewDatasetService(hpr.NewExtractor(logger), logger)
	calcSvc := services.NewCalcService(st, datasets, logger)

	names, err := productionFiles(inDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no .hpr files found in %s", inDir)
	}

	logger.Info("Processing production files",
		slog.String("input_dir", inDir),
		slog.Int("files", len(names)))

	var parsed int
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(inDir, name))
		if err != nil {
			logger.Error("Failed to read file",
				slog.String("file", name),
				slog.String("error", err.Error()))
			continue
		}
		file := datasets.AddFile(ctx, name, data)
		if file.ParseErr != "" {
			logger.Warn("File skipped",
				slog.String("file", name),
				slog.String("error", file.ParseErr))
			continue
		}
		parsed++
		logger.Info("File parsed",
			slog.String("file", name),
			slog.Int("stems", file.Records),
			slog.Int("logs", file.Logs))
	}
	if parsed == 0 {
		return fmt.Errorf("none of the %d files could be parsed", len(names))
	}

	result, err := calcSvc.Calculate(ctx)
	if err != nil {
		return fmt.Errorf("calculate: %w", err)
	}

	if err := writeResult(logger, outFile, result); err != nil {
		return err
	}

	logger.Info("Results written",
		slog.String("output", outFile),
		slog.Int("rows", len(result.Rows)),
		slog.Float64("total_volume", result.Totals.Volume))
	return nil
}

func writeResult(logger *slog.Logger, outFile string, result domain.CalcResult) error {
	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(outFile)) {
	case ".xlsx":
		err = exporter.NewExcelWriter(logger).Write(f, result)
	case ".csv", "":
		w := exporter.NewCSVWriter(logger)
		w.BOMPrefix = true
		err = w.Write(f, result)
	default:
		err = fmt.Errorf("unsupported output format %q", filepath.Ext(outFile))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("write results: %w", err)
	}
	return f.Close()
}

func productionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".hpr") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

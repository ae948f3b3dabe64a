package services

import (
	"context"
	"log/slog"
	"sync"

	"hprcalc/internal/hpr"
	"hprcalc/pkg/contracts/domain"
)

// DatasetService owns the in-memory dataset built from uploaded HPR files.
// Files are appended in upload order; re-uploading the same file doubles its
// records. A file that fails to parse contributes zero records and the batch
// continues.
type DatasetService struct {
	mu        sync.Mutex
	extractor *hpr.Extractor
	dataset   domain.Dataset
	logger    *slog.Logger
}

// NewDatasetService creates a dataset service with an empty dataset.
func NewDatasetService(extractor *hpr.Extractor, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		extractor: extractor,
		logger:    logger.With(slog.String("component", "dataset_service")),
	}
}

// AddFile parses one uploaded document and appends its records to the
// dataset. Parse failures are recorded on the returned SourceFile rather than
// returned as errors, so a bad file never aborts a batch.
func (s *DatasetService) AddFile(ctx context.Context, name string, data []byte) domain.SourceFile {
	records, logs, err := s.extractor.Parse(data, name)

	file := domain.SourceFile{Name: name, Records: len(records), Logs: logs}
	if err != nil {
		file.ParseErr = err.Error()
		s.logger.WarnContext(ctx, "file contributed no records",
			slog.String("file", name),
			slog.String("error", err.Error()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset.Records = append(s.dataset.Records, records...)
	s.dataset.Files = append(s.dataset.Files, file)
	s.dataset.LogCount += logs

	s.logger.InfoContext(ctx, "dataset updated",
		slog.String("file", name),
		slog.Int("file_records", len(records)),
		slog.Int("total_records", len(s.dataset.Records)))
	return file
}

// Clear discards all records and provenance.
func (s *DatasetService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = domain.Dataset{}
	s.logger.InfoContext(ctx, "dataset cleared")
}

// Snapshot returns a copy of the current dataset.
func (s *DatasetService) Snapshot() domain.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := domain.Dataset{
		Records:  make([]domain.TreeRecord, len(s.dataset.Records)),
		Files:    make([]domain.SourceFile, len(s.dataset.Files)),
		LogCount: s.dataset.LogCount,
	}
	copy(out.Records, s.dataset.Records)
	copy(out.Files, s.dataset.Files)
	return out
}

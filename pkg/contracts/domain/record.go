package domain

import (
	"time"
)

// TreeRecord is one harvester-reported stem. Records are created by the HPR
// extractor and are immutable afterwards; they live only for the duration of a
// calculation run and are never persisted.
type TreeRecord struct {
	Key         string          `json:"key"`
	HarvestedAt time.Time       `json:"harvested_at,omitempty"`
	Volume      float64         `json:"volume"`                // m³, see extractor fallback chain
	DiameterMM  float64         `json:"diameter_mm,omitempty"` // DBH; <= 0 means absent
	Species     SpeciesCategory `json:"species"`
	SpeciesName string          `json:"species_name,omitempty"` // raw name from the source file
}

// HasDiameter reports whether the record carries a usable DBH measurement.
// Records without one are excluded from binning and from all totals.
func (r TreeRecord) HasDiameter() bool {
	return r.DiameterMM > 0
}

// SourceFile records the provenance of one parsed upload.
type SourceFile struct {
	Name     string `json:"name"`
	Records  int    `json:"records"`
	Logs     int    `json:"logs"`
	ParseErr string `json:"parse_error,omitempty"`
}

// Dataset is the in-memory collection of records from all uploaded files.
// Files are concatenated as uploaded; re-uploading a file doubles its records.
type Dataset struct {
	Records  []TreeRecord `json:"records"`
	Files    []SourceFile `json:"files"`
	LogCount int          `json:"log_count"` // diagnostic only
}

// Empty reports whether the dataset holds no records at all.
func (d Dataset) Empty() bool {
	return len(d.Records) == 0
}

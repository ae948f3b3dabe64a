// Package validation checks uploaded production files before they reach the
// parser.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Accepted upload extensions. Harvesters emit .hpr, but plain .xml exports
// of the same documents show up in practice.
var allowedExtensions = map[string]bool{
	".hpr": true,
	".xml": true,
}

// UploadValidator rejects uploads that cannot be harvester production files.
type UploadValidator struct {
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadValidator creates a validator. maxBytes <= 0 disables the size
// check.
func NewUploadValidator(maxBytes int64, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{maxBytes: maxBytes, logger: logger}
}

// Validate checks the file name and content. It returns an error describing
// the first problem found.
func (v *UploadValidator) Validate(name string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("file", name))
		return fmt.Errorf("unsupported file type %q, expected .hpr or .xml", ext)
	}

	if len(data) == 0 {
		return fmt.Errorf("file %s is empty", name)
	}
	if v.maxBytes > 0 && int64(len(data)) > v.maxBytes {
		v.logger.Warn("rejected oversized upload",
			slog.String("file", name),
			slog.Int("size", len(data)))
		return fmt.Errorf("file %s exceeds the %d byte upload limit", name, v.maxBytes)
	}

	if !looksLikeXML(data) {
		return fmt.Errorf("file %s does not look like an XML document", name)
	}
	return nil
}

// looksLikeXML reports whether the content starts with an XML declaration or
// element, after an optional UTF-8 BOM and leading whitespace.
func looksLikeXML(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	data = bytes.TrimLeft(data, " \t\r\n")
	return len(data) > 0 && data[0] == '<'
}

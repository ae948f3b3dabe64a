package hpr

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/beevik/etree"

	"hprcalc/internal/classify"
	"hprcalc/pkg/contracts/domain"
)

// logVolumeCategories is the preferred-unit order for per-log volumes. The
// first category with a strictly positive value wins. Matching is case- and
// whitespace-insensitive, so "m3 (fub)" and "M3(FUB)" are the same category.
var logVolumeCategories = []string{
	"m3sub",
	"m3 (fub)",
	"m3fub",
	"m3 (price)",
	"m3 (sob)",
	"m3sob",
}

// stemVolumeAttrs is the tree-level fallback order when no log carries a
// usable volume.
var stemVolumeAttrs = []string{"stemVolume", "volume", "volumeUnderBark", "volumeOverBark"}

// logVolumeAttrs is the last-resort attribute order for a single log.
var logVolumeAttrs = []string{"volume", "volumeM3", "volumeUnderBark", "volumeOverBark"}

var harvestTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Extractor parses HPR harvester production documents into flat tree records.
// Element lookup is by local name only, so documents with or without
// namespace prefixes parse identically.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an extractor. A nil logger falls back to slog.Default.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger.With(slog.String("component", "hpr_extractor"))}
}

// Parse reads one HPR document and returns its tree records plus the number
// of log elements encountered (diagnostic only). Malformed documents degrade
// to an empty record list with a non-nil error for diagnostics; callers log
// it and continue with the remaining files.
func (e *Extractor) Parse(data []byte, name string) ([]domain.TreeRecord, int, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		e.logger.Warn("failed to parse HPR document",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("parse %s: %w", name, err)
	}
	root := doc.Root()
	if root == nil {
		e.logger.Warn("HPR document has no root element", slog.String("file", name))
		return nil, 0, fmt.Errorf("parse %s: document has no root element", name)
	}

	speciesNames := speciesDictionary(root)

	var records []domain.TreeRecord
	logCount := 0
	for i, stem := range descendants(root, "Stem") {
		key := attrValue(stem, "stemKey")
		if key == "" {
			key = childText(stem, "StemKey")
		}
		if key == "" {
			key = fmt.Sprintf("%s#%d", name, i+1)
		}

		groupKey := attrValue(stem, "speciesGroupKey")
		if groupKey == "" {
			groupKey = childText(stem, "SpeciesGroupKey")
		}
		speciesName := speciesNames[groupKey]

		logs := descendants(stem, "Log")
		logCount += len(logs)

		rec := domain.TreeRecord{
			Key:         key,
			HarvestedAt: harvestTime(stem),
			DiameterMM:  stemDiameter(stem),
			Volume:      stemVolume(stem, logs),
			Species:     classify.Species(speciesName),
			SpeciesName: speciesName,
		}
		records = append(records, rec)
	}

	e.logger.Info("parsed HPR document",
		slog.String("file", name),
		slog.Int("records", len(records)),
		slog.Int("logs", logCount))
	return records, logCount, nil
}

// speciesDictionary builds the group key to group name map from the
// document's SpeciesGroupDefinition elements.
func speciesDictionary(root *etree.Element) map[string]string {
	dict := make(map[string]string)
	for _, def := range descendants(root, "SpeciesGroupDefinition") {
		key := attrValue(def, "speciesGroupKey")
		if key == "" {
			key = childText(def, "SpeciesGroupKey")
		}
		name := attrValue(def, "speciesGroupName")
		if name == "" {
			name = childText(def, "SpeciesGroupName")
		}
		if key != "" && name != "" {
			dict[key] = name
		}
	}
	return dict
}

// stemDiameter prefers a dbh attribute and falls back to a nested DBH
// element. Only strictly positive values count; anything else means the stem
// has no usable diameter.
func stemDiameter(stem *etree.Element) float64 {
	if v := ParseDecimal(attrValue(stem, "dbh")); v > 0 {
		return v
	}
	if v := ParseDecimal(childText(stem, "DBH")); v > 0 {
		return v
	}
	return 0
}

// stemVolume sums the per-log volumes; when no log yields a positive volume
// it falls back to the stem's own volume attributes in preference order.
func stemVolume(stem *etree.Element, logs []*etree.Element) float64 {
	sum := 0.0
	for _, log := range logs {
		sum += logVolume(log)
	}
	if sum > 0 {
		return sum
	}
	for _, attr := range stemVolumeAttrs {
		if v := ParseDecimal(attrValue(stem, attr)); v > 0 {
			return v
		}
	}
	return 0
}

// logVolume resolves one log's volume through three tiers: a LogVolume child
// whose category matches the preferred-unit list, then any LogVolume child
// with a positive value, then the log's own volume attributes. Values tagged
// in cubic decimeters are converted to cubic meters.
func logVolume(log *etree.Element) float64 {
	volumes := descendants(log, "LogVolume")

	for _, want := range logVolumeCategories {
		for _, lv := range volumes {
			cat := attrValue(lv, "logVolumeCategory")
			if normalizeCategory(cat) != normalizeCategory(want) {
				continue
			}
			if v := convertUnits(ParseDecimal(lv.Text()), cat); v > 0 {
				return v
			}
		}
	}

	for _, lv := range volumes {
		if v := convertUnits(ParseDecimal(lv.Text()), attrValue(lv, "logVolumeCategory")); v > 0 {
			return v
		}
	}

	for _, attr := range logVolumeAttrs {
		if v := ParseDecimal(attrValue(log, attr)); v > 0 {
			return v
		}
	}
	return 0
}

func harvestTime(stem *etree.Element) time.Time {
	raw := attrValue(stem, "harvestDate")
	if raw == "" {
		raw = childText(stem, "HarvestDate")
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range harvestTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// convertUnits divides cubic-decimeter values down to cubic meters.
func convertUnits(v float64, category string) float64 {
	if strings.Contains(normalizeCategory(category), "dm3") {
		return v / 1000
	}
	return v
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// descendants collects all descendant elements with the given local name,
// in document order, ignoring namespace prefixes.
func descendants(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, ch := range e.ChildElements() {
			if ch.Tag == local {
				out = append(out, ch)
			}
			walk(ch)
		}
	}
	walk(el)
	return out
}

// childText returns the trimmed text of the first descendant with the given
// local name, or "".
func childText(el *etree.Element, local string) string {
	for _, ch := range descendants(el, local) {
		return strings.TrimSpace(ch.Text())
	}
	return ""
}

// attrValue matches attributes by local name, ignoring namespace prefixes.
func attrValue(el *etree.Element, local string) string {
	for _, a := range el.Attr {
		if strings.EqualFold(a.Key, local) {
			return a.Value
		}
	}
	return ""
}

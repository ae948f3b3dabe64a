// Package pricetable maintains the legacy price table and its bulk importer.
//
// The importer accepts freeform pasted text (typically a spreadsheet
// selection) and heuristically assigns one price per line to the fixed
// average-volume breakpoints, either by matching a volume token on the line or
// positionally when no token matches.
package pricetable

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"hprcalc/pkg/contracts/domain"
)

// tokenPattern extracts numeric tokens: integer or decimal, comma or dot
// separator, optional leading minus.
var tokenPattern = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)

// matchEpsilon is the tolerance for deciding that a token equals a breakpoint
// or equals the matched volume.
const matchEpsilon = 1e-6

// Importer parses pasted legacy price table text.
type Importer struct {
	logger *slog.Logger
}

// NewImporter creates an importer. A nil logger falls back to slog.Default.
func NewImporter(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{logger: logger.With(slog.String("component", "pricetable_importer"))}
}

// ImportText parses text line by line, mutating table in place, and reports
// whether at least one entry was updated. Lines that cannot be resolved are
// skipped silently; only strictly positive prices are committed.
//
// The tie-breaking when a matched breakpoint was already assigned earlier in
// the same pass is preserved from the original behavior and is a candidate
// for simplification: a still-unused token unequal to the matched volume is
// preferred before falling back to the token the normal rule selected.
func (im *Importer) ImportText(table *domain.LegacyPriceTable, text string) bool {
	updated := false
	assigned := make(map[int]bool)
	usedPrices := make(map[float64]bool)
	cursor := 0

	for _, line := range strings.Split(text, "\n") {
		tokens := numericTokens(line)
		if len(tokens) == 0 {
			continue
		}

		idx, matchedVol, matched := matchBreakpoint(tokens)

		var price float64
		if matched {
			price = tokens[len(tokens)-1]
			for _, tok := range tokens {
				if math.Abs(tok-matchedVol) > matchEpsilon {
					price = tok
					break
				}
			}
			if assigned[idx] {
				for _, tok := range tokens {
					if math.Abs(tok-matchedVol) > matchEpsilon && !usedPrices[tok] {
						price = tok
						break
					}
				}
			}
		} else {
			for cursor < len(domain.LegacyBreakpoints) && assigned[cursor] {
				cursor++
			}
			if cursor >= len(domain.LegacyBreakpoints) {
				continue
			}
			idx = cursor
			price = tokens[len(tokens)-1]
		}

		if price <= 0 {
			continue
		}
		table.SetPrice(idx, price)
		assigned[idx] = true
		usedPrices[price] = true
		updated = true
	}

	im.logger.Info("legacy price table import",
		slog.Int("assigned", len(assigned)),
		slog.Bool("updated", updated))
	return updated
}

// matchBreakpoint finds the first token equal (within tolerance) to one of
// the legacy breakpoints.
func matchBreakpoint(tokens []float64) (idx int, matchedVol float64, ok bool) {
	for _, tok := range tokens {
		for i, bp := range domain.LegacyBreakpoints {
			if math.Abs(tok-bp) <= matchEpsilon {
				return i, tok, true
			}
		}
	}
	return 0, 0, false
}

func numericTokens(line string) []float64 {
	raw := tokenPattern.FindAllString(line, -1)
	tokens := make([]float64, 0, len(raw))
	for _, r := range raw {
		v, err := strconv.ParseFloat(strings.ReplaceAll(r, ",", "."), 64)
		if err != nil {
			continue
		}
		tokens = append(tokens, v)
	}
	return tokens
}

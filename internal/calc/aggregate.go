package calc

import (
	"sort"

	"hprcalc/internal/classify"
	"hprcalc/pkg/contracts/domain"
)

// Bin is one (species, diameter class) aggregate under construction. Bins are
// rebuilt from scratch on every calculation run.
type Bin struct {
	Species domain.SpeciesCategory
	Class   domain.DiameterClass
	Stems   int
	Volume  float64
	TimeSec float64
	Records []domain.TreeRecord
}

type binKey struct {
	species domain.SpeciesCategory
	class   domain.DiameterClass
}

// Aggregate bins every record with a resolvable diameter class. The per-stem
// processing time is min(maxTreeTimeSec, MaxTreeTimeCapSec): the configured
// maximum can only lower the hard cap, never raise it. Records without a
// usable diameter are excluded from all aggregates.
//
// Bins come back ordered by species priority, then ascending diameter class.
func Aggregate(records []domain.TreeRecord, maxTreeTimeSec float64) []*Bin {
	treeTime := maxTreeTimeSec
	if treeTime > domain.MaxTreeTimeCapSec {
		treeTime = domain.MaxTreeTimeCapSec
	}

	bins := make(map[binKey]*Bin)
	for _, rec := range records {
		class, ok := classify.Diameter(rec.DiameterMM)
		if !ok {
			continue
		}
		key := binKey{species: rec.Species, class: class}
		b := bins[key]
		if b == nil {
			b = &Bin{Species: rec.Species, Class: class}
			bins[key] = b
		}
		b.Stems++
		b.Volume += rec.Volume
		b.TimeSec += treeTime
		b.Records = append(b.Records, rec)
	}

	out := make([]*Bin, 0, len(bins))
	for _, b := range bins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Species != out[j].Species {
			return domain.SpeciesRank(out[i].Species) < domain.SpeciesRank(out[j].Species)
		}
		return out[i].Class < out[j].Class
	})
	return out
}

package domain

// SpeciesCategory is the fixed set of species groups that pricing operates on.
// Free-text species names from harvester files are reduced to one of these.
type SpeciesCategory string

const (
	// SpeciesPine covers pine and other non-spruce conifers.
	SpeciesPine SpeciesCategory = "pine"
	// SpeciesSpruce covers the spruce group.
	SpeciesSpruce SpeciesCategory = "spruce"
	// SpeciesBroadleaf covers birch, aspen, alder and all other broadleaves.
	// It is also the catch-all for unknown or missing species names.
	SpeciesBroadleaf SpeciesCategory = "broadleaf"
)

// SpeciesOrder is the presentation order for result rows: conifers first,
// broadleaves last.
var SpeciesOrder = []SpeciesCategory{SpeciesPine, SpeciesSpruce, SpeciesBroadleaf}

// SpeciesRank returns the position of a species in SpeciesOrder.
// Unknown values sort after all known ones.
func SpeciesRank(s SpeciesCategory) int {
	for i, sp := range SpeciesOrder {
		if sp == s {
			return i
		}
	}
	return len(SpeciesOrder)
}

// IsValid reports whether the category is one of the fixed set.
func (s SpeciesCategory) IsValid() bool {
	switch s {
	case SpeciesPine, SpeciesSpruce, SpeciesBroadleaf:
		return true
	}
	return false
}

package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"hprcalc/pkg/contracts/domain"
)

// keywordFamilies are checked in order; the first family with a matching
// keyword wins, so a name matching several families lands in the earliest one.
var keywordFamilies = []struct {
	species  domain.SpeciesCategory
	keywords []string
}{
	{domain.SpeciesPine, []string{"TALL", "PINE", "PINUS", "FURU", "CONTORTA"}},
	{domain.SpeciesSpruce, []string{"GRAN", "SPRUCE", "PICEA"}},
	{domain.SpeciesBroadleaf, []string{"LOV", "BJORK", "BIRCH", "BETULA", "ASP", "EK", "BOK", "AL"}},
}

// Species maps a free-text species name to its category. Unknown or empty
// names fall through to the broadleaf catch-all.
func Species(name string) domain.SpeciesCategory {
	n := normalizeName(name)
	if n == "" {
		return domain.SpeciesBroadleaf
	}
	for _, fam := range keywordFamilies {
		for _, kw := range fam.keywords {
			if strings.Contains(n, kw) {
				return fam.species
			}
		}
	}
	return domain.SpeciesBroadleaf
}

// stripMarks removes combining marks after NFD decomposition, so "björk" and
// "bjork" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeName(name string) string {
	out, _, err := transform.String(stripMarks, name)
	if err != nil {
		out = name
	}
	return strings.ToUpper(strings.TrimSpace(out))
}

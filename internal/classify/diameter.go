package classify

import (
	"math"

	"hprcalc/pkg/contracts/domain"
)

// Diameter maps a DBH measurement in millimeters to its diameter class: the
// first class threshold greater than or equal to the value. Diameters above
// the largest threshold clamp to the largest class. The second return value is
// false for absent, non-finite or non-positive diameters, which excludes the
// record from binning entirely.
func Diameter(dbhMM float64) (domain.DiameterClass, bool) {
	if dbhMM <= 0 || math.IsNaN(dbhMM) || math.IsInf(dbhMM, 0) {
		return 0, false
	}
	for _, c := range domain.DiameterClasses {
		if dbhMM <= float64(c) {
			return c, true
		}
	}
	return domain.DiameterClasses[len(domain.DiameterClasses)-1], true
}

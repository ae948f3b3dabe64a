package domain

// CalcSettings are the calculation inputs supplied by the operator. All values
// are plain numbers; anything that fails to parse upstream arrives here as zero.
type CalcSettings struct {
	HarvestingCostRate float64 `json:"harvesting_cost_rate" validate:"gte=0"` // kr/G15-hour
	ForwardingRate     float64 `json:"forwarding_rate" validate:"gte=0"`      // kr/hour
	SkiddingDistance   float64 `json:"skidding_distance" validate:"gte=0"`    // meters
	StandRemoval       float64 `json:"stand_removal" validate:"gte=0"`        // m³/ha
	MaxTreeTimeSec     float64 `json:"max_tree_time_sec" validate:"gte=0"`    // per-stem processing time
	K1                 float64 `json:"k1"`
	K2                 float64 `json:"k2"`
	C11                float64 `json:"c11"`
}

// MaxTreeTimeCapSec is the hard per-stem processing time ceiling in seconds.
// The configured MaxTreeTimeSec can only lower the effective time, never raise
// it above this cap.
const MaxTreeTimeCapSec = 30.0

// DefaultCalcSettings returns the settings used before the operator has saved
// any of their own.
func DefaultCalcSettings() CalcSettings {
	return CalcSettings{
		HarvestingCostRate: 1800,
		ForwardingRate:     1500,
		SkiddingDistance:   300,
		StandRemoval:       280,
		MaxTreeTimeSec:     30,
		K1:                 1,
		K2:                 0.73,
		C11:                11.45,
	}
}

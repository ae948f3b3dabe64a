package domain

// ResultRow is the priced output for one populated (species, class) bin.
// Rows are derived output and are never mutated after a calculation run.
type ResultRow struct {
	Species        SpeciesCategory `json:"species"`
	Class          DiameterClass   `json:"class"`
	Stems          int             `json:"stems"`
	Volume         float64         `json:"volume"`          // m³
	TimeSec        float64         `json:"time_sec"`        // summed capped processing time
	Productivity   float64         `json:"productivity"`    // m³ per hour
	HarvestingCost float64         `json:"harvesting_cost"` // kr/m³
	PricePerM3     float64         `json:"price_per_m3"`    // kr/m³, zero when the bin is unpriced
	TotalPrice     float64         `json:"total_price"`     // kr
	TotalCost      float64         `json:"total_cost"`      // kr/m³, informational
}

// Totals aggregates the per-bin model across all result rows.
type Totals struct {
	Stems                int     `json:"stems"`
	Volume               float64 `json:"volume"`
	TotalPrice           float64 `json:"total_price"`
	AveragePricePerM3    float64 `json:"average_price_per_m3"` // volume-weighted
	ForwardingTimeFactor float64 `json:"forwarding_time_factor"`
	ForwardingCostPerM3  float64 `json:"forwarding_cost_per_m3"`
	TotalForwardingCost  float64 `json:"total_forwarding_cost"`
	CombinedTotal        float64 `json:"combined_total"`
}

// LegacyTotals prices the whole dataset as one bin via the nearest
// average-stem-volume breakpoint.
type LegacyTotals struct {
	Stems           int     `json:"stems"`
	Volume          float64 `json:"volume"`
	AvgStemVolume   float64 `json:"avg_stem_volume"`
	BreakpointIndex int     `json:"breakpoint_index"`
	Breakpoint      float64 `json:"breakpoint"`
	PricePerM3      float64 `json:"price_per_m3"`
	TotalPrice      float64 `json:"total_price"`
}

// CalcResult is the complete output of one calculation run.
type CalcResult struct {
	Rows   []ResultRow  `json:"rows"`
	Totals Totals       `json:"totals"`
	Legacy LegacyTotals `json:"legacy"`
}

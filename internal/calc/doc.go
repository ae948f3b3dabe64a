// Package calc turns a dataset of tree records into priced result rows.
//
// Aggregation groups records by (species, diameter class) and accumulates stem
// count, volume and capped processing time. The pricing engine then computes
// two competing models over those bins:
//
//  1. Per-bin model: each bin is priced from the divisor table as
//     harvestingCostRate / divisor, with global forwarding costs derived once
//     per run from the stand settings.
//  2. Legacy model: the whole dataset is priced as one bin by matching its
//     average stem volume against the nearest legacy price table breakpoint.
//
// Calculation is pure: the same (records, settings, divisor table, legacy
// table) inputs always produce the same output, and no input is mutated.
package calc

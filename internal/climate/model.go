// Package climate holds the static reference tables for the scenario model
// and the pure derivation from an exploration to its target numbers.
package climate

// OverallTarget is the global per-capita emissions target in tonnes/year
// that the population-wide average must meet.
const OverallTarget = 2.5

// FootprintBreakdown is the share of a baseline footprint attributed to
// each category. Shares sum to 1.0.
var FootprintBreakdown = struct {
	Transport float64
	Energy    float64
	Food      float64
	Other     float64
}{
	Transport: 0.30,
	Energy:    0.25,
	Food:      0.15,
	Other:     0.30,
}

// ReductionFactors is the efficacy of fully applying each structural change
// to its footprint category.
var ReductionFactors = struct {
	Grid      float64 // reduction in emissions from the energy sector
	Transport float64 // reduction from transport
	Food      float64 // reduction from food systems
}{
	Grid:      0.95,
	Transport: 0.75,
	Food:      0.40,
}

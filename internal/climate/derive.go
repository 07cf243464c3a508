package climate

import (
	"math"

	"fairshare/internal/exploration"
)

// Derived holds the three numbers computed from an exploration against the
// static tables.
type Derived struct {
	// AdjustedEmissions is the country baseline after the enabled
	// structural changes are applied, in tonnes/year
	AdjustedEmissions float64 `json:"adjustedEmissions"`

	// PersonalTarget is the required average footprint for participants so
	// that the population-wide mean meets OverallTarget
	PersonalTarget float64 `json:"personalTarget"`

	// Impossible means even a zero personal footprint cannot bring the
	// population average to target. A business state, not a failure.
	Impossible bool `json:"isImpossible"`
}

// Derive computes the derived values for an exploration. It is pure and
// total: an unresolved or absent country code yields the zero Derived value,
// which is a valid "no baseline selected" state rather than an error.
func Derive(e exploration.Exploration) Derived {
	if e.CountryCode == nil {
		return Derived{}
	}
	country, ok := CountryByCode(*e.CountryCode)
	if !ok {
		return Derived{}
	}

	baseline := country.Emissions
	var reduction float64
	if e.StructuralChanges.Grid {
		reduction += baseline * FootprintBreakdown.Energy * ReductionFactors.Grid
	}
	if e.StructuralChanges.Transport {
		reduction += baseline * FootprintBreakdown.Transport * ReductionFactors.Transport
	}
	if e.StructuralChanges.Food {
		reduction += baseline * FootprintBreakdown.Food * ReductionFactors.Food
	}
	// Unclamped: combined factors below 100% keep this non-negative.
	adjusted := baseline - reduction

	// The non-participating fraction keeps the adjusted baseline; the
	// participating fraction must average down so that the population mean
	// equals OverallTarget. The rate is range-constrained to [1, 100], so
	// the zero guard is defensive only.
	p := float64(e.ParticipationRate) / 100
	target := math.Inf(1)
	if p > 0 {
		target = (OverallTarget - (1-p)*adjusted) / p
	}

	return Derived{
		AdjustedEmissions: adjusted,
		PersonalTarget:    target,
		Impossible:        target < 0,
	}
}

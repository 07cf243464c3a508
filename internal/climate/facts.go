package climate

import "math"

// Country is a static reference entry: ISO-style code, display name, and
// baseline per-capita emissions in tonnes/year.
type Country struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Emissions float64 `json:"emissions"`
}

// Countries is the static country-emissions table, ordered by baseline
// descending.
var Countries = []Country{
	{Code: "USA", Name: "United States", Emissions: 16.1},
	{Code: "AUS", Name: "Australia", Emissions: 14.9},
	{Code: "CAN", Name: "Canada", Emissions: 14.2},
	{Code: "DEU", Name: "Germany", Emissions: 8.1},
	{Code: "JPN", Name: "Japan", Emissions: 8.0},
	{Code: "CHN", Name: "China", Emissions: 7.7},
	{Code: "GBR", Name: "United Kingdom", Emissions: 5.5},
	{Code: "FRA", Name: "France", Emissions: 5.3},
	{Code: "SWE", Name: "Sweden", Emissions: 4.7},
	{Code: "WLD", Name: "World Average", Emissions: 4.6},
}

// CountryByCode resolves a code against the country table.
func CountryByCode(code string) (Country, bool) {
	for _, c := range Countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// LifestyleCategory labels one of the four fixed footprint categories.
type LifestyleCategory string

const (
	CategoryFood     LifestyleCategory = "food"
	CategoryMobility LifestyleCategory = "mobility"
	CategoryHome     LifestyleCategory = "home"
	CategoryStuff    LifestyleCategory = "stuff"
)

// LifestyleCategories lists the categories in display order.
var LifestyleCategories = []LifestyleCategory{
	CategoryFood, CategoryMobility, CategoryHome, CategoryStuff,
}

// LifestyleTier is a qualitative bucket of example behaviors associated
// with a footprint threshold. Tiers form a sorted list of disjoint upper
// bounds; the last tier is unbounded.
type LifestyleTier struct {
	Threshold float64
	Title     string
	Data      map[LifestyleCategory][]string
}

// LifestyleTiers is the static tier table, ascending by threshold.
var LifestyleTiers = []LifestyleTier{
	{
		Threshold: 1.0,
		Title:     "Extreme",
		Data: map[LifestyleCategory][]string{
			CategoryFood:     {"Strictly vegan diet", "Hyper-local & homegrown food", "Zero food waste"},
			CategoryMobility: {"No flights", "Completely car-free living", "Radically local life"},
			CategoryHome:     {"Off-grid or equivalent energy", "Minimalist/smaller living spaces", "Minimal hot water use"},
			CategoryStuff:    {"Consumption moratorium (buy almost nothing new)", "Radical repair & community sharing"},
		},
	},
	{
		Threshold: 2.5,
		Title:     "Ambitious",
		Data: map[LifestyleCategory][]string{
			CategoryFood:     {"Plant-rich diet (minimal meat/dairy)", "Low food waste", "Local & seasonal sourcing"},
			CategoryMobility: {"Mostly flight-free", "Car-free or very low use", "Prioritize public/active transport"},
			CategoryHome:     {"100% renewable electricity tariff", "High-efficiency, well-insulated home", "Sufficient, not excessive, space"},
			CategoryStuff:    {"Drastically reduce new purchases", "Repair & reuse first", "Second-hand as a default"},
		},
	},
	{
		Threshold: 5.0,
		Title:     "Moderate",
		Data: map[LifestyleCategory][]string{
			CategoryFood:     {"Less & better meat (e.g., chicken over beef)", "Conscious of food waste", "Buy local when possible"},
			CategoryMobility: {"One short-haul flight every few years", "Drive an efficient EV/hybrid mindfully", "Use public transport for commutes"},
			CategoryHome:     {"Energy-saving habits", "Ensure good home insulation", "Switch to a green energy tariff"},
			CategoryStuff:    {"Buy durable goods, not disposable", "Limit fast fashion", "Active recycling"},
		},
	},
	{
		Threshold: math.Inf(1),
		Title:     "High (Efficiency Focus)",
		Data: map[LifestyleCategory][]string{
			CategoryFood:     {"Reduce beef intake", "Buy in bulk to reduce packaging", "Choose sustainable seafood"},
			CategoryMobility: {"Offset flights", "Drive an EV or Hybrid", "Combine trips to be more efficient"},
			CategoryHome:     {"Use smart home tech for efficiency", "Install solar panels", "LED lighting throughout"},
			CategoryStuff:    {"Recycle electronics & clothing", "Choose brands with sustainability goals", "Avoid single-use plastics"},
		},
	},
}

// TierFor returns the tier whose threshold the target fits under. Targets
// beyond every bounded threshold land in the last (unbounded) tier.
func TierFor(target float64) LifestyleTier {
	for _, tier := range LifestyleTiers {
		if target <= tier.Threshold {
			return tier
		}
	}
	return LifestyleTiers[len(LifestyleTiers)-1]
}

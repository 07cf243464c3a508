package climate

import (
	"math"
	"testing"
)

func TestCountryByCode(t *testing.T) {
	c, ok := CountryByCode("SWE")
	if !ok {
		t.Fatal("CountryByCode(SWE) not found")
	}
	if c.Name != "Sweden" {
		t.Errorf("Name = %q, want %q", c.Name, "Sweden")
	}
	if c.Emissions != 4.7 {
		t.Errorf("Emissions = %v, want 4.7", c.Emissions)
	}

	if _, ok := CountryByCode("XXX"); ok {
		t.Error("CountryByCode(XXX) found, want not found")
	}
	if _, ok := CountryByCode(""); ok {
		t.Error("CountryByCode(\"\") found, want not found")
	}
}

func TestCountries_OrderedByBaseline(t *testing.T) {
	for i := 1; i < len(Countries); i++ {
		if Countries[i].Emissions > Countries[i-1].Emissions {
			t.Errorf("Countries not descending at %d: %v > %v",
				i, Countries[i].Emissions, Countries[i-1].Emissions)
		}
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		target float64
		want   string
	}{
		{-2.0, "Extreme"},
		{0.5, "Extreme"},
		{1.0, "Extreme"},
		{1.1, "Ambitious"},
		{2.5, "Ambitious"},
		{2.6, "Moderate"},
		{5.0, "Moderate"},
		{5.1, "High (Efficiency Focus)"},
		{100.0, "High (Efficiency Focus)"},
		{math.Inf(1), "High (Efficiency Focus)"},
	}

	for _, tt := range tests {
		got := TierFor(tt.target)
		if got.Title != tt.want {
			t.Errorf("TierFor(%v) = %q, want %q", tt.target, got.Title, tt.want)
		}
	}
}

func TestLifestyleTiers_Shape(t *testing.T) {
	if len(LifestyleTiers) != 4 {
		t.Fatalf("len(LifestyleTiers) = %d, want 4", len(LifestyleTiers))
	}

	prev := math.Inf(-1)
	for _, tier := range LifestyleTiers {
		if tier.Threshold <= prev {
			t.Errorf("tier %q threshold %v not ascending", tier.Title, tier.Threshold)
		}
		prev = tier.Threshold

		for _, cat := range LifestyleCategories {
			if len(tier.Data[cat]) == 0 {
				t.Errorf("tier %q has no entries for category %q", tier.Title, cat)
			}
		}
	}

	last := LifestyleTiers[len(LifestyleTiers)-1]
	if !math.IsInf(last.Threshold, 1) {
		t.Errorf("last tier threshold = %v, want +Inf", last.Threshold)
	}
}

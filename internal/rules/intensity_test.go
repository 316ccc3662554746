package rules

import "testing"

// TestParseIntensity verifies free-form intensity text maps to the three
// tiers, with mixed descriptors taking the lower tier.
func TestParseIntensity(t *testing.T) {
	tests := []struct {
		in   string
		want Intensity
	}{
		{"Easy", Easy},
		{"easy", Easy},
		{"HARD", Hard},
		{"Moderate", Moderate},
		{"medium", Moderate},
		{"light", Easy},
		{"high", Hard},
		{"  hard  ", Hard},
		{"Easy-Moderate", Easy},
		{"easy–moderate", Easy},
		{"Moderate-Hard", Moderate},
		{"all-out sprint", Moderate},
		{"", Moderate},
	}
	for _, tt := range tests {
		if got := ParseIntensity(tt.in); got != tt.want {
			t.Errorf("ParseIntensity(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

// TestFactor verifies the unit-load multipliers, including the Moderate
// fallback for unknown values.
func TestFactor(t *testing.T) {
	tests := []struct {
		in   Intensity
		want float64
	}{
		{Easy, 1},
		{Moderate, 2},
		{Hard, 3},
		{Intensity("bogus"), 2},
	}
	for _, tt := range tests {
		if got := tt.in.Factor(); got != tt.want {
			t.Errorf("Factor(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestValid verifies only the three known tiers are valid.
func TestValid(t *testing.T) {
	for _, i := range []Intensity{Easy, Moderate, Hard} {
		if !i.Valid() {
			t.Errorf("%s should be valid", i)
		}
	}
	if Intensity("easy").Valid() {
		t.Error("lowercase variant should not be valid; use ParseIntensity")
	}
}

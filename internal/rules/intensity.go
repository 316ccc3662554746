package rules

import "strings"

// Intensity is the effort tier of a session. It is deliberately coarse:
// three tiers map cleanly onto the unit-load factors.
type Intensity string

const (
	Easy     Intensity = "Easy"
	Moderate Intensity = "Moderate"
	Hard     Intensity = "Hard"
)

// Factor returns the unit-load multiplier for the intensity tier.
func (i Intensity) Factor() float64 {
	switch i {
	case Easy:
		return 1
	case Hard:
		return 3
	default:
		return 2
	}
}

// Valid reports whether i is one of the three known tiers.
func (i Intensity) Valid() bool {
	switch i {
	case Easy, Moderate, Hard:
		return true
	}
	return false
}

// ParseIntensity normalizes free-form intensity text (including AI output
// such as "easy–moderate" or "HARD") to a known tier. Anything that cannot
// be recognized falls back to Moderate, the safe middle tier.
func ParseIntensity(s string) Intensity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "light", "low":
		return Easy
	case "hard", "high", "intense":
		return Hard
	case "moderate", "medium":
		return Moderate
	}
	// Mixed descriptors like "Easy-Moderate" or "Moderate–Hard" take the
	// lower tier mentioned, erring on the cautious side.
	lower := strings.ToLower(s)
	if strings.Contains(lower, "easy") {
		return Easy
	}
	if strings.Contains(lower, "moderate") {
		return Moderate
	}
	if strings.Contains(lower, "hard") {
		return Hard
	}
	return Moderate
}

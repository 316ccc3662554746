package coach

import (
	"testing"

	"github.com/claude/coachplan/internal/plan"
)

// TestPickDay verifies duplicate and unknown days resolve to free weekdays.
func TestPickDay(t *testing.T) {
	used := make(map[string]bool)

	if got := pickDay("Tue", used); got != "Tue" {
		t.Errorf("first Tue = %q, want Tue", got)
	}
	// Second Tue walks forward to the next free day.
	if got := pickDay("Tue", used); got != "Wed" {
		t.Errorf("second Tue = %q, want Wed", got)
	}
	// Unknown day falls back to Mon.
	if got := pickDay("Funday", used); got != "Mon" {
		t.Errorf("unknown day = %q, want Mon", got)
	}
	// Week wraps around from Sun.
	if got := pickDay("Sun", used); got != "Sun" {
		t.Errorf("Sun = %q, want Sun", got)
	}
	if got := pickDay("Sun", used); got != "Thu" {
		t.Errorf("wrapped Sun = %q, want Thu (Mon, Tue, Wed taken)", got)
	}
}

// TestTargetMinutes verifies the weekly minutes hint: level-scaled for a
// first week, load-derived and bounded afterwards.
func TestTargetMinutes(t *testing.T) {
	tests := []struct {
		name string
		req  plan.Request
		want int
	}{
		{"novice first week", plan.Request{Level: "novice", SessionsPerWeek: 3}, 75},
		{"intermediate first week", plan.Request{Level: "intermediate", SessionsPerWeek: 3}, 105},
		{"advanced first week", plan.Request{Level: "advanced", SessionsPerWeek: 4}, 160},
		{"from prior load", plan.Request{Level: "novice", SessionsPerWeek: 3, LastWeekLoad: 200}, 160},
		{"lower bound", plan.Request{Level: "novice", SessionsPerWeek: 3, LastWeekLoad: 50}, 60},
		{"upper bound", plan.Request{Level: "advanced", SessionsPerWeek: 5, LastWeekLoad: 1000}, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := targetMinutes(tt.req); got != tt.want {
				t.Errorf("targetMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

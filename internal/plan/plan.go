// Package plan composes weekly training plans from sport/level templates or
// AI-suggested sessions, and enforces the safety rules on whatever it emits.
package plan

import (
	"strings"
	"time"

	"github.com/claude/coachplan/internal/rules"
)

// DaysOrder is the canonical Mon-first week used to order sessions.
var DaysOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayIndex returns the position of day in DaysOrder, or 99 for unknown days
// so they sort last.
func DayIndex(day string) int {
	for i, d := range DaysOrder {
		if d == day {
			return i
		}
	}
	return 99
}

// Session is one planned training session. Once composed into a WeeklyPlan
// it is never mutated; regeneration produces a new plan.
type Session struct {
	ID          string          `json:"id"`
	Day         string          `json:"day"`
	Focus       string          `json:"focus"`
	Intensity   rules.Intensity `json:"intensity"`
	DurationMin int             `json:"duration_min"`
	UnitLoad    float64         `json:"unit_load"`
	Notes       string          `json:"notes"`
}

// WeeklyPlan is an ordered week of sessions plus the progression bookkeeping
// needed to compare it against the prior week.
type WeeklyPlan struct {
	ID               string    `json:"id"`
	Sport            string    `json:"sport"`
	Level            string    `json:"level"`
	Sessions         []Session `json:"sessions"`
	TotalUnitLoad    float64   `json:"total_unit_load"`
	PriorLoad        float64   `json:"prior_load"`
	ProgressionRatio float64   `json:"progression_ratio,omitempty"`
	Notice           string    `json:"notice,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// TotalMinutes sums the planned duration across the week.
func (p *WeeklyPlan) TotalMinutes() int {
	var total int
	for _, s := range p.Sessions {
		total += s.DurationMin
	}
	return total
}

// Request holds the user inputs for one plan generation.
type Request struct {
	Sport             string  `json:"sport"`
	Level             string  `json:"level"`
	SessionsPerWeek   int     `json:"sessions_per_week"`
	LastWeekLoad      float64 `json:"last_week_load"`
	Contraindications string  `json:"contraindications"`
}

// NormalizeLevel maps free-form level text to novice/intermediate/advanced,
// defaulting to novice (the most conservative templates).
func NormalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "intermediate":
		return "intermediate"
	case "advanced":
		return "advanced"
	default:
		return "novice"
	}
}

// Package rules implements the safety rules that every training plan must
// satisfy: per-session duration bounds, the weekly load progression ceiling,
// and the unit-load formula used to compare weeks.
package rules

import "errors"

const (
	// MinSessionMinutes and MaxSessionMinutes bound a single session.
	MinSessionMinutes = 20
	MaxSessionMinutes = 60

	// MaxProgressionRatio caps week-over-week growth of total unit load.
	MaxProgressionRatio = 1.10
)

var (
	// ErrOutOfBounds is returned when a session duration falls outside
	// [MinSessionMinutes, MaxSessionMinutes].
	ErrOutOfBounds = errors.New("session duration out of bounds")

	// ErrProgressionExceeded is returned when a proposed week's total unit
	// load grows more than MaxProgressionRatio over the prior week.
	ErrProgressionExceeded = errors.New("weekly load progression exceeded")
)

// UnitLoad computes the load score for one session.
//
// The formula is intensityFactor * durationMin (Easy=1, Moderate=2, Hard=3),
// which is monotonically non-decreasing in both duration and intensity and
// fully deterministic. Loads from different formulas are not comparable, so
// all loads in a plan must come from this function.
func UnitLoad(durationMin int, intensity Intensity) float64 {
	if durationMin < 0 {
		durationMin = 0
	}
	return intensity.Factor() * float64(durationMin)
}

// ValidateSession checks the per-session duration bound. It has no side
// effects and is safe to call repeatedly on the same input.
func ValidateSession(durationMin int) error {
	if durationMin < MinSessionMinutes || durationMin > MaxSessionMinutes {
		return ErrOutOfBounds
	}
	return nil
}

// ClampDuration returns the nearest in-bounds duration. Out-of-bounds
// durations are recovered locally with this clamp, never surfaced as fatal.
func ClampDuration(durationMin int) int {
	if durationMin < MinSessionMinutes {
		return MinSessionMinutes
	}
	if durationMin > MaxSessionMinutes {
		return MaxSessionMinutes
	}
	return durationMin
}

// MaxAllowedLoad returns the progression ceiling for a week that follows a
// week with priorTotal unit load. A non-positive priorTotal means there is
// no prior week and no ceiling applies.
func MaxAllowedLoad(priorTotal float64) float64 {
	if priorTotal <= 0 {
		return 0
	}
	return priorTotal * MaxProgressionRatio
}

// ValidateProgression checks the weekly progression ceiling. The first week
// (priorTotal <= 0) is unconstrained.
func ValidateProgression(priorTotal, proposedTotal float64) error {
	if priorTotal <= 0 {
		return nil
	}
	if proposedTotal > MaxAllowedLoad(priorTotal) {
		return ErrProgressionExceeded
	}
	return nil
}

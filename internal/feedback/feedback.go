// Package feedback aggregates end-of-week reflection entries into an
// adherence percentage, a mean RPE, and a qualitative label.
package feedback

import (
	"fmt"
	"strings"
)

// Entry is one session's reflection: whether it was completed and, when
// recorded, the RPE (1-10) the athlete reported for it.
type Entry struct {
	SessionID string `json:"session_id"`
	Completed bool   `json:"completed"`
	RPE       int    `json:"rpe"`
}

// Qualitative labels produced by Summarize. Thresholds are documented on
// labelFor.
const (
	LabelOnTrack         = "on track"
	LabelOverreaching    = "overreaching"
	LabelOffTrack        = "off track"
	LabelReadyToProgress = "ready to progress"
)

// Summary is the aggregate view of one completed week.
type Summary struct {
	TotalSessions     int      `json:"total_sessions"`
	CompletedSessions int      `json:"completed_sessions"`
	AdherencePct      float64  `json:"adherence_pct"`
	MeanRPE           *float64 `json:"mean_rpe,omitempty"`
	Label             string   `json:"label"`
	Message           string   `json:"message"`
}

// Summarize computes the week's adherence percentage and mean RPE and maps
// them to a label. RPE values outside 1-10 (including the unrecorded zero)
// are ignored for the mean; only completed sessions contribute RPE. Pure
// function: it never mutates its input and holds no state.
func Summarize(entries []Entry) Summary {
	s := Summary{TotalSessions: len(entries)}
	if len(entries) == 0 {
		s.Label = LabelOffTrack
		s.Message = "No reflection data entered yet."
		return s
	}

	var rpeSum, rpeCount int
	for _, e := range entries {
		if !e.Completed {
			continue
		}
		s.CompletedSessions++
		if e.RPE >= 1 && e.RPE <= 10 {
			rpeSum += e.RPE
			rpeCount++
		}
	}

	s.AdherencePct = float64(s.CompletedSessions) / float64(s.TotalSessions) * 100
	if rpeCount > 0 {
		mean := float64(rpeSum) / float64(rpeCount)
		s.MeanRPE = &mean
	}

	s.Label = labelFor(s.AdherencePct, s.MeanRPE)
	s.Message = message(s)
	return s
}

// labelFor applies the fixed thresholds: mean RPE >= 8 means the week was
// too hard regardless of adherence; adherence below 50% means the plan is
// not being followed; low effort (<= 3) with solid adherence (>= 70%) leaves
// room to progress; everything else is on track.
func labelFor(adherencePct float64, meanRPE *float64) string {
	if meanRPE != nil && *meanRPE >= 8 {
		return LabelOverreaching
	}
	if adherencePct < 50 {
		return LabelOffTrack
	}
	if meanRPE != nil && *meanRPE <= 3 && adherencePct >= 70 {
		return LabelReadyToProgress
	}
	return LabelOnTrack
}

func message(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You completed %d of %d sessions (%.0f%% adherence).",
		s.CompletedSessions, s.TotalSessions, s.AdherencePct)

	if s.MeanRPE == nil {
		b.WriteString(" No effort scores were recorded for completed sessions.")
		return b.String()
	}

	fmt.Fprintf(&b, " Average effort on completed sessions was about %.1f/10.", *s.MeanRPE)

	switch s.Label {
	case LabelOverreaching:
		b.WriteString(" That is quite high. Next week, it may be safer to hold or slightly reduce intensity rather than pushing further.")
	case LabelReadyToProgress:
		b.WriteString(" Effort scores are low and consistency is good. A small progression next week may be reasonable if everything feels comfortable.")
	case LabelOffTrack:
		b.WriteString(" Consistency slipped this week. Aim for fewer, easier sessions you can actually complete before adding load.")
	default:
		b.WriteString(" Effort looks broadly appropriate. Keep aiming for this balance of challenge and control.")
	}
	return b.String()
}

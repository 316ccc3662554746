package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/claude/coachplan/internal/rules"
	"github.com/google/uuid"
)

// Generator supplies candidate sessions for a request, typically from the AI
// coach. Generated sessions are untrusted: the composer re-validates every
// one of them before they reach a plan.
type Generator interface {
	Sessions(ctx context.Context, req Request) ([]Session, error)
}

// Composer turns a plan request into a validated WeeklyPlan. It prefers the
// Generator when one is configured and falls back to the built-in templates,
// so a plan is always produced.
type Composer struct {
	gen Generator
	log *slog.Logger
}

// NewComposer creates a Composer. gen may be nil, in which case only the
// rules-based templates are used.
func NewComposer(gen Generator, log *slog.Logger) *Composer {
	return &Composer{gen: gen, log: log}
}

// Compose builds the weekly plan for req. It never returns an error: AI
// failures degrade to the template plan, out-of-bounds durations are clamped,
// and progression violations are repaired by a single scale-down pass.
func (c *Composer) Compose(ctx context.Context, req Request) *WeeklyPlan {
	req = normalizeRequest(req)

	var sessions []Session
	var notice string

	if c.gen != nil {
		generated, err := c.gen.Sessions(ctx, req)
		switch {
		case err != nil:
			c.log.Warn("plan generator failed, using template plan", "sport", req.Sport, "error", err)
			notice = "AI coach unavailable; showing the rules-based plan."
		case len(generated) == 0:
			c.log.Warn("plan generator returned no sessions, using template plan", "sport", req.Sport)
			notice = "AI coach unavailable; showing the rules-based plan."
		default:
			sessions = generated
		}
	}

	if sessions == nil {
		sessions = templateSessions(req.Sport, req.Level, req.SessionsPerWeek, req.Contraindications)
	}

	sessions = c.sanitize(sessions)
	total := totalLoad(sessions)

	if err := rules.ValidateProgression(req.LastWeekLoad, total); err != nil {
		if errors.Is(err, rules.ErrProgressionExceeded) {
			allowed := rules.MaxAllowedLoad(req.LastWeekLoad)
			c.log.Info("progression guardrail applied",
				"prior_load", req.LastWeekLoad,
				"proposed_load", total,
				"allowed_load", allowed,
			)
			sessions, total = c.repairProgression(sessions, allowed)
			notice = joinNotices(notice, fmt.Sprintf(
				"Load guardrail applied: weekly load reduced to stay within +10%% of last week (%.0f -> target <= %.0f).",
				req.LastWeekLoad, allowed))
		}
	} else if req.LastWeekLoad > 0 {
		notice = joinNotices(notice, fmt.Sprintf(
			"Load check: planned weekly load %.0f vs last week %.0f (within the +10%% rule).",
			total, req.LastWeekLoad))
	}

	var ratio float64
	if req.LastWeekLoad > 0 {
		ratio = total / req.LastWeekLoad
	}

	return &WeeklyPlan{
		ID:               uuid.NewString(),
		Sport:            req.Sport,
		Level:            req.Level,
		Sessions:         sessions,
		TotalUnitLoad:    total,
		PriorLoad:        req.LastWeekLoad,
		ProgressionRatio: ratio,
		Notice:           notice,
		CreatedAt:        time.Now().UTC(),
	}
}

// sanitize enforces the per-session rules on every candidate session:
// durations are clamped into bounds, unit loads are recomputed from the
// canonical formula, IDs are assigned, and the week is ordered Mon..Sun.
func (c *Composer) sanitize(sessions []Session) []Session {
	out := make([]Session, len(sessions))
	copy(out, sessions)

	for i := range out {
		s := &out[i]
		if !s.Intensity.Valid() {
			s.Intensity = rules.ParseIntensity(string(s.Intensity))
		}
		if err := rules.ValidateSession(s.DurationMin); err != nil {
			clamped := rules.ClampDuration(s.DurationMin)
			c.log.Info("session duration clamped", "day", s.Day, "from", s.DurationMin, "to", clamped)
			s.DurationMin = clamped
		}
		s.UnitLoad = rules.UnitLoad(s.DurationMin, s.Intensity)
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return DayIndex(out[i].Day) < DayIndex(out[j].Day)
	})
	return out
}

// repairProgression scales every session down so the week fits under the
// progression ceiling. One deterministic pass: durations are scaled by
// allowed/current and re-clamped to the 20-minute floor. When the floor
// keeps the week above the ceiling, the duration bound wins and the
// shortfall is logged.
func (c *Composer) repairProgression(sessions []Session, allowed float64) ([]Session, float64) {
	current := totalLoad(sessions)
	if current <= 0 || current <= allowed {
		return sessions, current
	}

	factor := allowed / current
	for i := range sessions {
		s := &sessions[i]
		scaled := rules.ClampDuration(int(float64(s.DurationMin) * factor))
		s.DurationMin = scaled
		s.UnitLoad = rules.UnitLoad(scaled, s.Intensity)
		s.Notes += "\n\nLoad guardrail applied: session shortened to keep weekly load within +10% of last week."
	}

	total := totalLoad(sessions)
	if total > allowed {
		c.log.Warn("progression ceiling below minimum legal week, duration floor wins",
			"allowed_load", allowed, "repaired_load", total)
	}
	return sessions, total
}

func totalLoad(sessions []Session) float64 {
	var total float64
	for _, s := range sessions {
		total += s.UnitLoad
	}
	return total
}

func normalizeRequest(req Request) Request {
	if req.Sport == "" {
		req.Sport = "Generic conditioning"
	}
	req.Level = NormalizeLevel(req.Level)
	if req.SessionsPerWeek < 1 {
		req.SessionsPerWeek = 3
	}
	if req.SessionsPerWeek > 7 {
		req.SessionsPerWeek = 7
	}
	if req.LastWeekLoad < 0 {
		req.LastWeekLoad = 0
	}
	return req
}

func joinNotices(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}

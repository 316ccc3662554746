package plan

import (
	"fmt"

	"github.com/claude/coachplan/internal/rules"
)

// template is a session blueprint before IDs and unit loads are assigned.
type template struct {
	day         string
	focus       string
	intensity   rules.Intensity
	durationMin int
	notes       string
}

// templateSessions builds the rules-based fallback week for a sport/level.
// Boxing has hand-written per-level templates; every other sport gets the
// generic conditioning week.
func templateSessions(sport, level string, sessionsPerWeek int, contraindications string) []Session {
	var tpls []template
	if normalizeSport(sport) == "boxing" {
		tpls = boxingTemplates(level, contraindications)
	} else {
		tpls = genericTemplates(sport, sessionsPerWeek, contraindications)
	}

	if sessionsPerWeek <= len(tpls) {
		tpls = tpls[:sessionsPerWeek]
	} else {
		// Cycle the first template to fill the requested count.
		for len(tpls) < sessionsPerWeek {
			extra := tpls[0]
			tpls = append(tpls, extra)
		}
	}

	sessions := make([]Session, 0, len(tpls))
	for _, t := range tpls {
		sessions = append(sessions, Session{
			Day:         t.day,
			Focus:       t.focus,
			Intensity:   t.intensity,
			DurationMin: t.durationMin,
			Notes:       t.notes,
		})
	}
	return sessions
}

func normalizeSport(sport string) string {
	switch sport {
	case "Boxing", "boxing":
		return "boxing"
	}
	return "generic"
}

func caution(contraindications string) string {
	if contraindications == "" {
		return "None stated"
	}
	return contraindications
}

func boxingTemplates(level, contraindications string) []template {
	switch NormalizeLevel(level) {
	case "intermediate":
		return []template{
			{
				day:         "Mon",
				focus:       "Technical combinations & footwork",
				intensity:   rules.Moderate,
				durationMin: 35,
				notes: "Warm-up: 5 min skipping + joint mobility.\n" +
					"Combos on bag/shadow: 5 x 3 min (jab-cross-hook, jab-cross-cross-hook), 60-90 s rest.\n" +
					"Footwork rounds: 3 x 2 min circling and cutting the ring.\n" +
					"Cool-down: 5 min light walk + stretching.\n" +
					fmt.Sprintf("Modify combinations if they aggravate: %s.", caution(contraindications)),
			},
			{
				day:         "Wed",
				focus:       "Defence, counters & core",
				intensity:   rules.Moderate,
				durationMin: 35,
				notes: "Warm-up: 5 min dynamic warm-up.\n" +
					"Defence rounds: 4 x 3 min slips, ducks, parries, then counter 1-2 punches.\n" +
					"Shadow or bag work: 3 x 2 min focusing on clean form at moderate pace.\n" +
					"Core circuit: 3 rounds (20 s plank, 10 sit-ups, 10 Russian twists), 60 s rest.\n" +
					fmt.Sprintf("Respect pain or previous issues: %s.", caution(contraindications)),
			},
			{
				day:         "Fri",
				focus:       "Conditioning: intervals & power focus",
				intensity:   rules.Hard,
				durationMin: 35,
				notes: "Warm-up: 5-7 min.\n" +
					"Intervals: 8 x 30 s high-output bag punching (all punches) + 60 s light movement.\n" +
					"Power focus: 3 x 2 min heavier single shots and 2-3 punch combinations.\n" +
					"Cool-down: 5-8 min stretching & breathing.\n" +
					"Keep technique tidy; reduce power if form breaks under fatigue.",
			},
		}
	case "advanced":
		return []template{
			{
				day:         "Tue",
				focus:       "High-complexity combinations & movement",
				intensity:   rules.Hard,
				durationMin: 40,
				notes: "Warm-up: 8 min mixed skipping + mobility.\n" +
					"Complex combos: 5 x 3 min on bag/pads, mixing level changes and angles.\n" +
					"Footwork intensity: 3 x 2 min high-tempo ring movement.\n" +
					"Cool-down: 5-8 min mobility & stretch.\n" +
					fmt.Sprintf("Monitor joints and previous issues: %s.", caution(contraindications)),
			},
			{
				day:         "Thu",
				focus:       "Defence, counters & conditioning mixed",
				intensity:   rules.Hard,
				durationMin: 40,
				notes: "Warm-up: 6-8 min.\n" +
					"Defence & counter rounds: 4 x 3 min with slips, blocks and quick counters.\n" +
					"Conditioning: 6 x 30 s punch sprints + 60 s active rest.\n" +
					"Core & stability: 3 x 30 s plank variations.\n" +
					"Cool-down as normal; adjust if any warning signs.",
			},
			{
				day:         "Sat",
				focus:       "Mixed technical conditioning (no full sparring)",
				intensity:   rules.Moderate,
				durationMin: 40,
				notes: "Warm-up: 6-8 min.\n" +
					"Shadow rounds: 3 x 3 min visualising an opponent.\n" +
					"Bag rounds: 4 x 3 min mixing power and volume.\n" +
					"Cool-down: 5-8 min.\n" +
					"Contact work is deliberately avoided to reduce risk.",
			},
		}
	default: // novice
		return []template{
			{
				day:         "Tue",
				focus:       "Boxing basics: stance, guard & straight punches",
				intensity:   rules.Easy,
				durationMin: 25,
				notes: "Warm-up: 5 min skipping or brisk walk.\n" +
					"Technique: 4 x 2 min shadow boxing (jab-cross, basic guard) with 1 min rest.\n" +
					"Bag/pillow: 4 x 1 min straight punches, light power.\n" +
					"Cool-down: 5 min shoulder, wrist and calf stretches.\n" +
					fmt.Sprintf("Contraindications to watch: %s.", caution(contraindications)),
			},
			{
				day:         "Thu",
				focus:       "Footwork & defence foundations",
				intensity:   rules.Moderate,
				durationMin: 25,
				notes: "Warm-up: 5 min dynamic mobility (hips, ankles, shoulders).\n" +
					"Main: 4 x 2 min shadow boxing with basic steps (forward/back/side) and guard up.\n" +
					"Defence drill: 3 x 2 min slip/duck movements in front of mirror or wall.\n" +
					"Core: 3 x 20 s plank, 20 s rest.\n" +
					"Cool-down: 5 min relaxed walk + breathing.\n" +
					fmt.Sprintf("Avoid any movements that aggravate: %s.", caution(contraindications)),
			},
			{
				day:         "Sat",
				focus:       "Conditioning: simple intervals + technique",
				intensity:   rules.Moderate,
				durationMin: 30,
				notes: "Warm-up: 5 min skipping or light jog.\n" +
					"Intervals: 6 x 30 s fast straight punches (shadow or bag) + 60 s easy movement.\n" +
					"Technique: 4 x 2 min shadow boxing, mixing punches with basic defence.\n" +
					"Cool-down: 5-8 min stretch (hips, hamstrings, shoulders).\n" +
					fmt.Sprintf("Stop if pain or dizziness occurs, especially given: %s.", caution(contraindications)),
			},
		}
	}
}

func genericTemplates(sport string, sessionsPerWeek int, contraindications string) []template {
	tpls := make([]template, 0, sessionsPerWeek)
	for i := 0; i < sessionsPerWeek; i++ {
		tpls = append(tpls, template{
			day:         DaysOrder[(i*2)%len(DaysOrder)],
			focus:       fmt.Sprintf("%s conditioning session %d", sport, i+1),
			intensity:   rules.Moderate,
			durationMin: 30,
			notes: "Warm-up: 5-10 min easy movement.\n" +
				"Main: intervals or tempo work relevant to the sport.\n" +
				"Cool-down: 5-10 min mobility & stretching.\n" +
				fmt.Sprintf("Contraindications to respect: %s.", caution(contraindications)),
		})
	}
	return tpls
}

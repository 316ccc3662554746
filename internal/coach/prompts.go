package coach

import (
	"fmt"
	"strings"

	"github.com/claude/coachplan/internal/plan"
)

const planSystemPrompt = "You are a cautious strength and conditioning coach who avoids unnecessary risk."

const motivateSystemPrompt = "You are a safe, encouraging sports coach."

const safetyContext = `General rules:
- Focus on non-contact, non-maximal work.
- Use body-weight, light conditioning, or bag/shadow work (for boxing).
- No heavy barbell max testing, no dangerous plyometrics.
- Encourage listening to the body, stopping if anything feels sharp or worrying.`

// planPrompt asks for a strict-JSON week. The total-minutes target steers
// the provider toward a week that already fits the progression ceiling;
// the composer still enforces it afterwards.
func planPrompt(req plan.Request) string {
	return fmt.Sprintf(`Design a safe one-week training plan for a recreational athlete.
Return ONLY valid JSON with a list under key 'sessions', no extra commentary.

Sport: %s
Level: %s
Approximate sessions per week: %d
Approximate total minutes target: %d
Things to be careful with: %s

%s

For each session, include fields:
- day: one of Mon, Tue, Wed, Thu, Fri, Sat, Sun
- focus: short description of the main aim (e.g., 'Intervals and tempo work')
- intensity: 'Easy', 'Moderate', or 'Hard'
- duration_min: integer between 20 and 60 minutes
- notes: outline warm-up, main part and cool-down in plain language

Example JSON structure:
{
  "sessions": [
    {
      "day": "Tue",
      "focus": "Easy aerobic base run",
      "intensity": "Easy",
      "duration_min": 30,
      "notes": "Warm-up: ... Main: ... Cool-down: ..."
    }
  ]
}`,
		req.Sport, req.Level, req.SessionsPerWeek, targetMinutes(req),
		orNone(req.Contraindications), safetyContext)
}

// targetMinutes derives the weekly minutes hint: level-scaled for a first
// week, otherwise 80% of last week's load bounded to a sane range.
func targetMinutes(req plan.Request) int {
	if req.LastWeekLoad <= 0 {
		perSession := 25
		switch req.Level {
		case "intermediate":
			perSession = 35
		case "advanced":
			perSession = 40
		}
		return req.SessionsPerWeek * perSession
	}
	target := int(req.LastWeekLoad * 0.8)
	if target < 60 {
		target = 60
	}
	if target > 300 {
		target = 300
	}
	return target
}

func motivatePrompt(p *plan.WeeklyPlan) string {
	summaries := make([]string, 0, len(p.Sessions))
	for _, s := range p.Sessions {
		summaries = append(summaries, fmt.Sprintf("%s: %s (%s, %d min)", s.Day, s.Focus, s.Intensity, s.DurationMin))
	}

	return fmt.Sprintf(`You are a calm, supportive sports coach. Write a short motivational message (120-160 words) for this week. Keep it safe, realistic and encouraging. Highlight pacing, rest, technique quality, and listening to the body. Avoid medical advice and do not promise specific results.

Sport: %s
Level: %s
Weekly minutes: %d
Weekly load units: %.0f
Sessions: %s`,
		p.Sport, p.Level, p.TotalMinutes(), p.TotalUnitLoad, strings.Join(summaries, "; "))
}

func questionContext(p *plan.WeeklyPlan) string {
	sport, level, sessionText := "Not set", "Not set", "No plan generated yet."
	if p != nil {
		sport, level = p.Sport, p.Level
		summaries := make([]string, 0, len(p.Sessions))
		for _, s := range p.Sessions {
			summaries = append(summaries, fmt.Sprintf("%s: %s (%s, %d min)", s.Day, s.Focus, s.Intensity, s.DurationMin))
		}
		if len(summaries) > 0 {
			sessionText = strings.Join(summaries, "; ")
		}
	}

	return fmt.Sprintf(`You are an in-app coaching assistant. Answer questions about the training plan, RPE, load, and safety in simple, friendly language. Do NOT give medical advice or talk about internal implementation details. Do not mention any models or APIs.

Current sport: %s
Level: %s
Sessions: %s

RPE explanation: 1-10 scale of how hard it felt. 1 = very easy, 10 = maximum effort.
Load units: an internal number that combines how long and how hard sessions are. Higher numbers mean more training stress.`,
		sport, level, sessionText)
}

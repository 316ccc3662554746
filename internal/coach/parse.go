package coach

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawSession is the provider's JSON shape for one session, before any
// validation or normalization.
type rawSession struct {
	Day         string `json:"day"`
	Focus       string `json:"focus"`
	Intensity   string `json:"intensity"`
	DurationMin int    `json:"duration_min"`
	Notes       string `json:"notes"`
}

// parseSessions extracts the sessions list from a model reply. Providers
// sometimes wrap JSON in markdown fences or prose despite instructions, so
// the parser strips fences and trims to the outermost JSON object before
// unmarshaling.
func parseSessions(text string) ([]rawSession, error) {
	cleaned := extractJSON(text)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var payload struct {
		Sessions []rawSession `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("decoding sessions JSON: %w", err)
	}
	if len(payload.Sessions) == 0 {
		return nil, fmt.Errorf("response contains no sessions")
	}
	return payload.Sessions, nil
}

func extractJSON(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		s = strings.Trim(s, "`")
		s = strings.TrimSpace(strings.TrimPrefix(s, "json"))
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

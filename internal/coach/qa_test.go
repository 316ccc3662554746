package coach

import (
	"strings"
	"testing"
)

// TestCannedAnswer verifies the keyword routing of the rules-only Q&A.
func TestCannedAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question string
		contains string
	}{
		{"rpe", "What does RPE mean?", "Rate of Perceived Exertion"},
		{"effort maps to rpe", "How should I rate my effort?", "Rate of Perceived Exertion"},
		{"load", "Why did my load go down?", "Unit load"},
		{"safety", "Is this safe with my knee?", "20-60 minutes"},
		{"injury maps to safety", "What about injury risk?", "listen to your body"},
		{"fallback", "What should I eat before training?", "cannot give medical advice"},
		{"empty", "   ", "type a question"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CannedAnswer(tt.question)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("CannedAnswer(%q) = %q, want substring %q", tt.question, got, tt.contains)
			}
		})
	}
}

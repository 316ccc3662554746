package feedback

import "testing"

// TestSummarizeTypicalWeek pins the worked example: 5 sessions, 4 completed
// with RPEs 6, 7, 5, 8 gives 80% adherence, mean RPE 6.5, on track.
func TestSummarizeTypicalWeek(t *testing.T) {
	entries := []Entry{
		{SessionID: "a", Completed: true, RPE: 6},
		{SessionID: "b", Completed: true, RPE: 7},
		{SessionID: "c", Completed: true, RPE: 5},
		{SessionID: "d", Completed: true, RPE: 8},
		{SessionID: "e", Completed: false},
	}
	s := Summarize(entries)

	if s.TotalSessions != 5 || s.CompletedSessions != 4 {
		t.Errorf("completed = %d/%d, want 4/5", s.CompletedSessions, s.TotalSessions)
	}
	if s.AdherencePct != 80 {
		t.Errorf("adherence_pct = %v, want 80", s.AdherencePct)
	}
	if s.MeanRPE == nil || *s.MeanRPE != 6.5 {
		t.Errorf("mean_rpe = %v, want 6.5", s.MeanRPE)
	}
	if s.Label != LabelOnTrack {
		t.Errorf("label = %q, want %q", s.Label, LabelOnTrack)
	}
}

// TestSummarizeLabels verifies the threshold mapping for each label.
func TestSummarizeLabels(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    string
	}{
		{
			"overreaching on high effort",
			[]Entry{{Completed: true, RPE: 9}, {Completed: true, RPE: 8}, {Completed: true, RPE: 8}},
			LabelOverreaching,
		},
		{
			"overreaching beats low adherence",
			[]Entry{{Completed: true, RPE: 10}, {Completed: false}, {Completed: false}},
			LabelOverreaching,
		},
		{
			"off track on low adherence",
			[]Entry{{Completed: true, RPE: 5}, {Completed: false}, {Completed: false}},
			LabelOffTrack,
		},
		{
			"ready to progress on easy consistent week",
			[]Entry{{Completed: true, RPE: 2}, {Completed: true, RPE: 3}, {Completed: true, RPE: 3}},
			LabelReadyToProgress,
		},
		{
			"on track in the middle",
			[]Entry{{Completed: true, RPE: 5}, {Completed: true, RPE: 6}, {Completed: false}},
			LabelOnTrack,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s := Summarize(tt.entries); s.Label != tt.want {
				t.Errorf("label = %q, want %q", s.Label, tt.want)
			}
		})
	}
}

// TestSummarizeIgnoresInvalidRPE verifies RPE values outside 1-10 (including
// the unrecorded zero) do not contribute to the mean.
func TestSummarizeIgnoresInvalidRPE(t *testing.T) {
	s := Summarize([]Entry{
		{Completed: true, RPE: 6},
		{Completed: true, RPE: 0},
		{Completed: true, RPE: 15},
	})
	if s.MeanRPE == nil || *s.MeanRPE != 6 {
		t.Errorf("mean_rpe = %v, want 6", s.MeanRPE)
	}
	if s.CompletedSessions != 3 {
		t.Errorf("completed = %d, want 3 (invalid RPE still counts as completed)", s.CompletedSessions)
	}
}

// TestSummarizeSkippedSessionsDoNotCountRPE verifies RPE on a skipped session
// is ignored entirely.
func TestSummarizeSkippedSessionsDoNotCountRPE(t *testing.T) {
	s := Summarize([]Entry{
		{Completed: true, RPE: 4},
		{Completed: false, RPE: 10},
	})
	if s.MeanRPE == nil || *s.MeanRPE != 4 {
		t.Errorf("mean_rpe = %v, want 4", s.MeanRPE)
	}
}

// TestSummarizeNoRPERecorded verifies the mean is absent, not zero, when no
// completed session carries a valid RPE.
func TestSummarizeNoRPERecorded(t *testing.T) {
	s := Summarize([]Entry{{Completed: true}, {Completed: true}})
	if s.MeanRPE != nil {
		t.Errorf("mean_rpe = %v, want nil", *s.MeanRPE)
	}
	if s.Label != LabelOnTrack {
		t.Errorf("label = %q, want %q (100%% adherence, no effort data)", s.Label, LabelOnTrack)
	}
}

// TestSummarizeEmpty verifies the degenerate empty week.
func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Label != LabelOffTrack {
		t.Errorf("label = %q, want %q", s.Label, LabelOffTrack)
	}
	if s.AdherencePct != 0 || s.TotalSessions != 0 {
		t.Errorf("adherence = %v over %d sessions, want zeroes", s.AdherencePct, s.TotalSessions)
	}
}

package rules

import (
	"errors"
	"testing"
)

// TestUnitLoad verifies the load formula: intensity factor times duration.
func TestUnitLoad(t *testing.T) {
	tests := []struct {
		name      string
		duration  int
		intensity Intensity
		want      float64
	}{
		{"easy 30", 30, Easy, 30},
		{"moderate 30", 30, Moderate, 60},
		{"hard 30", 30, Hard, 90},
		{"hard 60", 60, Hard, 180},
		{"zero duration", 0, Hard, 0},
		{"negative duration treated as zero", -10, Moderate, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnitLoad(tt.duration, tt.intensity); got != tt.want {
				t.Errorf("UnitLoad(%d, %s) = %v, want %v", tt.duration, tt.intensity, got, tt.want)
			}
		})
	}
}

// TestUnitLoadMonotonic verifies load never decreases as duration or
// intensity increases.
func TestUnitLoadMonotonic(t *testing.T) {
	for d := 20; d < 60; d++ {
		if UnitLoad(d+1, Moderate) < UnitLoad(d, Moderate) {
			t.Fatalf("load decreased when duration grew from %d to %d", d, d+1)
		}
	}
	for _, d := range []int{20, 45, 60} {
		easy, mod, hard := UnitLoad(d, Easy), UnitLoad(d, Moderate), UnitLoad(d, Hard)
		if easy > mod || mod > hard {
			t.Errorf("intensity ordering broken at %d min: easy=%v moderate=%v hard=%v", d, easy, mod, hard)
		}
	}
}

// TestValidateSession verifies the 20-60 minute bound.
func TestValidateSession(t *testing.T) {
	tests := []struct {
		duration int
		wantErr  bool
	}{
		{19, true},
		{20, false},
		{45, false},
		{60, false},
		{61, true},
		{0, true},
		{-5, true},
	}
	for _, tt := range tests {
		err := ValidateSession(tt.duration)
		if tt.wantErr && !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ValidateSession(%d) = %v, want ErrOutOfBounds", tt.duration, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ValidateSession(%d) = %v, want nil", tt.duration, err)
		}
	}
}

// TestClampDuration verifies out-of-bounds durations snap to the nearest
// bound and in-bounds values pass through, and that clamping is idempotent.
func TestClampDuration(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{10, 20},
		{19, 20},
		{20, 20},
		{45, 45},
		{60, 60},
		{70, 60},
		{300, 60},
		{-1, 20},
	}
	for _, tt := range tests {
		got := ClampDuration(tt.in)
		if got != tt.want {
			t.Errorf("ClampDuration(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if again := ClampDuration(got); again != got {
			t.Errorf("ClampDuration not idempotent: %d -> %d -> %d", tt.in, got, again)
		}
		if err := ValidateSession(got); err != nil {
			t.Errorf("clamped duration %d still out of bounds", got)
		}
	}
}

// TestValidateProgression verifies the +10% weekly ceiling, including the
// boundary case where the proposal sits exactly on the ceiling.
func TestValidateProgression(t *testing.T) {
	tests := []struct {
		name     string
		prior    float64
		proposed float64
		wantErr  bool
	}{
		{"first week unconstrained", 0, 500, false},
		{"negative prior unconstrained", -10, 500, false},
		{"within ceiling", 100, 105, false},
		{"exactly on ceiling", 100, 100 * MaxProgressionRatio, false},
		{"over ceiling", 100, 115, true},
		{"equal to prior", 200, 200, false},
		{"reduction always allowed", 200, 120, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgression(tt.prior, tt.proposed)
			if tt.wantErr && !errors.Is(err, ErrProgressionExceeded) {
				t.Errorf("ValidateProgression(%v, %v) = %v, want ErrProgressionExceeded", tt.prior, tt.proposed, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateProgression(%v, %v) = %v, want nil", tt.prior, tt.proposed, err)
			}
		})
	}
}

// TestMaxAllowedLoad verifies the ceiling value itself.
func TestMaxAllowedLoad(t *testing.T) {
	if got, want := MaxAllowedLoad(100), 100*MaxProgressionRatio; got != want {
		t.Errorf("MaxAllowedLoad(100) = %v, want %v", got, want)
	}
	if got := MaxAllowedLoad(0); got != 0 {
		t.Errorf("MaxAllowedLoad(0) = %v, want 0", got)
	}
}

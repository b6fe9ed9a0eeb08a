package difficulty

import (
	"math"
	"testing"
)

func TestCurrentConstantRange(t *testing.T) {
	for i := 0; i < 20; i++ {
		if got := Current(i, 4, 4, 20); got != 4 {
			t.Fatalf("round %d: expected 4, got %v", i, got)
		}
	}
}

func TestCurrentEndpointsAndMonotonic(t *testing.T) {
	const total = 20
	for start := MinLevel; start <= MaxLevel; start++ {
		for end := start; end <= MaxLevel; end++ {
			prev := -1.0
			for i := 0; i < total; i++ {
				got := Current(i, start, end, total)
				if got < prev {
					t.Fatalf("range %d-%d: round %d decreased %v -> %v", start, end, i, prev, got)
				}
				prev = got
			}
			if got := Current(0, start, end, total); got != float64(start) {
				t.Fatalf("range %d-%d: expected %d at round 0, got %v", start, end, start, got)
			}
			if got := Current(total-1, start, end, total); got != float64(end) {
				t.Fatalf("range %d-%d: expected %d at last round, got %v", start, end, end, got)
			}
		}
	}
}

func TestCurrentRoundsToTwoDecimals(t *testing.T) {
	got := Current(1, 1, 10, 20)
	if got != 1.47 {
		t.Fatalf("expected 1.47, got %v", got)
	}
	got = Current(7, 2, 9, 20)
	if got != 4.58 {
		t.Fatalf("expected 4.58, got %v", got)
	}
}

func TestCurrentSingleRound(t *testing.T) {
	if got := Current(0, 2, 9, 1); got != 2 {
		t.Fatalf("expected start level for single round, got %v", got)
	}
}

func TestForScalarReferenceScales(t *testing.T) {
	if got := ForScalar(1).Scale; got != ScaleAtMin {
		t.Fatalf("expected %v at level 1, got %v", ScaleAtMin, got)
	}
	if got := ForScalar(10).Scale; math.Abs(got-ScaleAtMax) > 1e-12 {
		t.Fatalf("expected %v at level 10, got %v", ScaleAtMax, got)
	}
	mid := ForScalar(5.5)
	if math.Abs(mid.Scale-0.85) > 1e-12 {
		t.Fatalf("expected 0.85 at level 5.5, got %v", mid.Scale)
	}
	if mid.Difficulty != 5.5 {
		t.Fatalf("expected difficulty to pass through, got %v", mid.Difficulty)
	}
}

func TestMaxDecoys(t *testing.T) {
	cases := map[float64]int{1: 0, 2.99: 0, 3: 1, 3.9: 1, 4: 2, 5.99: 2, 6: 3, 10: 3}
	for d, want := range cases {
		if got := MaxDecoys(d); got != want {
			t.Fatalf("MaxDecoys(%v) = %d, want %d", d, got, want)
		}
	}
}

func TestThresholdFlags(t *testing.T) {
	if UsesAltDecoy(6.99) || !UsesAltDecoy(7) {
		t.Fatalf("unexpected alt decoy threshold")
	}
	if Randomized(4.99) || !Randomized(5) {
		t.Fatalf("unexpected randomized threshold")
	}
	if got := ForScalar(1).Padding(); math.Abs(got-1.8) > 1e-12 {
		t.Fatalf("expected padding 1.8, got %v", got)
	}
}

func TestClampRange(t *testing.T) {
	tests := []struct {
		start, end int
		edited     Side
		wantStart  int
		wantEnd    int
	}{
		{3, 7, SideStart, 3, 7},
		{8, 5, SideStart, 8, 8},
		{8, 5, SideEnd, 5, 5},
		{0, 11, SideStart, 1, 10},
		{12, 4, SideStart, 10, 10},
		{6, -2, SideEnd, 1, 1},
	}
	for _, tt := range tests {
		s, e := ClampRange(tt.start, tt.end, tt.edited)
		if s != tt.wantStart || e != tt.wantEnd {
			t.Fatalf("ClampRange(%d, %d, %v) = %d, %d; want %d, %d", tt.start, tt.end, tt.edited, s, e, tt.wantStart, tt.wantEnd)
		}
	}
}

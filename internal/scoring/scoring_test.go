package scoring

import "testing"

func TestScorePerfectSession(t *testing.T) {
	res := Score([]int{200, 210, 190}, 0, 1, 1)
	if res.Average != 200 {
		t.Fatalf("expected average 200, got %d", res.Average)
	}
	if res.Best != 190 {
		t.Fatalf("expected best 190, got %d", res.Best)
	}
	if res.Handicap != 0 || res.Adjusted != 200 {
		t.Fatalf("unexpected handicap %v adjusted %v", res.Handicap, res.Adjusted)
	}
	if res.Base != 10 || res.Final != 10 {
		t.Fatalf("expected 10/10, got base %d final %d", res.Base, res.Final)
	}
	if res.Tier.Title != "HUMAN AIMBOT" {
		t.Fatalf("unexpected title %q", res.Tier.Title)
	}
	if !res.IsGood {
		t.Fatalf("expected good verdict")
	}
}

func TestScoreFalseStartPenalty(t *testing.T) {
	cases := []struct {
		results     []int
		falseStarts int
		base, final int
		title       string
		good        bool
	}{
		{[]int{300}, 2, 7, 5, "STANDARD ISSUE", false},
		{[]int{270}, 2, 8, 6, "STABLE BUILD", true},
	}
	for _, tc := range cases {
		res := Score(tc.results, tc.falseStarts, 1, 1)
		if res.Base != tc.base || res.Final != tc.final {
			t.Fatalf("%v: expected base %d final %d, got %d %d", tc.results, tc.base, tc.final, res.Base, res.Final)
		}
		if res.Tier.Title != tc.title {
			t.Fatalf("%v: unexpected title %q", tc.results, res.Tier.Title)
		}
		if res.IsGood != tc.good {
			t.Fatalf("%v: expected good=%v", tc.results, tc.good)
		}
	}
}

func TestScoreHandicap(t *testing.T) {
	res := Score([]int{300, 301}, 0, 1, 10)
	if res.AvgIntensity != 5.5 {
		t.Fatalf("expected intensity 5.5, got %v", res.AvgIntensity)
	}
	if res.Handicap != 36 {
		t.Fatalf("expected handicap 36, got %v", res.Handicap)
	}
	if res.Average != 300 || res.Adjusted != 264 {
		t.Fatalf("expected average 300 adjusted 264, got %d %v", res.Average, res.Adjusted)
	}
	if res.Base != 8 {
		t.Fatalf("expected base 8, got %d", res.Base)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	res := Score([]int{900}, 7, 1, 1)
	if res.Base != 2 || res.Final != 0 {
		t.Fatalf("expected base 2 final 0, got %d %d", res.Base, res.Final)
	}
	if res.Tier.Title != "SYSTEM LAG" || res.IsGood {
		t.Fatalf("unexpected tier %+v good=%v", res.Tier, res.IsGood)
	}
}

func TestAverageFloors(t *testing.T) {
	if got := Average([]int{100, 101}); got != 100 {
		t.Fatalf("expected floored 100, got %d", got)
	}
	if got := Average(nil); got != 0 {
		t.Fatalf("expected 0 for empty, got %d", got)
	}
}

func TestBaseScoreLadder(t *testing.T) {
	cases := []struct {
		adjusted float64
		want     int
	}{
		{219.9, 10}, {220, 9}, {249, 9}, {250, 8}, {279, 8}, {280, 7},
		{309.5, 7}, {310, 6}, {349, 6}, {350, 5}, {399, 5}, {400, 4},
		{479, 4}, {480, 3}, {549, 3}, {550, 2}, {5000, 2}, {-20, 10},
	}
	for _, tt := range cases {
		if got := BaseScore(tt.adjusted); got != tt.want {
			t.Fatalf("BaseScore(%v) = %d, want %d", tt.adjusted, got, tt.want)
		}
	}
}

func TestTierFor(t *testing.T) {
	want := map[int]string{
		10: "HUMAN AIMBOT",
		9:  "CYBERNETIC",
		8:  "ELITE OPERATIVE",
		7:  "SYSTEM SPECIALIST",
		6:  "STABLE BUILD",
		5:  "STANDARD ISSUE",
		4:  "WORK IN PROGRESS",
		3:  "POWER SAVER MODE",
		2:  "SYSTEM LAG",
		1:  "SYSTEM LAG",
		0:  "SYSTEM LAG",
	}
	for score, title := range want {
		tier := TierFor(score)
		if tier.Title != title {
			t.Fatalf("TierFor(%d) = %q, want %q", score, tier.Title, title)
		}
		if tier.Verdict == "" {
			t.Fatalf("TierFor(%d) has empty verdict", score)
		}
	}
}

func TestBandFor(t *testing.T) {
	if BandFor(8) != BandHigh || BandFor(10) != BandHigh {
		t.Fatalf("expected high band at 8+")
	}
	if BandFor(3) != BandLow || BandFor(0) != BandLow {
		t.Fatalf("expected low band at 3 and below")
	}
	if BandFor(5) != BandMid {
		t.Fatalf("expected mid band at 5")
	}
}

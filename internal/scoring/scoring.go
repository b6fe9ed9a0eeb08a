// Package scoring turns a session's reaction times and false starts into a
// handicapped score and verdict tier.
package scoring

// handicapPerLevel is the time credit per level of average intensity above 1.
const handicapPerLevel = 8.0

// goodScore is the lowest final score that earns the good verdict cue.
const goodScore = 6

// Tier is the title and verdict shown for a final score.
type Tier struct {
	Title   string
	Verdict string
}

// Band groups scores for coloring.
type Band int

// Score bands.
const (
	BandMid Band = iota
	BandHigh
	BandLow
)

// Result is the scored outcome of a session.
type Result struct {
	Average      int
	Best         int
	FalseStarts  int
	AvgIntensity float64
	Handicap     float64
	Adjusted     float64
	Base         int
	Final        int
	Tier         Tier
	IsGood       bool
}

var ladder = []struct {
	below float64
	score int
}{
	{220, 10},
	{250, 9},
	{280, 8},
	{310, 7},
	{350, 6},
	{400, 5},
	{480, 4},
	{550, 3},
}

const floorScore = 2

var tiers = map[int]Tier{
	10: {"HUMAN AIMBOT", "Break the simulation. You’ve officially peaked."},
	9:  {"CYBERNETIC", "Exceptional output. Your hardware is elite."},
	8:  {"ELITE OPERATIVE", "High-tier performance. Very few can keep up."},
	7:  {"SYSTEM SPECIALIST", "Solid results. You’re clearly in the zone."},
	6:  {"STABLE BUILD", "Reliable and consistent. A very safe bet."},
	5:  {"STANDARD ISSUE", "Within parameters. Good, but there’s more in you."},
	4:  {"WORK IN PROGRESS", "Acceptable for now. Let’s aim for more \"spark.\""},
	3:  {"POWER SAVER MODE", "You’re taking it easy. Time to wake the system up."},
}

var lagTier = Tier{"SYSTEM LAG", "Low energy detected. A reboot is highly advised."}

// Score computes the session result. results holds reaction times in ms.
func Score(results []int, falseStarts, startLevel, endLevel int) Result {
	avg, best := Average(results), Best(results)
	avgIntensity := float64(startLevel+endLevel) / 2
	handicap := (avgIntensity - 1) * handicapPerLevel
	adjusted := float64(avg) - handicap
	base := BaseScore(adjusted)
	final := base - falseStarts
	if final < 0 {
		final = 0
	}
	return Result{
		Average:      avg,
		Best:         best,
		FalseStarts:  falseStarts,
		AvgIntensity: avgIntensity,
		Handicap:     handicap,
		Adjusted:     adjusted,
		Base:         base,
		Final:        final,
		Tier:         TierFor(final),
		IsGood:       final >= goodScore,
	}
}

// Average returns the floored mean of the reaction times, 0 when empty.
func Average(results []int) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r
	}
	return sum / len(results)
}

// Best returns the fastest reaction time, 0 when empty.
func Best(results []int) int {
	if len(results) == 0 {
		return 0
	}
	best := results[0]
	for _, r := range results[1:] {
		if r < best {
			best = r
		}
	}
	return best
}

// BaseScore buckets a handicapped average into the 2-10 ladder.
func BaseScore(adjusted float64) int {
	for _, step := range ladder {
		if adjusted < step.below {
			return step.score
		}
	}
	return floorScore
}

// TierFor returns the title and verdict for a final score.
func TierFor(final int) Tier {
	if final >= 10 {
		return tiers[10]
	}
	if tier, ok := tiers[final]; ok {
		return tier
	}
	return lagTier
}

// BandFor classifies a score for display.
func BandFor(score int) Band {
	switch {
	case score >= 8:
		return BandHigh
	case score <= 3:
		return BandLow
	default:
		return BandMid
	}
}

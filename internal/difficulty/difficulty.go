// Package difficulty maps rounds and level ranges to per-round parameters.
package difficulty

import "github.com/shopspring/decimal"

// Level bounds for the configured range.
const (
	MinLevel = 1
	MaxLevel = 10
)

// Reference target scales at the ends of the level range.
const (
	ScaleAtMin = 1.5
	ScaleAtMax = 0.2
)

// Params holds the derived parameters for one round.
type Params struct {
	Scale      float64
	Difficulty float64
}

// Side names which end of the level range was edited.
type Side int

// Range ends.
const (
	SideStart Side = iota
	SideEnd
)

// Current returns the difficulty scalar for a round, interpolated linearly from
// startLevel at round 0 to endLevel at the last round and rounded to 2 decimals.
func Current(roundIndex, startLevel, endLevel, totalRounds int) float64 {
	if startLevel == endLevel || totalRounds <= 1 {
		return float64(startLevel)
	}
	progress := float64(roundIndex) / float64(totalRounds-1)
	diff := float64(startLevel) + progress*float64(endLevel-startLevel)
	rounded, _ := decimal.NewFromFloat(diff).Round(2).Float64()
	return rounded
}

// ForScalar interpolates the target scale for a difficulty scalar in [1,10].
func ForScalar(d float64) Params {
	t := (d - MinLevel) / (MaxLevel - MinLevel)
	return Params{
		Scale:      lerp(ScaleAtMin, ScaleAtMax, t),
		Difficulty: d,
	}
}

// MaxDecoys returns how many decoy candidates a round may roll for.
func MaxDecoys(d float64) int {
	switch {
	case d >= 6:
		return 3
	case d >= 4:
		return 2
	case d >= 3:
		return 1
	default:
		return 0
	}
}

// UsesAltDecoy reports whether decoys may take the secondary color.
func UsesAltDecoy(d float64) bool {
	return d >= 7
}

// Randomized reports whether the target is placed away from the anchor.
func Randomized(d float64) bool {
	return d >= 5
}

// Padding is the margin kept between a randomly placed target and the zone edge.
func (p Params) Padding() float64 {
	return p.Scale * 1.2
}

// ClampRange keeps both levels in bounds and start <= end. When the edit breaks
// the ordering, the other side follows the edited one.
func ClampRange(start, end int, edited Side) (int, int) {
	start = clampLevel(start)
	end = clampLevel(end)
	if start <= end {
		return start, end
	}
	if edited == SideEnd {
		return end, end
	}
	return start, start
}

func clampLevel(v int) int {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

func lerp(v0, v1, t float64) float64 {
	return v0*(1-t) + v1*t
}

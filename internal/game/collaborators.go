package game

import (
	"time"

	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/scoring"
)

// Renderer draws the target. CurrentColor is read back to tell decoy presses
// from early ones.
type Renderer interface {
	SetColor(c model.Color)
	SetScale(scale float64)
	SetPosition(x, y float64)
	ResetPosition()
	ToggleZone(visible bool)
	RandomPositionInZone(padding float64)
	CurrentColor() model.Color
}

// Cues plays fire-and-forget feedback sounds.
type Cues interface {
	Success()
	Fail()
	Timeout()
	Verdict(good bool)
}

// Timers delivers t back to Machine.Fire after t.Delay.
type Timers interface {
	After(t Timer)
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// FinishFunc receives a completed session and its score.
type FinishFunc func(s Session, res scoring.Result)

// SystemClock reads the wall clock, which carries a monotonic reading.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

type nopCues struct{}

func (nopCues) Success()     {}
func (nopCues) Fail()        {}
func (nopCues) Timeout()     {}
func (nopCues) Verdict(bool) {}

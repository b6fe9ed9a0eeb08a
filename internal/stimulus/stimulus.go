// Package stimulus builds the per-round sequence of decoy flashes and the real signal.
package stimulus

import (
	"time"

	"github.com/verte-zerg/reflex/internal/difficulty"
	"github.com/verte-zerg/reflex/internal/model"
)

// DecoyFlash is how long a decoy stays lit before the target goes idle again.
const DecoyFlash = 400 * time.Millisecond

const (
	decoySkipChance = 0.3
	altDecoyChance  = 0.5

	firstDelayMinMs = 1000
	firstDelaySpan  = 2000
	nextDelayMinMs  = 500
	nextDelaySpan   = 1500
)

// Rand is the random source the scheduler draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Kind distinguishes decoys from the real stimulus.
type Kind int

// Event kinds.
const (
	KindDecoy Kind = iota
	KindReal
)

func (k Kind) String() string {
	if k == KindReal {
		return "real"
	}
	return "decoy"
}

// Event is one entry of a round's queue.
type Event struct {
	Kind  Kind
	Color model.Color
}

// Decoy returns a decoy event flashing the given color.
func Decoy(color model.Color) Event {
	return Event{Kind: KindDecoy, Color: color}
}

// Real returns the real stimulus event.
func Real() Event {
	return Event{Kind: KindReal, Color: model.ColorActive}
}

// Step pairs an event with the delay that precedes it.
type Step struct {
	Delay time.Duration
	Event Event
}

// BuildQueue rolls the decoys for a round and appends the real stimulus.
func BuildQueue(rnd Rand, d float64) []Event {
	maxDecoys := difficulty.MaxDecoys(d)
	queue := make([]Event, 0, maxDecoys+1)
	for i := 0; i < maxDecoys; i++ {
		if rnd.Float64() <= decoySkipChance {
			continue
		}
		color := model.ColorDecoy
		if difficulty.UsesAltDecoy(d) && rnd.Float64() > altDecoyChance {
			color = model.ColorDecoyAlt
		}
		queue = append(queue, Decoy(color))
	}
	return append(queue, Real())
}

// Plan assigns a delay to every event. The first delay counts from round start,
// later ones from the end of the previous decoy flash.
func Plan(rnd Rand, queue []Event) []Step {
	steps := make([]Step, len(queue))
	for i, ev := range queue {
		var ms float64
		if i == 0 {
			ms = rnd.Float64()*firstDelaySpan + firstDelayMinMs
		} else {
			ms = rnd.Float64()*nextDelaySpan + nextDelayMinMs
		}
		steps[i] = Step{
			Delay: time.Duration(ms * float64(time.Millisecond)),
			Event: ev,
		}
	}
	return steps
}

// NewRound builds and plans the queue for a round at difficulty d.
func NewRound(rnd Rand, d float64) []Step {
	return Plan(rnd, BuildQueue(rnd, d))
}

package stimulus

import (
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/reflex/internal/model"
)

type seqRand struct {
	values []float64
	pos    int
}

func (s *seqRand) Float64() float64 {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

func TestBuildQueueLowDifficultyHasOnlyReal(t *testing.T) {
	queue := BuildQueue(&seqRand{values: []float64{0.9}}, 2.5)
	if len(queue) != 1 || queue[0].Kind != KindReal {
		t.Fatalf("expected single real event, got %+v", queue)
	}
}

func TestBuildQueueSkipsAtThreshold(t *testing.T) {
	// 0.3 is skipped, 0.31 is kept: only strictly greater values include a decoy.
	rnd := &seqRand{values: []float64{0.3, 0.31}}
	queue := BuildQueue(rnd, 4)
	if len(queue) != 2 {
		t.Fatalf("expected one decoy plus real, got %+v", queue)
	}
	if queue[0] != Decoy(model.ColorDecoy) {
		t.Fatalf("expected primary decoy, got %+v", queue[0])
	}
	if queue[1].Kind != KindReal {
		t.Fatalf("expected real last, got %+v", queue[1])
	}
}

func TestBuildQueueAltColorOnlyAtSeven(t *testing.T) {
	// Below 7 the color roll is never consumed.
	rnd := &seqRand{values: []float64{0.9, 0.9, 0.9}}
	queue := BuildQueue(rnd, 6.5)
	if len(queue) != 4 {
		t.Fatalf("expected 3 decoys plus real, got %d", len(queue))
	}
	for _, ev := range queue[:3] {
		if ev.Color != model.ColorDecoy {
			t.Fatalf("expected primary decoy below level 7, got %v", ev.Color)
		}
	}
	if rnd.pos != 3 {
		t.Fatalf("expected 3 draws, got %d", rnd.pos)
	}

	// include, alt; include, primary; skip.
	rnd = &seqRand{values: []float64{0.8, 0.6, 0.8, 0.5, 0.1}}
	queue = BuildQueue(rnd, 7)
	if len(queue) != 3 {
		t.Fatalf("expected 2 decoys plus real, got %+v", queue)
	}
	if queue[0].Color != model.ColorDecoyAlt || queue[1].Color != model.ColorDecoy {
		t.Fatalf("unexpected decoy colors: %+v", queue)
	}
}

func TestBuildQueueAlwaysEndsWithSingleReal(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		d := 1 + rnd.Float64()*9
		queue := BuildQueue(rnd, d)
		reals := 0
		for _, ev := range queue {
			if ev.Kind == KindReal {
				reals++
			} else if !ev.Color.IsDecoy() {
				t.Fatalf("decoy with non-decoy color %v", ev.Color)
			}
		}
		if reals != 1 || queue[len(queue)-1].Kind != KindReal {
			t.Fatalf("expected exactly one trailing real event, got %+v", queue)
		}
		if len(queue)-1 > 3 {
			t.Fatalf("too many decoys: %d", len(queue)-1)
		}
	}
}

func TestPlanDelays(t *testing.T) {
	queue := []Event{Decoy(model.ColorDecoy), Decoy(model.ColorDecoy), Real()}
	steps := Plan(&seqRand{values: []float64{0, 1, 0.5}}, queue)
	want := []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond, 1250 * time.Millisecond}
	for i, step := range steps {
		if step.Delay != want[i] {
			t.Fatalf("step %d: expected %v, got %v", i, want[i], step.Delay)
		}
		if step.Event != queue[i] {
			t.Fatalf("step %d: event mismatch", i)
		}
	}
}

func TestPlanDelayBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		steps := NewRound(rnd, 10)
		for j, step := range steps {
			lo, hi := 500*time.Millisecond, 2000*time.Millisecond
			if j == 0 {
				lo, hi = 1000*time.Millisecond, 3000*time.Millisecond
			}
			if step.Delay < lo || step.Delay > hi {
				t.Fatalf("step %d delay %v outside [%v, %v]", j, step.Delay, lo, hi)
			}
		}
	}
}

// Package cue provides the audible feedback for game events.
package cue

import (
	"io"
	"log/slog"

	"github.com/verte-zerg/reflex/internal/logging"
)

const bell = "\a"

// Bell rings the terminal bell on failures. Successes stay silent so the bell
// always means something went wrong.
type Bell struct {
	w   io.Writer
	log *slog.Logger
}

// NewBell returns a Bell writing to w. A nil logger discards cue logs.
func NewBell(w io.Writer, log *slog.Logger) *Bell {
	if log == nil {
		log = logging.Discard()
	}
	return &Bell{w: w, log: log}
}

// Success implements game.Cues.
func (b *Bell) Success() {
	b.log.Debug("cue", "name", "success")
}

// Fail implements game.Cues.
func (b *Bell) Fail() {
	b.log.Debug("cue", "name", "fail")
	b.ring(1)
}

// Timeout implements game.Cues.
func (b *Bell) Timeout() {
	b.log.Debug("cue", "name", "timeout")
	b.ring(1)
}

// Verdict implements game.Cues.
func (b *Bell) Verdict(good bool) {
	b.log.Debug("cue", "name", "verdict", "good", good)
	if !good {
		b.ring(2)
	}
}

func (b *Bell) ring(n int) {
	for i := 0; i < n; i++ {
		if _, err := io.WriteString(b.w, bell); err != nil {
			b.log.Debug("bell write failed", "error", err)
			return
		}
	}
}

// Silent drops every cue.
type Silent struct{}

// Success implements game.Cues.
func (Silent) Success() {}

// Fail implements game.Cues.
func (Silent) Fail() {}

// Timeout implements game.Cues.
func (Silent) Timeout() {}

// Verdict implements game.Cues.
func (Silent) Verdict(bool) {}

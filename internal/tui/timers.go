package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/reflex/internal/game"
)

// timerMsg carries a machine timer back into Update once its delay elapsed.
type timerMsg struct {
	timer game.Timer
}

// tickTimers turns machine timers into tea.Tick commands. Commands queue up
// while the machine runs and are handed to the runtime by drain.
type tickTimers struct {
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	pending []tea.Cmd
}

func newTickTimers() *tickTimers {
	return &tickTimers{tick: tea.Tick}
}

// After implements game.Timers.
func (t *tickTimers) After(timer game.Timer) {
	t.pending = append(t.pending, t.tick(timer.Delay, func(time.Time) tea.Msg {
		return timerMsg{timer: timer}
	}))
}

func (t *tickTimers) drain() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := t.pending
	t.pending = nil
	return tea.Batch(cmds...)
}

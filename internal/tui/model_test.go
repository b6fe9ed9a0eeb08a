package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/reflex/internal/game"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/records"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

type memStore struct {
	kv       map[string]string
	sessions []model.SessionRecord
	rounds   [][]model.RoundRecord
}

func newMemStore() *memStore {
	return &memStore{kv: map[string]string{}}
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.kv[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.kv[key] = value
	return nil
}

func (s *memStore) InsertSession(_ context.Context, rec model.SessionRecord, rounds []model.RoundRecord) (string, error) {
	s.sessions = append(s.sessions, rec)
	s.rounds = append(s.rounds, rounds)
	return "id", nil
}

type harness struct {
	t     *testing.T
	m     *Model
	clock *fakeClock
	store *memStore
	queue []timerMsg
}

func newHarness(t *testing.T, cfg model.Config) *harness {
	h := &harness{
		t:     t,
		clock: &fakeClock{now: time.Unix(1000, 0)},
		store: newMemStore(),
	}
	h.m = NewModel(Options{
		Config: cfg,
		Store:  h.store,
		Clock:  h.clock,
		Rand:   constRand(0.9),
	})
	h.m.timers.tick = func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg { return fn(time.Time{}) }
	}
	return h
}

// collect runs cmd and queues every timer message it produces.
func (h *harness) collect(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.collect(c)
		}
	case timerMsg:
		h.queue = append(h.queue, msg)
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.collect(cmd)
}

func (h *harness) press(k string) {
	switch k {
	case "space":
		h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	case "enter":
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "right":
		h.send(tea.KeyMsg{Type: tea.KeyRight})
	case "left":
		h.send(tea.KeyMsg{Type: tea.KeyLeft})
	case "tab":
		h.send(tea.KeyMsg{Type: tea.KeyTab})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

// advance delivers queued timers until the machine reaches want.
func (h *harness) advance(want game.State) {
	h.t.Helper()
	for h.m.machine.State() != want {
		if len(h.queue) == 0 {
			h.t.Fatalf("no timers left before reaching %s (state %s)", want, h.m.machine.State())
		}
		msg := h.queue[0]
		h.queue = h.queue[1:]
		h.clock.now = h.clock.now.Add(msg.timer.Delay)
		h.send(msg)
	}
}

func TestSetupSlidersClamp(t *testing.T) {
	h := newHarness(t, model.Config{StartLevel: 3, EndLevel: 4, TotalRounds: 2})
	h.press("right")
	h.press("right")
	if h.m.startLevel != 5 || h.m.endLevel != 5 {
		t.Fatalf("expected end to follow start, got %d-%d", h.m.startLevel, h.m.endLevel)
	}
	h.press("tab")
	for i := 0; i < 3; i++ {
		h.press("left")
	}
	if h.m.startLevel != 2 || h.m.endLevel != 2 {
		t.Fatalf("expected start to follow end, got %d-%d", h.m.startLevel, h.m.endLevel)
	}
	for i := 0; i < 12; i++ {
		h.press("right")
	}
	if h.m.endLevel != 10 {
		t.Fatalf("expected end clamped to 10, got %d", h.m.endLevel)
	}
}

func TestPlaySessionPersists(t *testing.T) {
	h := newHarness(t, model.Config{StartLevel: 1, EndLevel: 1, TotalRounds: 1})
	h.send(tea.WindowSizeMsg{Width: 80, Height: 30})
	h.press("enter")
	if h.m.machine.State() != game.StateWaiting {
		t.Fatalf("expected waiting, got %s", h.m.machine.State())
	}
	if !strings.Contains(h.m.View(), "WAIT FOR SIGNAL") {
		t.Fatalf("expected wait instruction in view")
	}

	h.advance(game.StateActive)
	h.clock.now = h.clock.now.Add(210 * time.Millisecond)
	h.press("space")
	if h.m.machine.State() != game.StateResult {
		t.Fatalf("expected result, got %s", h.m.machine.State())
	}
	if !strings.Contains(h.m.View(), "210ms") {
		t.Fatalf("expected reaction in view:\n%s", h.m.View())
	}

	h.advance(game.StateSummary)
	if len(h.store.sessions) != 1 {
		t.Fatalf("expected one stored session, got %d", len(h.store.sessions))
	}
	rec := h.store.sessions[0]
	if rec.AverageMs != 210 || rec.Score != 10 || rec.Title != "HUMAN AIMBOT" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if got := h.store.rounds[0]; len(got) != 1 || got[0].ReactionMs != 210 || got[0].Difficulty != 1 {
		t.Fatalf("unexpected rounds: %+v", got)
	}
	if h.store.kv[records.KeyBestTime] != "210" || h.store.kv[records.KeyLastScore] != "10" {
		t.Fatalf("unexpected records: %v", h.store.kv)
	}
	view := h.m.View()
	if !strings.Contains(view, "HUMAN AIMBOT") || !strings.Contains(view, "10/10") {
		t.Fatalf("expected summary in view:\n%s", view)
	}

	h.press("esc")
	if h.m.machine.State() != game.StateIdle {
		t.Fatalf("expected setup after esc, got %s", h.m.machine.State())
	}
	if !strings.Contains(h.m.View(), "210ms") {
		t.Fatalf("expected refreshed records on setup:\n%s", h.m.View())
	}
}

func TestEarlyPressShowsFalseStart(t *testing.T) {
	h := newHarness(t, model.Config{StartLevel: 1, EndLevel: 1, TotalRounds: 3})
	h.press("enter")
	h.press("space")
	if h.m.machine.State() != game.StateCooldown {
		t.Fatalf("expected cooldown, got %s", h.m.machine.State())
	}
	if !strings.Contains(h.m.View(), "TOO EARLY!") {
		t.Fatalf("expected early message:\n%s", h.m.View())
	}
	h.press("space")
	if got := h.m.machine.Session().FalseStarts; got != 1 {
		t.Fatalf("expected presses in cooldown to be ignored, got %d false starts", got)
	}
}

func TestMousePressTriggers(t *testing.T) {
	h := newHarness(t, model.Config{StartLevel: 1, EndLevel: 1, TotalRounds: 3})
	h.send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if h.m.machine.State() != game.StateIdle {
		t.Fatalf("expected clicks on setup to be ignored")
	}
	h.press("enter")
	h.send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if h.m.machine.State() != game.StateCooldown {
		t.Fatalf("expected click to trigger, got %s", h.m.machine.State())
	}
}

func TestQuitDropsPendingTimers(t *testing.T) {
	h := newHarness(t, model.Config{StartLevel: 1, EndLevel: 1, TotalRounds: 3})
	h.press("enter")
	h.press("q")
	if h.m.machine.State() != game.StateIdle {
		t.Fatalf("expected idle after quit, got %s", h.m.machine.State())
	}
	for _, msg := range h.queue {
		h.send(msg)
	}
	if h.m.machine.State() != game.StateIdle {
		t.Fatalf("stale timer moved the machine to %s", h.m.machine.State())
	}
	if len(h.store.sessions) != 0 {
		t.Fatalf("quit must not store a session")
	}
}

func TestInstruction(t *testing.T) {
	cases := []struct {
		state game.State
		round game.Round
		want  string
	}{
		{game.StateWaiting, game.Round{}, "WAIT FOR SIGNAL"},
		{game.StateActive, game.Round{}, ""},
		{game.StateCooldown, game.Round{Outcome: game.OutcomeEarly}, "TOO EARLY!"},
		{game.StateCooldown, game.Round{Outcome: game.OutcomeDecoy}, "DECOY TRIGGERED!"},
		{game.StateCooldown, game.Round{Outcome: game.OutcomeTimeout}, "TIMEOUT! TOO SLOW"},
		{game.StateResult, game.Round{Outcome: game.OutcomeHit, ReactionMs: 187}, "187ms"},
	}
	for _, tc := range cases {
		if got := instruction(tc.state, tc.round); got != tc.want {
			t.Fatalf("%s/%s: expected %q, got %q", tc.state, tc.round.Outcome, tc.want, got)
		}
	}
}

func TestSetupShowsSentinels(t *testing.T) {
	h := newHarness(t, model.Config{StartLevel: 1, EndLevel: 10, TotalRounds: 20})
	view := h.m.View()
	for _, want := range []string{records.NoValue, records.Unranked, records.NoLastScore, "20 rounds"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in setup view:\n%s", want, view)
		}
	}
}

func TestTickTimersDrain(t *testing.T) {
	timers := newTickTimers()
	if timers.drain() != nil {
		t.Fatalf("expected nil command without timers")
	}
	timers.After(game.Timer{Kind: game.TimerMiss, Delay: time.Millisecond})
	timers.After(game.Timer{Kind: game.TimerStep, Delay: time.Millisecond})
	if timers.drain() == nil {
		t.Fatalf("expected batched command")
	}
	if len(timers.pending) != 0 {
		t.Fatalf("expected pending timers to be cleared")
	}
}

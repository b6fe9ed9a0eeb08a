// Package tui provides the Bubble Tea reaction game interface.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/reflex/internal/arena"
	"github.com/verte-zerg/reflex/internal/difficulty"
	"github.com/verte-zerg/reflex/internal/game"
	"github.com/verte-zerg/reflex/internal/logging"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/records"
	"github.com/verte-zerg/reflex/internal/scoring"
)

// SessionStore persists records and finished sessions. *store.Store satisfies it.
type SessionStore interface {
	records.KV
	InsertSession(ctx context.Context, rec model.SessionRecord, rounds []model.RoundRecord) (string, error)
}

// Rand is the shared random source for stimulus planning and placement.
type Rand interface {
	Float64() float64
}

// Options wires the model to its collaborators. Store, Cues, Clock and Logger
// are optional.
type Options struct {
	Config model.Config
	Store  SessionStore
	Cues   game.Cues
	Clock  game.Clock
	Rand   Rand
	Logger *slog.Logger
}

// Model implements the Bubble Tea game UI.
type Model struct {
	config model.Config
	store  SessionStore
	log    *slog.Logger

	arena   *arena.Arena
	timers  *tickTimers
	machine *game.Machine

	keys keyMap
	help help.Model

	startLevel int
	endLevel   int
	focus      difficulty.Side
	records    records.Stats

	width  int
	height int
}

// NewModel constructs the game UI in its setup screen.
func NewModel(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	start, end := difficulty.ClampRange(opts.Config.StartLevel, opts.Config.EndLevel, difficulty.SideStart)
	m := &Model{
		config:     opts.Config,
		store:      opts.Store,
		log:        log,
		arena:      arena.New(opts.Rand),
		timers:     newTickTimers(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		startLevel: start,
		endLevel:   end,
		focus:      difficulty.SideStart,
	}
	m.machine = game.New(opts.Config.TotalRounds, game.Deps{
		Renderer: m.arena,
		Cues:     opts.Cues,
		Timers:   m.timers,
		Clock:    opts.Clock,
		Rand:     opts.Rand,
		Logger:   log,
		OnFinish: m.persist,
	})
	m.loadRecords()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeArena()
		return m, nil
	case timerMsg:
		m.machine.Fire(msg.timer)
		return m, m.timers.drain()
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && m.playing() {
			m.machine.Trigger()
		}
		return m, m.timers.drain()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Exit) {
			return m, tea.Quit
		}
		switch m.machine.State() {
		case game.StateIdle:
			return m.updateSetup(msg)
		case game.StateSummary:
			return m.updateSummary(msg)
		default:
			return m.updatePlay(msg)
		}
	default:
		return m, nil
	}
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		m.machine.Begin(m.startLevel, m.endLevel)
		return m, m.timers.drain()
	case key.Matches(msg, m.keys.Switch):
		if m.focus == difficulty.SideStart {
			m.focus = difficulty.SideEnd
		} else {
			m.focus = difficulty.SideStart
		}
	case key.Matches(msg, m.keys.Lower):
		m.adjustLevel(-1)
	case key.Matches(msg, m.keys.Raise):
		m.adjustLevel(1)
	}
	return m, nil
}

func (m *Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.toSetup()
		return m, nil
	case key.Matches(msg, m.keys.Trigger):
		m.machine.Trigger()
		return m, m.timers.drain()
	}
	return m, nil
}

func (m *Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.toSetup()
		return m, nil
	case key.Matches(msg, m.keys.Start):
		m.machine.Begin(m.startLevel, m.endLevel)
		return m, m.timers.drain()
	}
	return m, nil
}

func (m *Model) playing() bool {
	switch m.machine.State() {
	case game.StateIdle, game.StateSummary:
		return false
	default:
		return true
	}
}

func (m *Model) adjustLevel(delta int) {
	if m.focus == difficulty.SideStart {
		m.startLevel, m.endLevel = difficulty.ClampRange(m.startLevel+delta, m.endLevel, difficulty.SideStart)
		return
	}
	m.startLevel, m.endLevel = difficulty.ClampRange(m.startLevel, m.endLevel+delta, difficulty.SideEnd)
}

func (m *Model) toSetup() {
	m.machine.Quit()
	// Timers queued before the quit carry a stale epoch and are dropped on arrival.
	m.timers.pending = nil
	m.loadRecords()
}

func (m *Model) loadRecords() {
	if m.store == nil {
		return
	}
	m.records = records.Load(context.Background(), m.store)
}

func (m *Model) persist(s game.Session, res scoring.Result) {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	if err := records.Save(ctx, m.store, res); err != nil {
		m.log.Error("failed to save records", "error", err)
	}
	rec := model.SessionRecord{
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		StartLevel:  s.StartLevel,
		EndLevel:    s.EndLevel,
		Rounds:      len(s.Results),
		AverageMs:   res.Average,
		BestMs:      res.Best,
		FalseStarts: res.FalseStarts,
		Score:       res.Final,
		Title:       res.Tier.Title,
	}
	rounds := make([]model.RoundRecord, len(s.Results))
	for i, ms := range s.Results {
		rounds[i] = model.RoundRecord{Index: i, ReactionMs: ms}
		if i < len(s.Difficulties) {
			rounds[i].Difficulty = s.Difficulties[i]
		}
	}
	id, err := m.store.InsertSession(ctx, rec, rounds)
	if err != nil {
		m.log.Error("failed to save session", "error", err)
	} else {
		m.log.Info("session saved", "id", id)
	}
	m.loadRecords()
}

func (m *Model) resizeArena() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	// Border, HUD, instruction and help lines surround the arena.
	rows := m.height - 2 - 4
	cols := m.width - 2
	// Terminal cells are roughly twice as tall as wide; keep the zone 4:3.
	if want := rows * 8 / 3; cols > want {
		cols = want
	}
	m.arena.Resize(cols, rows)
}

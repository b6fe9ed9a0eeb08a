// Package game runs the round state machine of a reaction-time session.
//
// The machine is single-threaded: every method must be called from one
// goroutine (the Bubble Tea update loop in practice). Suspension happens only
// through Timers. Each timer carries the epoch it was scheduled in, and every
// round transition bumps the epoch, so timers from an abandoned round are
// dropped when they fire.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/verte-zerg/reflex/internal/difficulty"
	"github.com/verte-zerg/reflex/internal/logging"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/scoring"
	"github.com/verte-zerg/reflex/internal/stimulus"
)

// DefaultRounds is the number of rounds in a session.
const DefaultRounds = 20

// Fixed lockouts and limits.
const (
	MissWindow    = 1000 * time.Millisecond
	CooldownDelay = 1000 * time.Millisecond
	ResultDelay   = 1000 * time.Millisecond
)

// State is the machine's current phase.
type State int

// Machine states.
const (
	StateIdle State = iota
	StateWaiting
	StateActive
	StateCooldown
	StateResult
	StateSummary
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaiting:
		return "waiting"
	case StateActive:
		return "active"
	case StateCooldown:
		return "cooldown"
	case StateResult:
		return "result"
	case StateSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Outcome describes what a trigger or timer did to the round.
type Outcome int

// Round outcomes.
const (
	OutcomeNone Outcome = iota
	OutcomeIgnored
	OutcomeHit
	OutcomeEarly
	OutcomeDecoy
	OutcomeTimeout
)

// IsFalseStart reports whether the outcome counts against the player.
func (o Outcome) IsFalseStart() bool {
	return o == OutcomeEarly || o == OutcomeDecoy || o == OutcomeTimeout
}

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeHit:
		return "hit"
	case OutcomeEarly:
		return "early"
	case OutcomeDecoy:
		return "decoy"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// TimerKind identifies what a timer does when it fires.
type TimerKind int

// Timer kinds.
const (
	TimerStep TimerKind = iota
	TimerDecoyEnd
	TimerMiss
	TimerCooldown
	TimerResult
)

func (k TimerKind) String() string {
	switch k {
	case TimerStep:
		return "step"
	case TimerDecoyEnd:
		return "decoy-end"
	case TimerMiss:
		return "miss"
	case TimerCooldown:
		return "cooldown"
	case TimerResult:
		return "result"
	default:
		return "unknown"
	}
}

// Timer is a pending callback. Step indexes the round's stimulus plan.
type Timer struct {
	Kind  TimerKind
	Epoch uint64
	Step  int
	Delay time.Duration
}

// Session is the mutable context of one game session.
type Session struct {
	RoundIndex   int
	Results      []int
	Difficulties []float64
	FalseStarts  int
	StartLevel   int
	EndLevel     int
	StartedAt    time.Time
	EndedAt      time.Time
}

func (s Session) clone() Session {
	out := s
	out.Results = append([]int(nil), s.Results...)
	out.Difficulties = append([]float64(nil), s.Difficulties...)
	return out
}

// Round describes the round currently on screen.
type Round struct {
	Index      int
	Difficulty float64
	Params     difficulty.Params
	Decoys     int
	Outcome    Outcome
	ReactionMs int
}

// Deps wires the machine to its collaborators. Renderer, Timers and Rand are
// required; the rest default to no-ops and the system clock.
type Deps struct {
	Renderer Renderer
	Cues     Cues
	Timers   Timers
	Clock    Clock
	Rand     stimulus.Rand
	Logger   *slog.Logger
	OnFinish FinishFunc
}

// Machine owns the round state and the session context.
type Machine struct {
	totalRounds int

	renderer Renderer
	cues     Cues
	timers   Timers
	clock    Clock
	rnd      stimulus.Rand
	log      *slog.Logger
	onFinish FinishFunc

	state       State
	epoch       uint64
	session     Session
	round       Round
	steps       []stimulus.Step
	activatedAt time.Time
	result      scoring.Result
}

// New returns an idle machine for sessions of totalRounds rounds.
func New(totalRounds int, deps Deps) *Machine {
	if totalRounds <= 0 {
		totalRounds = DefaultRounds
	}
	m := &Machine{
		totalRounds: totalRounds,
		renderer:    deps.Renderer,
		cues:        deps.Cues,
		timers:      deps.Timers,
		clock:       deps.Clock,
		rnd:         deps.Rand,
		log:         deps.Logger,
		onFinish:    deps.OnFinish,
	}
	if m.cues == nil {
		m.cues = nopCues{}
	}
	if m.clock == nil {
		m.clock = SystemClock{}
	}
	if m.log == nil {
		m.log = logging.Discard()
	}
	return m
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// TotalRounds returns the configured session length.
func (m *Machine) TotalRounds() int { return m.totalRounds }

// Round returns the round currently on screen.
func (m *Machine) Round() Round { return m.round }

// Session returns a copy of the session context.
func (m *Machine) Session() Session { return m.session.clone() }

// Result returns the session score once the machine reached the summary.
func (m *Machine) Result() (scoring.Result, bool) {
	return m.result, m.state == StateSummary
}

// RunningAverage is the floored mean of the reaction times so far.
func (m *Machine) RunningAverage() int {
	return scoring.Average(m.session.Results)
}

// Begin starts a new session over the given level range.
func (m *Machine) Begin(startLevel, endLevel int) {
	start, end := difficulty.ClampRange(startLevel, endLevel, difficulty.SideStart)
	m.session = Session{
		StartLevel: start,
		EndLevel:   end,
		StartedAt:  m.clock.Now(),
	}
	m.result = scoring.Result{}
	m.log.Debug("session started", "start_level", start, "end_level", end, "rounds", m.totalRounds)
	m.startRound()
}

// Trigger handles the player's input. Presses outside Waiting and Active are dropped.
func (m *Machine) Trigger() Outcome {
	switch m.state {
	case StateWaiting:
		reason := OutcomeEarly
		if m.renderer.CurrentColor().IsDecoy() {
			reason = OutcomeDecoy
		}
		m.cues.Fail()
		m.falseStart(reason)
		return reason
	case StateActive:
		m.hit()
		return OutcomeHit
	default:
		return OutcomeIgnored
	}
}

// Fire runs a timer previously handed to Timers. Stale timers do nothing.
func (m *Machine) Fire(t Timer) {
	if t.Epoch != m.epoch {
		m.log.Log(context.Background(), logging.LevelTrace, "stale timer dropped",
			"kind", t.Kind, "epoch", t.Epoch, "current", m.epoch)
		return
	}
	switch t.Kind {
	case TimerStep:
		if m.state != StateWaiting || t.Step < 0 || t.Step >= len(m.steps) {
			return
		}
		ev := m.steps[t.Step].Event
		if ev.Kind == stimulus.KindReal {
			m.activate()
			return
		}
		m.renderer.SetColor(ev.Color)
		m.schedule(TimerDecoyEnd, t.Step, stimulus.DecoyFlash)
	case TimerDecoyEnd:
		if m.state != StateWaiting {
			return
		}
		m.renderer.SetColor(model.ColorIdle)
		next := t.Step + 1
		if next < len(m.steps) {
			m.schedule(TimerStep, next, m.steps[next].Delay)
		}
	case TimerMiss:
		if m.state != StateActive {
			return
		}
		m.cues.Timeout()
		m.falseStart(OutcomeTimeout)
	case TimerCooldown:
		if m.state == StateCooldown {
			m.startRound()
		}
	case TimerResult:
		if m.state == StateResult {
			m.startRound()
		}
	}
}

// Quit abandons the session from any state and restores the idle arena.
func (m *Machine) Quit() {
	m.epoch++
	m.state = StateIdle
	m.session = Session{}
	m.round = Round{}
	m.steps = nil
	m.result = scoring.Result{}
	m.renderer.SetColor(model.ColorIdle)
	m.renderer.ResetPosition()
	m.renderer.ToggleZone(false)
	m.renderer.SetScale(difficulty.ScaleAtMin)
	m.log.Debug("session quit")
}

func (m *Machine) startRound() {
	m.epoch++
	if m.session.RoundIndex >= m.totalRounds {
		m.finish()
		return
	}
	m.state = StateWaiting

	idx := m.session.RoundIndex
	d := difficulty.Current(idx, m.session.StartLevel, m.session.EndLevel, m.totalRounds)
	params := difficulty.ForScalar(d)

	m.renderer.SetColor(model.ColorIdle)
	m.renderer.SetScale(params.Scale)
	m.renderer.ToggleZone(true)
	if difficulty.Randomized(params.Difficulty) {
		m.renderer.RandomPositionInZone(params.Padding())
	} else {
		m.renderer.ResetPosition()
	}

	m.steps = stimulus.NewRound(m.rnd, params.Difficulty)
	m.round = Round{
		Index:      idx,
		Difficulty: d,
		Params:     params,
		Decoys:     len(m.steps) - 1,
	}
	m.log.Debug("round started", "round", idx+1, "difficulty", d, "decoys", m.round.Decoys)
	m.schedule(TimerStep, 0, m.steps[0].Delay)
}

func (m *Machine) activate() {
	m.state = StateActive
	m.activatedAt = m.clock.Now()
	m.renderer.SetColor(model.ColorActive)
	m.schedule(TimerMiss, 0, MissWindow)
}

func (m *Machine) hit() {
	now := m.clock.Now()
	m.epoch++
	reaction := int(now.Sub(m.activatedAt).Milliseconds())
	if reaction < 0 {
		reaction = 0
	}
	m.cues.Success()
	m.state = StateResult

	m.session.Results = append(m.session.Results, reaction)
	m.session.Difficulties = append(m.session.Difficulties, m.round.Difficulty)
	m.session.RoundIndex++
	m.round.Outcome = OutcomeHit
	m.round.ReactionMs = reaction
	m.log.Debug("round hit", "round", m.round.Index+1, "reaction_ms", reaction)

	m.schedule(TimerResult, 0, ResultDelay)
}

func (m *Machine) falseStart(reason Outcome) {
	m.epoch++
	m.session.FalseStarts++
	m.round.Outcome = reason
	m.round.ReactionMs = 0
	m.renderer.SetColor(model.ColorError)
	m.state = StateCooldown
	m.log.Debug("false start", "round", m.round.Index+1, "reason", reason, "false_starts", m.session.FalseStarts)
	m.schedule(TimerCooldown, 0, CooldownDelay)
}

func (m *Machine) finish() {
	m.state = StateSummary
	m.steps = nil
	m.session.EndedAt = m.clock.Now()
	s := m.session
	m.result = scoring.Score(s.Results, s.FalseStarts, s.StartLevel, s.EndLevel)
	m.log.Info("session finished",
		"average_ms", m.result.Average,
		"best_ms", m.result.Best,
		"false_starts", s.FalseStarts,
		"score", m.result.Final,
		"title", m.result.Tier.Title)
	m.cues.Verdict(m.result.IsGood)
	if m.onFinish != nil {
		m.onFinish(m.Session(), m.result)
	}
}

func (m *Machine) schedule(kind TimerKind, step int, delay time.Duration) {
	m.timers.After(Timer{Kind: kind, Epoch: m.epoch, Step: step, Delay: delay})
}

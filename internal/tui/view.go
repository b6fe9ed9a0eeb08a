package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/reflex/internal/arena"
	"github.com/verte-zerg/reflex/internal/difficulty"
	"github.com/verte-zerg/reflex/internal/game"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/records"
	"github.com/verte-zerg/reflex/internal/scoring"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(arena.Accent).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	waitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(arena.ColorOf(model.ColorError)).Bold(true)
	resultStyle  = lipgloss.NewStyle().Foreground(arena.ColorOf(model.ColorActive)).Bold(true)
	sliderOn     = lipgloss.NewStyle().Foreground(arena.Accent)
	sliderOff    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	focusStyle   = lipgloss.NewStyle().Foreground(arena.Accent).Bold(true)
	verdictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Italic(true)
	cardStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	var bindings []key.Binding
	switch m.machine.State() {
	case game.StateIdle:
		content = m.renderSetup()
		bindings = m.keys.setupHelp()
	case game.StateSummary:
		content = m.renderSummary()
		bindings = m.keys.summaryHelp()
	default:
		content = m.renderPlay()
		bindings = m.keys.playHelp()
	}
	footer := m.help.ShortHelpView(bindings)
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderSetup() string {
	best := metricCard("BEST", timeLabel(m.records.BestTime), m.records.BestScore.Rating(records.Unranked))
	last := metricCard("LAST", timeLabel(m.records.LastTime), m.records.LastScore.Rating(records.NoLastScore))
	recordsRow := lipgloss.JoinHorizontal(lipgloss.Top, best, last)

	rounds := fmt.Sprintf("%d rounds", m.machine.TotalRounds())
	lines := []string{
		titleStyle.Render("REFLEX"),
		labelStyle.Render(rounds),
		"",
		recordsRow,
		"",
		m.renderSlider("START", m.startLevel, m.focus == difficulty.SideStart),
		m.renderSlider("END  ", m.endLevel, m.focus == difficulty.SideEnd),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func metricCard(label, value, rating string) string {
	content := fmt.Sprintf("%s\n%s\n%s", labelStyle.Render(label), valueStyle.Render(value), labelStyle.Render(rating))
	return cardStyle.Render(content)
}

func timeLabel(v records.Value) string {
	if !v.OK {
		return records.NoValue
	}
	return v.Time() + "ms"
}

func (m *Model) renderSlider(label string, level int, focused bool) string {
	bar := sliderOn.Render(strings.Repeat("■", level)) +
		sliderOff.Render(strings.Repeat("□", difficulty.MaxLevel-level))
	name := labelStyle.Render(label)
	if focused {
		name = focusStyle.Render(label)
	}
	return fmt.Sprintf("%s  %s  %2d", name, bar, level)
}

func (m *Model) renderPlay() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		m.renderHUD(),
		m.arena.View(),
		m.renderInstruction(),
	)
}

func (m *Model) renderHUD() string {
	r := m.machine.Round()
	avg := records.NoValue
	if m.machine.Session().RoundIndex > 0 {
		avg = strconv.Itoa(m.machine.RunningAverage()) + "ms"
	}
	segments := []string{
		labelStyle.Render("ROUND ") + valueStyle.Render(fmt.Sprintf("%d/%d", r.Index+1, m.machine.TotalRounds())),
		labelStyle.Render("INTENSITY ") + valueStyle.Render(fmt.Sprintf("%.1f", r.Difficulty)),
		labelStyle.Render("AVG ") + valueStyle.Render(avg),
	}
	return strings.Join(segments, "   ")
}

func (m *Model) renderInstruction() string {
	text := instruction(m.machine.State(), m.machine.Round())
	switch m.machine.State() {
	case game.StateCooldown:
		return errorStyle.Render(text)
	case game.StateResult:
		return resultStyle.Render(text)
	default:
		return waitStyle.Render(text)
	}
}

// instruction is the status line under the arena.
func instruction(state game.State, r game.Round) string {
	switch state {
	case game.StateWaiting:
		return "WAIT FOR SIGNAL"
	case game.StateCooldown:
		switch r.Outcome {
		case game.OutcomeDecoy:
			return "DECOY TRIGGERED!"
		case game.OutcomeTimeout:
			return "TIMEOUT! TOO SLOW"
		default:
			return "TOO EARLY!"
		}
	case game.StateResult:
		return fmt.Sprintf("%dms", r.ReactionMs)
	default:
		return ""
	}
}

func (m *Model) renderSummary() string {
	res, ok := m.machine.Result()
	if !ok {
		return ""
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("AVG", fmt.Sprintf("%dms", res.Average), ""),
		metricCard("BEST", fmt.Sprintf("%dms", res.Best), ""),
		metricCard("ERRORS", strconv.Itoa(res.FalseStarts), ""),
		metricCard("SCORE", fmt.Sprintf("%d/10", res.Final), ""),
	)
	title := lipgloss.NewStyle().Bold(true).Foreground(bandColor(scoring.BandFor(res.Final))).Render(res.Tier.Title)
	verdict := res.Tier.Verdict
	if m.width > 0 {
		verdict = runewidth.Truncate(verdict, m.width-2, "…")
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("SESSION COMPLETE"),
		"",
		cards,
		"",
		title,
		verdictStyle.Render(verdict),
	)
}

func bandColor(b scoring.Band) lipgloss.Color {
	switch b {
	case scoring.BandHigh:
		return arena.ColorOf(model.ColorActive)
	case scoring.BandLow:
		return arena.ColorOf(model.ColorError)
	default:
		return arena.Accent
	}
}

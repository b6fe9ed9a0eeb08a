// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/reflex/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Overview summarizes a set of sessions.
type Overview struct {
	Sessions       int     `json:"sessions" yaml:"sessions"`
	AvgMs          float64 `json:"avg_ms" yaml:"avg_ms"`
	BestMs         int     `json:"best_ms" yaml:"best_ms"`
	AvgScore       float64 `json:"avg_score" yaml:"avg_score"`
	BestScore      int     `json:"best_score" yaml:"best_score"`
	FalseStarts    int     `json:"false_starts" yaml:"false_starts"`
	FalseStartRate float64 `json:"false_starts_per_session" yaml:"false_starts_per_session"`
}

// Summarize computes the overview for sessions.
func Summarize(sessions []model.SessionAggregate) Overview {
	if len(sessions) == 0 {
		return Overview{}
	}
	ov := Overview{Sessions: len(sessions), BestMs: sessions[0].BestMs}
	var totalMs, totalScore float64
	for _, s := range sessions {
		totalMs += float64(s.AverageMs)
		totalScore += float64(s.Score)
		ov.FalseStarts += s.FalseStarts
		if s.BestMs < ov.BestMs {
			ov.BestMs = s.BestMs
		}
		if s.Score > ov.BestScore {
			ov.BestScore = s.Score
		}
	}
	count := float64(len(sessions))
	ov.AvgMs = totalMs / count
	ov.AvgScore = totalScore / count
	ov.FalseStartRate = float64(ov.FalseStarts) / count
	return ov
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Tail keeps the last n values, or all of them when n <= 0.
func Tail(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// RenderSummary prints the overview block.
func RenderSummary(w io.Writer, ov Overview) error {
	if ov.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", ov.Sessions),
		fmt.Sprintf("Avg reaction: %.1f ms", ov.AvgMs),
		fmt.Sprintf("Best reaction: %d ms", ov.BestMs),
		fmt.Sprintf("Avg score: %.2f/10", ov.AvgScore),
		fmt.Sprintf("Best score: %d/10", ov.BestScore),
		fmt.Sprintf("False starts: %d (%.2f per session)", ov.FalseStarts, ov.FalseStartRate),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints the moving-average sparkline of session averages.
func RenderTrend(w io.Writer, trend []float64, width int) error {
	if len(trend) == 0 {
		return nil
	}
	trend = Tail(trend, width)
	if _, err := fmt.Fprintln(w, "Avg reaction trend (lower is faster)"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", Sparkline(trend)); err != nil {
		return err
	}
	return nil
}

// SessionRows formats sessions for a table, newest first.
func SessionRows(sessions []model.SessionAggregate) [][]string {
	rows := make([][]string, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		rows = append(rows, []string{
			s.EndedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d-%d", s.StartLevel, s.EndLevel),
			fmt.Sprintf("%d", s.AverageMs),
			fmt.Sprintf("%d", s.BestMs),
			fmt.Sprintf("%d", s.FalseStarts),
			fmt.Sprintf("%d", s.Score),
			s.Title,
		})
	}
	return rows
}

// SessionHeaders are the column titles matching SessionRows.
var SessionHeaders = []string{"Ended", "Levels", "Avg (ms)", "Best (ms)", "False", "Score", "Rank"}

// RenderSessionTable prints the session history.
func RenderSessionTable(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(SessionHeaders, SessionRows(sessions), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

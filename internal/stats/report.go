// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionAggregate `json:"sessions" yaml:"sessions"`
	Overview Overview                 `json:"overview" yaml:"overview"`
	Trend    []float64                `json:"trend" yaml:"trend"`
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return NewReport(sessions, cfg.TrendWindow), nil
}

// NewReport derives the overview and trend from sessions ordered oldest first.
func NewReport(sessions []model.SessionAggregate, trendWindow int) Report {
	if sessions == nil {
		sessions = []model.SessionAggregate{}
	}
	return Report{
		Sessions: sessions,
		Overview: Summarize(sessions),
		Trend:    MovingAverage(averages(sessions), trendWindow),
	}
}

func averages(sessions []model.SessionAggregate) []float64 {
	values := make([]float64, len(sessions))
	for i, s := range sessions {
		values[i] = float64(s.AverageMs)
	}
	return values
}

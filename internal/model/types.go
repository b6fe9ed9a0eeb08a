// Package model defines shared data structures.
package model

import "time"

// Config defines game settings.
type Config struct {
	StartLevel  int
	EndLevel    int
	TotalRounds int
	Sound       bool
	Seed        int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	TrendWindow int
}

// Color tags what the target is currently showing.
type Color int

// Target colors.
const (
	ColorIdle Color = iota
	ColorActive
	ColorDecoy
	ColorDecoyAlt
	ColorError
)

// IsDecoy reports whether the color is one of the decoy tags.
func (c Color) IsDecoy() bool {
	return c == ColorDecoy || c == ColorDecoyAlt
}

func (c Color) String() string {
	switch c {
	case ColorIdle:
		return "idle"
	case ColorActive:
		return "active"
	case ColorDecoy:
		return "decoy"
	case ColorDecoyAlt:
		return "decoy-alt"
	case ColorError:
		return "error"
	default:
		return "unknown"
	}
}

// SessionRecord captures a finished game session.
type SessionRecord struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	StartLevel  int
	EndLevel    int
	Rounds      int
	AverageMs   int
	BestMs      int
	FalseStarts int
	Score       int
	Title       string
}

// RoundRecord stores one completed round of a session.
type RoundRecord struct {
	Index      int
	ReactionMs int
	Difficulty float64
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID   string    `json:"id" yaml:"id"`
	EndedAt     time.Time `json:"ended_at" yaml:"ended_at"`
	StartLevel  int       `json:"start_level" yaml:"start_level"`
	EndLevel    int       `json:"end_level" yaml:"end_level"`
	AverageMs   int       `json:"average_ms" yaml:"average_ms"`
	BestMs      int       `json:"best_ms" yaml:"best_ms"`
	FalseStarts int       `json:"false_starts" yaml:"false_starts"`
	Score       int       `json:"score" yaml:"score"`
	Title       string    `json:"title" yaml:"title"`
}

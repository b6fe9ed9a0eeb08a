// Package records keeps the best and last session results in a key-value store.
package records

import (
	"context"
	"fmt"
	"strconv"

	"github.com/verte-zerg/reflex/internal/scoring"
)

// Keys of the persisted scalars.
const (
	KeyBestTime  = "best_time"
	KeyBestScore = "best_score"
	KeyLastTime  = "last_time"
	KeyLastScore = "last_score"
)

// Sentinels rendered when a value was never recorded.
const (
	NoValue     = "--"
	Unranked    = "UNRANKED"
	NoLastScore = "NO DATA"
)

// KV is a string-keyed scalar store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Value is an optional integer record.
type Value struct {
	N  int
	OK bool
}

// Stats are the persisted best and last results.
type Stats struct {
	BestTime  Value
	BestScore Value
	LastTime  Value
	LastScore Value
}

// Load reads the records. Missing, unreadable or malformed entries come back unset.
func Load(ctx context.Context, kv KV) Stats {
	return Stats{
		BestTime:  load(ctx, kv, KeyBestTime),
		BestScore: load(ctx, kv, KeyBestScore),
		LastTime:  load(ctx, kv, KeyLastTime),
		LastScore: load(ctx, kv, KeyLastScore),
	}
}

func load(ctx context.Context, kv KV, key string) Value {
	if kv == nil {
		return Value{}
	}
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return Value{}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Value{}
	}
	return Value{N: n, OK: true}
}

// Save folds a finished session into the records: best time keeps the minimum,
// best score keeps the maximum, the last values are overwritten.
func Save(ctx context.Context, kv KV, res scoring.Result) error {
	prev := Load(ctx, kv)
	if !prev.BestTime.OK || res.Best < prev.BestTime.N {
		if err := set(ctx, kv, KeyBestTime, res.Best); err != nil {
			return err
		}
	}
	if !prev.BestScore.OK || res.Final > prev.BestScore.N {
		if err := set(ctx, kv, KeyBestScore, res.Final); err != nil {
			return err
		}
	}
	if err := set(ctx, kv, KeyLastTime, res.Best); err != nil {
		return err
	}
	return set(ctx, kv, KeyLastScore, res.Final)
}

func set(ctx context.Context, kv KV, key string, v int) error {
	if err := kv.Set(ctx, key, strconv.Itoa(v)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Time renders a reaction-time record.
func (v Value) Time() string {
	if !v.OK {
		return NoValue
	}
	return strconv.Itoa(v.N)
}

// Rating renders a score record out of 10, or the given sentinel.
func (v Value) Rating(sentinel string) string {
	if !v.OK {
		return sentinel
	}
	return fmt.Sprintf("%d/10", v.N)
}

package cue

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/reflex/internal/logging"
)

func TestBellRingsOnlyOnFailures(t *testing.T) {
	var out, logs bytes.Buffer
	b := NewBell(&out, logging.NewLogger("debug", &logs))

	b.Success()
	b.Verdict(true)
	if out.Len() != 0 {
		t.Fatalf("expected silence for good events, got %q", out.String())
	}

	b.Fail()
	b.Timeout()
	b.Verdict(false)
	if got := strings.Count(out.String(), "\a"); got != 4 {
		t.Fatalf("expected 4 bells, got %d", got)
	}
	if !strings.Contains(logs.String(), "name=timeout") {
		t.Fatalf("expected cue to be logged, got %q", logs.String())
	}
}

func TestBellWithoutLogger(t *testing.T) {
	var out bytes.Buffer
	b := NewBell(&out, nil)
	b.Success()
	b.Fail()
	b.Timeout()
	b.Verdict(false)
	if got := strings.Count(out.String(), "\a"); got != 4 {
		t.Fatalf("expected 4 bells, got %d", got)
	}
}

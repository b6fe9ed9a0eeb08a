package main

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/reflex/internal/config"
	"github.com/verte-zerg/reflex/internal/model"
)

func TestValidateConfig(t *testing.T) {
	good := model.Config{StartLevel: 2, EndLevel: 8, TotalRounds: 20}
	if err := validateConfig(good, "debug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		cfg   model.Config
		level string
		flag  string
	}{
		{model.Config{StartLevel: 0, EndLevel: 5, TotalRounds: 20}, "info", "--start"},
		{model.Config{StartLevel: 1, EndLevel: 11, TotalRounds: 20}, "info", "--end"},
		{model.Config{StartLevel: 6, EndLevel: 5, TotalRounds: 20}, "info", "--start"},
		{model.Config{StartLevel: 1, EndLevel: 5, TotalRounds: 0}, "info", "--rounds"},
		{good, "loud", "--log-level"},
	}
	for _, tc := range cases {
		err := validateConfig(tc.cfg, tc.level)
		if err == nil || !strings.Contains(err.Error(), tc.flag) {
			t.Fatalf("expected %s error for %+v, got %v", tc.flag, tc.cfg, err)
		}
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("start", "4"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	fileStart, fileEnd := 2, 9
	start, end := 4, 10
	applyIntConfig(cmd, "start", &start, &fileStart)
	applyIntConfig(cmd, "end", &end, &fileEnd)
	if start != 4 {
		t.Fatalf("expected flag to win, got %d", start)
	}
	if end != 9 {
		t.Fatalf("expected file value, got %d", end)
	}
	applyIntConfig(cmd, "end", &end, nil)
	if end != 9 {
		t.Fatalf("expected nil file value to be ignored, got %d", end)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	meta, err := toml.Decode(defaultConfigTemplate(), &cfg)
	if err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if len(meta.Undecoded()) != 0 {
		t.Fatalf("unexpected keys: %v", meta.Undecoded())
	}
	uncommented := strings.ReplaceAll(defaultConfigTemplate(), "# start-level", "start-level")
	if _, err := toml.Decode(uncommented, &cfg); err != nil {
		t.Fatalf("decode uncommented template: %v", err)
	}
	if cfg.Game.StartLevel == nil || *cfg.Game.StartLevel != 1 {
		t.Fatalf("expected start-level 1, got %v", cfg.Game.StartLevel)
	}
}

func TestStatsConfig(t *testing.T) {
	cfg, err := statsConfig("2026-01-02", 5, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Since == nil || cfg.Since.Day() != 2 || cfg.Last != 5 || cfg.TrendWindow != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if _, err := statsConfig("02/01/2026", 0, 1); err == nil {
		t.Fatalf("expected bad date error")
	}
	if _, err := statsConfig("", -1, 1); err == nil {
		t.Fatalf("expected bad last error")
	}
	if _, err := statsConfig("", 0, 0); err == nil {
		t.Fatalf("expected bad window error")
	}
}

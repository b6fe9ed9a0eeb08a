// Package main provides the CLI entrypoint for reflex.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/reflex/internal/config"
	"github.com/verte-zerg/reflex/internal/cue"
	"github.com/verte-zerg/reflex/internal/difficulty"
	"github.com/verte-zerg/reflex/internal/game"
	"github.com/verte-zerg/reflex/internal/logging"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/stats"
	"github.com/verte-zerg/reflex/internal/statsui"
	"github.com/verte-zerg/reflex/internal/store"
	"github.com/verte-zerg/reflex/internal/tui"
)

const (
	defaultStartLevel  = difficulty.MinLevel
	defaultEndLevel    = difficulty.MaxLevel
	defaultRounds      = game.DefaultRounds
	defaultLogLevel    = "info"
	defaultTrendWindow = 5
)

var (
	playStart    int
	playEnd      int
	playRounds   int
	playSound    bool
	playSeed     int64
	playLogLevel string

	statsSince       string
	statsLast        int
	statsTrendWindow int
	statsFormat      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reflex",
		Short:         "Terminal reaction-time trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().IntVar(&playStart, "start", defaultStartLevel, "intensity of the first round (1-10)")
	rootCmd.Flags().IntVar(&playEnd, "end", defaultEndLevel, "intensity of the last round (1-10)")
	rootCmd.Flags().IntVar(&playRounds, "rounds", defaultRounds, "rounds per session")
	rootCmd.Flags().BoolVar(&playSound, "sound", true, "ring the terminal bell on mistakes")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.Flags().StringVar(&playLogLevel, "log-level", defaultLogLevel, "log level (info, debug, trace, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "start", &playStart, fileCfg.Game.StartLevel)
	applyIntConfig(cmd, "end", &playEnd, fileCfg.Game.EndLevel)
	applyIntConfig(cmd, "rounds", &playRounds, fileCfg.Game.Rounds)
	applyBoolConfig(cmd, "sound", &playSound, fileCfg.Game.Sound)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Game.Seed)
	applyStringConfig(cmd, "log-level", &playLogLevel, fileCfg.Log.Level)

	cfg := model.Config{
		StartLevel:  playStart,
		EndLevel:    playEnd,
		TotalRounds: playRounds,
		Sound:       playSound,
		Seed:        playSeed,
	}
	if err := validateConfig(cfg, playLogLevel); err != nil {
		return err
	}

	log, logCloser, err := logging.OpenFile(config.DefaultLogPath(), playLogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closeQuietly(logCloser, "log")

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeQuietly(st, "db")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("starting", "start_level", cfg.StartLevel, "end_level", cfg.EndLevel, "rounds", cfg.TotalRounds, "seed", seed)

	model := tui.NewModel(tui.Options{
		Config: cfg,
		Store:  st,
		Cues:   newCues(cfg.Sound, log),
		Clock:  game.SystemClock{},
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: log,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// newCues rings on stderr; stdout belongs to the renderer.
func newCues(sound bool, log *slog.Logger) game.Cues {
	if !sound {
		return cue.Silent{}
	}
	return cue.NewBell(os.Stderr, log)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsTrendWindow, "trend-window", defaultTrendWindow, "moving average window")
	cmd.Flags().StringVar(&statsFormat, "format", "", "print instead of browsing: text, json or yaml")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig(statsSince, statsLast, statsTrendWindow)
	if err != nil {
		return err
	}
	if statsFormat != "" && !stats.ValidFormat(statsFormat) {
		return fmt.Errorf("--format must be one of text, json, yaml")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeQuietly(st, "db")

	format := statsFormat
	if format == "" && !term.IsTerminal(int(os.Stdout.Fd())) {
		format = stats.FormatText
	}
	if format != "" {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if err := stats.Render(cmd.OutOrStdout(), report, format); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	model := statsui.NewModel(st, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func statsConfig(since string, last, window int) (model.StatsConfig, error) {
	var sinceTime *time.Time
	if since != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return model.StatsConfig{}, fmt.Errorf("--trend-window must be >= 1")
	}
	return model.StatsConfig{
		Since:       sinceTime,
		Last:        last,
		TrendWindow: window,
	}, nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear best and last records",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeQuietly(st, "db")

	if err := st.ClearRecords(context.Background()); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Records cleared. Session history is kept."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# reflex configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# start-level = %d        # Intensity of the first round (1-10)
# end-level = %d         # Intensity of the last round (1-10)
# rounds = %d            # Rounds per session
# sound = true            # Ring the terminal bell on mistakes
# seed = 0                # Random seed, 0 picks one from the clock

[log]
# level = %q          # info, debug, trace, warn or error
`,
		defaultStartLevel,
		defaultEndLevel,
		defaultRounds,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config, logLevel string) error {
	if cfg.StartLevel < difficulty.MinLevel || cfg.StartLevel > difficulty.MaxLevel {
		return fmt.Errorf("--start must be between %d and %d", difficulty.MinLevel, difficulty.MaxLevel)
	}
	if cfg.EndLevel < difficulty.MinLevel || cfg.EndLevel > difficulty.MaxLevel {
		return fmt.Errorf("--end must be between %d and %d", difficulty.MinLevel, difficulty.MaxLevel)
	}
	if cfg.StartLevel > cfg.EndLevel {
		return fmt.Errorf("--start must be <= --end")
	}
	if cfg.TotalRounds <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}
	if !logging.ValidLevel(logLevel) {
		return fmt.Errorf("--log-level must be one of info, debug, trace, warn, error")
	}
	return nil
}

func closeQuietly(c io.Closer, name string) {
	if cerr := c.Close(); cerr != nil {
		logErrf("failed to close %s: %v\n", name, cerr)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

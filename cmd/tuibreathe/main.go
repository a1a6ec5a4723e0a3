// Package main provides the CLI entrypoint for tuibreathe.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuibreathe/internal/clock"
	"github.com/verte-zerg/tuibreathe/internal/config"
	"github.com/verte-zerg/tuibreathe/internal/cues"
	"github.com/verte-zerg/tuibreathe/internal/logging"
	"github.com/verte-zerg/tuibreathe/internal/model"
	"github.com/verte-zerg/tuibreathe/internal/patterns"
	"github.com/verte-zerg/tuibreathe/internal/session"
	"github.com/verte-zerg/tuibreathe/internal/stats"
	"github.com/verte-zerg/tuibreathe/internal/statsui"
	"github.com/verte-zerg/tuibreathe/internal/store"
	"github.com/verte-zerg/tuibreathe/internal/timer"
	"github.com/verte-zerg/tuibreathe/internal/tui"
	"github.com/verte-zerg/tuibreathe/internal/viz"
)

const defaultStatsWindow = 5

var (
	breathePattern    string
	breatheViz        string
	breatheHaptics    bool
	breatheVoice      bool
	breatheVoiceStyle string
	breatheTickMs     int
	breatheNoHistory  bool
	breatheLogLevel   string

	statsPattern string
	statsSince   string
	statsLast    int
	statsWindow  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultSettings()
	rootCmd := &cobra.Command{
		Use:           "tuibreathe",
		Short:         "TUI breathing exercise timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runBreatheCmd,
	}

	rootCmd.Flags().StringVar(&breathePattern, "pattern", defaults.Pattern, "pattern id (see: tuibreathe patterns)")
	rootCmd.Flags().StringVar(&breatheViz, "viz", defaults.Visualization, "visualization ("+strings.Join(viz.IDs(), ", ")+")")
	rootCmd.Flags().BoolVar(&breatheHaptics, "haptics", defaults.Haptics, "ring the terminal bell on each phase change")
	rootCmd.Flags().BoolVar(&breatheVoice, "voice", defaults.Voice, "speak phase prompts")
	rootCmd.Flags().StringVar(&breatheVoiceStyle, "voice-style", string(defaults.VoiceStyle), "voice prompt style (short or guided)")
	rootCmd.Flags().IntVar(&breatheTickMs, "tick-ms", int(defaults.TickInterval/time.Millisecond), "timer tick interval in milliseconds")
	rootCmd.Flags().BoolVar(&breatheNoHistory, "no-history", false, "do not record sessions")
	rootCmd.Flags().StringVar(&breatheLogLevel, "log-level", os.Getenv(logging.EnvLevel), "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPatternsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runBreatheCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "pattern", &breathePattern, fileCfg.Session.Pattern)
	applyStringConfig(cmd, "viz", &breatheViz, fileCfg.Session.Visualization)
	applyBoolConfig(cmd, "haptics", &breatheHaptics, fileCfg.Session.Haptics)
	applyBoolConfig(cmd, "voice", &breatheVoice, fileCfg.Session.Voice)
	applyStringConfig(cmd, "voice-style", &breatheVoiceStyle, fileCfg.Session.VoiceStyle)
	applyIntConfig(cmd, "tick-ms", &breatheTickMs, fileCfg.Session.TickMs)
	applyStringConfig(cmd, "log-level", &breatheLogLevel, fileCfg.Session.LogLevel)
	if fileCfg.Session.History != nil && !cmd.Flags().Changed("no-history") {
		breatheNoHistory = !*fileCfg.Session.History
	}

	settings, err := buildSettings()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(breatheLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	logger, closeLog, err := logging.OpenFile(config.DefaultLogPath(), level)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logger = logging.Discard()
		closeLog = func() error { return nil }
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	patternStore, err := loadPatterns(fileCfg)
	if err != nil {
		return err
	}
	pattern, ok := patternStore.Resolve(settings.Pattern)
	if !ok {
		logErrf("unknown pattern %q; using %s\n", settings.Pattern, pattern.ID)
	}

	caps, closeCaps := hostCapabilities(logger)
	defer closeCaps()

	var ctrl *session.Controller
	engine, err := timer.New(pattern, clock.Real{}, timer.Config{
		TickInterval: settings.TickInterval,
		OnPhaseChange: func(phase int) {
			ctrl.OnPhaseChange(phase)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start timer: %w", err)
	}
	defer engine.Close()
	ctrl = session.New(engine, caps, session.Settings{
		Haptics:    settings.Haptics,
		Voice:      settings.Voice,
		VoiceStyle: settings.VoiceStyle,
	}, logger)

	var history tui.History
	if settings.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		history = st
	}

	m := tui.NewModel(tui.Options{
		Timer:         engine,
		Controller:    ctrl,
		Patterns:      patternStore,
		History:       history,
		Pattern:       pattern,
		Visualization: settings.Visualization,
		Logger:        logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func buildSettings() (model.Settings, error) {
	if _, ok := viz.Lookup(breatheViz); !ok {
		return model.Settings{}, fmt.Errorf("unknown --viz %q (available: %s)", breatheViz, strings.Join(viz.IDs(), ", "))
	}
	style, err := model.ParseVoiceStyle(breatheVoiceStyle)
	if err != nil {
		return model.Settings{}, err
	}
	if breatheTickMs <= 0 {
		return model.Settings{}, fmt.Errorf("--tick-ms must be > 0")
	}
	return model.Settings{
		Pattern:       breathePattern,
		Visualization: breatheViz,
		Haptics:       breatheHaptics,
		Voice:         breatheVoice,
		VoiceStyle:    style,
		TickInterval:  time.Duration(breatheTickMs) * time.Millisecond,
		History:       !breatheNoHistory,
	}, nil
}

// loadPatterns seeds the store with the built-in patterns plus the config's.
func loadPatterns(fileCfg config.FileConfig) (*patterns.Store, error) {
	user, err := fileCfg.UserPatterns()
	if err != nil {
		return nil, fmt.Errorf("invalid config pattern: %w", err)
	}
	st, err := patterns.New(mergePatterns(model.DefaultPatterns(), user))
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}
	return st, nil
}

// mergePatterns appends overrides to base; an override with a known id replaces it in place.
func mergePatterns(base, overrides []model.Pattern) []model.Pattern {
	out := append([]model.Pattern(nil), base...)
	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.ID] = i
	}
	for _, p := range overrides {
		if i, ok := index[p.ID]; ok {
			out[i] = p
			continue
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}

// hostCapabilities detects the bell, speech and wake-lock helpers. Missing ones stay nil.
func hostCapabilities(logger *slog.Logger) (session.Capabilities, func()) {
	caps := session.Capabilities{Haptics: cues.Bell{W: os.Stdout}}
	closers := []func(){}
	if speaker, err := cues.NewCommandSpeaker(); err != nil {
		logger.Info("voice prompts unavailable", "error", err)
	} else {
		logger.Debug("speech command", "name", speaker.Name())
		caps.Speaker = speaker
		closers = append(closers, speaker.Close)
	}
	if lock, err := cues.NewInhibitLock(); err != nil {
		logger.Info("wake lock unavailable", "error", err)
	} else {
		caps.WakeLock = lock
		closers = append(closers, lock.Release)
	}
	return caps, func() {
		for _, c := range closers {
			c()
		}
	}
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
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List breathing patterns",
		Args:  cobra.NoArgs,
		RunE:  runPatternsCmd,
	}
}

func runPatternsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := loadPatterns(fileCfg)
	if err != nil {
		return err
	}
	return writePatternTable(cmd.OutOrStdout(), st.List())
}

func writePatternTable(w io.Writer, list []model.Pattern) error {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			string(p.Kind),
			model.FormatDurations(p.Durations),
			model.FormatSeconds(p.CycleSeconds()) + "s",
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))).
		Headers("ID", "NAME", "KIND", "DURATIONS", "CYCLE").
		Rows(rows...)
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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
	cmd.Flags().StringVar(&statsPattern, "pattern", "", "pattern id filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	sinceTime, err := statsui.ParseSince(statsSince)
	if err != nil {
		return fmt.Errorf("invalid --since value: %w", err)
	}
	if statsLast < 0 || statsWindow < 0 {
		return fmt.Errorf("--last and --window must be >= 0")
	}

	cfg := model.StatsConfig{
		Pattern: statsPattern,
		Since:   sinceTime,
		Last:    statsLast,
		Window:  statsWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if !stats.IsTerminal(os.Stdout) {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return report.Render(cmd.OutOrStdout(), 0)
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
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
	defaults := model.DefaultSettings()
	return fmt.Sprintf(`# tuibreathe configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# pattern = %q          # Pattern id (built-in: box4, box8, relaxing, calm)
# visualization = %q     # One of: %s
# haptics = %t          # Ring the terminal bell on each phase change
# voice = %t            # Speak phase prompts (needs say, spd-say or espeak)
# voice-style = %q     # short or guided
# tick-ms = %d            # Timer tick interval in milliseconds
# history = %t          # Record completed sessions for tuibreathe stats
# log-level = "info"      # debug, info, warn or error

# Extra patterns. Durations are seconds for in, hold, out, hold.
# [[patterns]]
# id = "coherent"
# name = "Coherent 5.5"
# kind = "trapezoid"
# durations = [5.5, 0, 5.5, 0]
`,
		defaults.Pattern,
		defaults.Visualization,
		strings.Join(viz.IDs(), ", "),
		defaults.Haptics,
		defaults.Voice,
		string(defaults.VoiceStyle),
		int(defaults.TickInterval/time.Millisecond),
		defaults.History,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

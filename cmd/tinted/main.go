// tinted is a terminal companion for base16-style color-scheme
// generators: it browses the generator's catalog, applies themes, keeps
// the generator config wired for editor templates and reloads the
// editor when new theme artifacts land.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/tinted/internal/apply"
	"github.com/marcus/tinted/internal/browse"
	"github.com/marcus/tinted/internal/catalog"
	"github.com/marcus/tinted/internal/config"
	"github.com/marcus/tinted/internal/generator"
	"github.com/marcus/tinted/internal/history"
	"github.com/marcus/tinted/internal/reconcile"
	"github.com/marcus/tinted/internal/reload"
	"github.com/marcus/tinted/internal/state"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   string
	debugFlag    bool
	historyLimit int
)

var rootCmd = &cobra.Command{
	Use:   "tinted",
	Short: "tinted – terminal companion for base16-style scheme generators",
	Long: "Tinted shells out to an external color-scheme generator, keeps its\n" +
		"config wired for editor templates, and applies and previews themes.",
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Check the generator and reconcile its config",
	Run:   runSetup,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Run:   runList,
}

var applyCmd = &cobra.Command{
	Use:   "apply <theme>",
	Short: "Apply a theme (use \"random\" to let the generator pick)",
	Args:  cobra.ExactArgs(1),
	Run:   runApply,
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick a theme interactively and apply it",
	Run:   func(cmd *cobra.Command, args []string) { runBrowse(true) },
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse themes with apply, preview and refresh",
	Run:   func(cmd *cobra.Command, args []string) { runBrowse(false) },
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Trigger the editor theme reload",
	Run:   runReload,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch theme artifacts and reload the editor on change",
	Run:   runWatch,
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the last applied theme",
	Run:   runCurrent,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent theme applies",
	Run:   runHistory,
}

func init() {
	rootCmd.Version = effectiveVersion(Version)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of entries to show")

	rootCmd.AddCommand(setupCmd, listCmd, applyCmd, selectCmd, browseCmd,
		reloadCmd, watchCmd, currentCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debugFlag {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func loadConfig() *config.Config {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		fatal("load config: %v", err)
	}
	return cfg
}

// checkedRunner builds the generator runner and fails fast when the
// binary is missing, before anything else runs.
func checkedRunner(cfg *config.Config) *generator.Runner {
	runner := generator.New(cfg.Generator.Command)
	if err := runner.CheckInstalled(); err != nil {
		fatal("%s is not installed or not on PATH; install the generator first", runner.Command())
	}
	return runner
}

// openHistory returns the apply log, or nil when disabled or unopenable.
func openHistory(cfg *config.Config, logger *slog.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		logger.Warn("history disabled", "err", err)
		return nil
	}
	return store
}

// newApplier wires the applier with history recording and, when
// configured, automatic editor reload.
func newApplier(cfg *config.Config, runner apply.Runner, store *state.Store, hist *history.Store, logger *slog.Logger) *apply.Applier {
	opts := []apply.Option{}
	if hist != nil {
		opts = append(opts, apply.WithRecorder(func(requested, resolved string, success bool, detail string) {
			if err := hist.Record(requested, resolved, success, detail); err != nil {
				logger.Warn("recording apply failed", "err", err)
			}
		}))
	}
	if cfg.Reload.Auto && len(cfg.Reload.Command) > 0 {
		reloader := reload.New(cfg.ArtifactPaths(), cfg.Reload.Command, logger)
		opts = append(opts, apply.WithReload(reloader.Run, cfg.Reload.GraceDelay))
	}
	return apply.New(runner, store, logger, opts...)
}

func runSetup(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	created, err := config.SaveDefaultIfMissing(configPath)
	if err != nil {
		fatal("write default config: %v", err)
	}
	if created {
		fmt.Println("wrote default tinted config")
	}

	checkedRunner(cfg)

	changed, err := reconcile.Ensure(cfg.Generator.ConfigPath,
		reconcile.Mapping(cfg.Templates.Dark),
		reconcile.Mapping(cfg.Templates.Light))
	if err != nil {
		fatal("reconcile generator config: %v", err)
	}
	if changed {
		fmt.Printf("added template mappings to %s\n", cfg.Generator.ConfigPath)
	} else {
		fmt.Println("generator config already declares both template mappings")
	}
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	runner := checkedRunner(cfg)

	out, err := runner.Run("list")
	if err != nil {
		fatal("list themes: %v", err)
	}
	themes := catalog.Parse(out)
	if len(themes) == 0 {
		fatal("no themes found")
	}
	for _, t := range themes {
		fmt.Println(t)
	}
}

func runApply(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	runner := checkedRunner(cfg)

	hist := openHistory(cfg, logger)
	if hist != nil {
		defer hist.Close()
	}

	applier := newApplier(cfg, runner, state.New(), hist, logger)
	result, err := applier.Apply(args[0])
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("applied %s\n", result.Theme)
}

func runBrowse(quitOnApply bool) {
	cfg := loadConfig()
	logger := newLogger()
	runner := checkedRunner(cfg)

	hist := openHistory(cfg, logger)
	if hist != nil {
		defer hist.Close()
	}

	store := state.New()
	applier := newApplier(cfg, runner, store, hist, logger)

	model := browse.New(browse.Options{
		Runner:       runner,
		Applier:      applier,
		Store:        store,
		ArtifactPath: cfg.Templates.Dark.Target,
		SwatchWidth:  cfg.UI.SwatchWidth,
		QuitOnApply:  quitOnApply,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("run browser: %v", err)
	}
}

func runReload(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	reloader := reload.New(cfg.ArtifactPaths(), cfg.Reload.Command, logger)
	if err := reloader.Run(); err != nil {
		if errors.Is(err, reload.ErrNoCommand) {
			fatal("no reload command configured; set reload.command in the config")
		}
		fatal("%v", err)
	}
	fmt.Println("editor reload triggered")
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	if len(cfg.Reload.Command) == 0 {
		fatal("no reload command configured; set reload.command in the config")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reloader := reload.New(cfg.ArtifactPaths(), cfg.Reload.Command, logger)
	logger.Info("watching theme artifacts", "paths", cfg.ArtifactPaths())
	if err := reload.Watch(reloader, ctx.Done()); err != nil {
		fatal("watch artifacts: %v", err)
	}
}

func runCurrent(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	hist := openHistory(cfg, logger)
	if hist == nil {
		fatal("history is disabled; current theme is only tracked per session")
	}
	defer hist.Close()

	entry, err := hist.LastApplied()
	if err != nil {
		fatal("read history: %v", err)
	}
	if entry == nil {
		fmt.Println("no theme applied yet")
		return
	}
	fmt.Printf("%s (applied %s)\n", entry.Theme, entry.AppliedAt.Local().Format("2006-01-02 15:04"))
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	hist := openHistory(cfg, logger)
	if hist == nil {
		fatal("history is disabled")
	}
	defer hist.Close()

	entries, err := hist.Recent(historyLimit)
	if err != nil {
		fatal("read history: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("no applies recorded")
		return
	}
	for _, e := range entries {
		mark := "ok"
		if !e.Success {
			mark = "failed"
		}
		line := fmt.Sprintf("%s  %-6s %s", e.AppliedAt.Local().Format("2006-01-02 15:04"), mark, e.Theme)
		if e.Requested != e.Theme {
			line += fmt.Sprintf(" (requested %s)", e.Requested)
		}
		fmt.Println(line)
	}
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "devel"
}

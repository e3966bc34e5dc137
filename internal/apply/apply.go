// Package apply drives the generator's apply protocol and keeps the
// current-theme state in sync with the result.
package apply

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tinted/internal/catalog"
	"github.com/marcus/tinted/internal/state"
)

// Runner abstracts generator invocation so tests can feed canned output.
type Runner interface {
	Run(args ...string) (string, error)
}

// Hook runs after a successful apply with the resolved theme name.
type Hook func(theme string)

// Recorder receives every apply attempt for the history log. detail
// carries the generator's diagnostic text on failure, empty on success.
type Recorder func(requested, resolved string, success bool, detail string)

// Result is the outcome of a successful apply.
type Result struct {
	Theme  string // resolved concrete theme name
	Output string // cleaned generator output
}

// The generator flags failures in its output text rather than its exit
// code. Markers are matched case-insensitively.
var errorMarkers = []string{"[e]", "error:"}

// randomPattern extracts the concrete name the generator chose when
// applying the synthetic "random" theme.
var randomPattern = regexp.MustCompile(`randomly selected\s+(\S+)`)

// Applier applies themes through the generator.
type Applier struct {
	runner     Runner
	store      *state.Store
	logger     *slog.Logger
	hooks      []Hook
	record     Recorder
	reload     func() error
	autoReload bool
	grace      time.Duration
}

// Option configures an Applier.
type Option func(*Applier)

// WithHook registers a post-apply hook. Hooks run in registration order
// after a successful apply.
func WithHook(h Hook) Option {
	return func(a *Applier) { a.hooks = append(a.hooks, h) }
}

// WithRecorder registers a sink for apply attempts.
func WithRecorder(r Recorder) Option {
	return func(a *Applier) { a.record = r }
}

// WithReload enables triggering the editor reload callback after a
// successful apply, once grace has elapsed to let the generator finish
// writing its artifact files.
func WithReload(reload func() error, grace time.Duration) Option {
	return func(a *Applier) {
		a.reload = reload
		a.autoReload = true
		a.grace = grace
	}
}

// New creates an Applier writing successful applies into store.
func New(runner Runner, store *state.Store, logger *slog.Logger, opts ...Option) *Applier {
	a := &Applier{
		runner: runner,
		store:  store,
		logger: logger,
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply runs the generator for name and classifies the outcome from its
// output text. On failure the state store is left untouched and the
// cleaned diagnostic text is returned verbatim in the error. On success
// the resolved concrete name (never "random" unless resolution failed)
// is stored and returned.
func (a *Applier) Apply(name string) (Result, error) {
	out, err := a.runner.Run("apply", name)
	if err != nil {
		a.recordAttempt(name, name, false, err.Error())
		return Result{}, err
	}

	cleaned := ansi.Strip(out)
	if failed(cleaned) {
		detail := strings.TrimSpace(cleaned)
		a.recordAttempt(name, name, false, detail)
		return Result{Output: cleaned}, fmt.Errorf("apply %s: %s", name, detail)
	}

	resolved := name
	if name == catalog.Random {
		if m := randomPattern.FindStringSubmatch(cleaned); m != nil {
			resolved = strings.TrimSpace(m[1])
		} else {
			// The generator applied something but never said what.
			// Treated as success with the literal token as the name.
			a.logger.Warn("could not resolve randomly selected theme",
				"output", strings.TrimSpace(cleaned))
		}
	}

	a.store.SetCurrent(resolved)
	a.recordAttempt(name, resolved, true, "")

	if a.autoReload && a.reload != nil {
		time.Sleep(a.grace)
		if err := a.reload(); err != nil {
			// Reload failure does not undo the applied theme.
			a.logger.Warn("theme reload failed", "err", err)
		}
	}

	for _, h := range a.hooks {
		h(resolved)
	}

	return Result{Theme: resolved, Output: cleaned}, nil
}

// Preview runs the generator's preview for name and returns the raw
// output with its color escape sequences intact, so swatch colors can
// be extracted from it.
func (a *Applier) Preview(name string) (string, error) {
	out, err := a.runner.Run("apply", name, "--preview")
	if err != nil {
		return "", err
	}
	if failed(ansi.Strip(out)) {
		return "", fmt.Errorf("preview %s: %s", name, strings.TrimSpace(ansi.Strip(out)))
	}
	return out, nil
}

func (a *Applier) recordAttempt(requested, resolved string, success bool, detail string) {
	if a.record != nil {
		a.record(requested, resolved, success, detail)
	}
}

func failed(cleaned string) bool {
	lower := strings.ToLower(cleaned)
	for _, marker := range errorMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

package apply

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/marcus/tinted/internal/state"
)

// fakeRunner returns canned output and records the arguments it saw.
type fakeRunner struct {
	output string
	err    error
	args   []string
}

func (f *fakeRunner) Run(args ...string) (string, error) {
	f.args = args
	return f.output, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestApply_Success(t *testing.T) {
	runner := &fakeRunner{output: "Applied gruvbox-dark\n"}
	store := state.New()

	a := New(runner, store, discard())
	result, err := a.Apply("gruvbox-dark")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.Theme != "gruvbox-dark" {
		t.Errorf("got theme %q, want gruvbox-dark", result.Theme)
	}
	if store.Current() != "gruvbox-dark" {
		t.Errorf("store = %q, want gruvbox-dark", store.Current())
	}
	if len(runner.args) != 2 || runner.args[0] != "apply" || runner.args[1] != "gruvbox-dark" {
		t.Errorf("unexpected args %v", runner.args)
	}
}

func TestApply_ErrorMarkerLeavesStateUntouched(t *testing.T) {
	runner := &fakeRunner{output: "[E] bad theme\n"}
	store := state.New()
	store.SetCurrent("nord")

	a := New(runner, store, discard())
	_, err := a.Apply("bogus")
	if err == nil {
		t.Fatal("expected failure for error-marked output")
	}
	if !strings.Contains(err.Error(), "[E] bad theme") {
		t.Errorf("error should carry diagnostic text, got %v", err)
	}
	if store.Current() != "nord" {
		t.Errorf("state changed on failure: %q", store.Current())
	}
}

func TestApply_ErrorMarkerCaseVariants(t *testing.T) {
	for _, output := range []string{
		"[E] nope\n",
		"[e] nope\n",
		"Error: nope\n",
		"error: nope\n",
	} {
		runner := &fakeRunner{output: output}
		a := New(runner, state.New(), discard())
		if _, err := a.Apply("x"); err == nil {
			t.Errorf("output %q should classify as failure", output)
		}
	}
}

func TestApply_ResolvesRandom(t *testing.T) {
	runner := &fakeRunner{output: "Applied successfully. randomly selected gruvbox-dark\n"}
	store := state.New()

	a := New(runner, store, discard())
	result, err := a.Apply("random")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.Theme != "gruvbox-dark" {
		t.Errorf("got theme %q, want gruvbox-dark", result.Theme)
	}
	if store.Current() != "gruvbox-dark" {
		t.Errorf("store = %q, want gruvbox-dark", store.Current())
	}
}

func TestApply_UnresolvedRandomIsStillSuccess(t *testing.T) {
	runner := &fakeRunner{output: "Applied.\n"}
	store := state.New()

	a := New(runner, store, discard())
	result, err := a.Apply("random")
	if err != nil {
		t.Fatalf("unresolved random should not fail: %v", err)
	}
	// The literal token is retained when the generator never names its pick.
	if result.Theme != "random" {
		t.Errorf("got theme %q, want random", result.Theme)
	}
	if store.Current() != "random" {
		t.Errorf("store = %q, want random", store.Current())
	}
}

func TestApply_StripsEscapesBeforeClassifying(t *testing.T) {
	runner := &fakeRunner{output: "\x1b[32mApplied\x1b[0m randomly selected \x1b[1mnord\x1b[0m\n"}
	store := state.New()

	a := New(runner, store, discard())
	result, err := a.Apply("random")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.Theme != "nord" {
		t.Errorf("got theme %q, want nord", result.Theme)
	}
}

func TestApply_RecorderSeesAttempts(t *testing.T) {
	type attempt struct {
		requested, resolved string
		success             bool
	}
	var attempts []attempt
	rec := func(requested, resolved string, success bool, detail string) {
		attempts = append(attempts, attempt{requested, resolved, success})
	}

	runner := &fakeRunner{output: "randomly selected nord\n"}
	a := New(runner, state.New(), discard(), WithRecorder(rec))
	if _, err := a.Apply("random"); err != nil {
		t.Fatal(err)
	}

	runner.output = "[E] broken\n"
	_, _ = a.Apply("bogus")

	if len(attempts) != 2 {
		t.Fatalf("got %d attempts, want 2", len(attempts))
	}
	if attempts[0] != (attempt{"random", "nord", true}) {
		t.Errorf("unexpected first attempt: %+v", attempts[0])
	}
	if attempts[1] != (attempt{"bogus", "bogus", false}) {
		t.Errorf("unexpected second attempt: %+v", attempts[1])
	}
}

func TestApply_HooksRunOnSuccessOnly(t *testing.T) {
	var hooked []string
	hook := func(theme string) { hooked = append(hooked, theme) }

	runner := &fakeRunner{output: "ok\n"}
	a := New(runner, state.New(), discard(), WithHook(hook))
	if _, err := a.Apply("nord"); err != nil {
		t.Fatal(err)
	}

	runner.output = "Error: nope\n"
	_, _ = a.Apply("bogus")

	if len(hooked) != 1 || hooked[0] != "nord" {
		t.Errorf("hooks = %v, want [nord]", hooked)
	}
}

func TestApply_ReloadAfterGrace(t *testing.T) {
	reloaded := make(chan struct{}, 1)
	reload := func() error {
		reloaded <- struct{}{}
		return nil
	}

	runner := &fakeRunner{output: "ok\n"}
	a := New(runner, state.New(), discard(), WithReload(reload, time.Millisecond))
	if _, err := a.Apply("nord"); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	default:
		t.Error("reload callback was not invoked")
	}
}

func TestApply_ReloadFailureDoesNotFailApply(t *testing.T) {
	reload := func() error { return errors.New("editor gone") }

	runner := &fakeRunner{output: "ok\n"}
	store := state.New()
	a := New(runner, store, discard(), WithReload(reload, 0))
	if _, err := a.Apply("nord"); err != nil {
		t.Errorf("reload failure must not fail the apply: %v", err)
	}
	if store.Current() != "nord" {
		t.Errorf("store = %q, want nord", store.Current())
	}
}

func TestPreview_PassesFlagAndKeepsEscapes(t *testing.T) {
	runner := &fakeRunner{output: "\x1b[48;2;255;0;0m  \x1b[0m\n"}
	a := New(runner, state.New(), discard())

	out, err := a.Preview("nord")
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if !strings.Contains(out, "\x1b[48;2;255;0;0m") {
		t.Error("preview output should keep its escape sequences")
	}
	want := []string{"apply", "nord", "--preview"}
	if len(runner.args) != 3 || runner.args[0] != want[0] || runner.args[1] != want[1] || runner.args[2] != want[2] {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
}

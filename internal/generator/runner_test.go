package generator

import (
	"errors"
	"strings"
	"testing"
)

func TestClean_RemovesColorEscapes(t *testing.T) {
	got := Clean("\x1b[31mred\x1b[0m plain")
	if got != "red plain" {
		t.Errorf("Clean() = %q, want %q", got, "red plain")
	}
}

func TestClean_Idempotent(t *testing.T) {
	raw := "\x1b[1;32mok\x1b[0m done\nnext \x1b[48;2;10;20;30mline\x1b[m"
	once := Clean(raw)
	twice := Clean(once)
	if once != twice {
		t.Errorf("Clean not idempotent: %q vs %q", once, twice)
	}
}

func TestNew_DefaultCommand(t *testing.T) {
	if got := New("").Command(); got != DefaultCommand {
		t.Errorf("got %q, want %q", got, DefaultCommand)
	}
	if got := New("mygen").Command(); got != "mygen" {
		t.Errorf("got %q, want mygen", got)
	}
}

func TestCheckInstalled_Missing(t *testing.T) {
	r := New("definitely-not-a-real-binary-4242")
	err := r.CheckInstalled()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRun_CapturesOutput(t *testing.T) {
	r := New("echo")
	out, err := r.Run("hello")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("got %q, want hello", out)
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	r := New("false")
	if _, err := r.Run(); err != nil {
		t.Errorf("non-zero exit should not error, got %v", err)
	}
}

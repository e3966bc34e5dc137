package browse

import (
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/tinted/internal/apply"
	"github.com/marcus/tinted/internal/state"
)

type fakeRunner struct {
	output string
	err    error
}

func (f *fakeRunner) Run(args ...string) (string, error) {
	return f.output, f.err
}

func newTestModel(listing string) Model {
	runner := &fakeRunner{output: listing}
	store := state.New()
	logger := slog.New(slog.DiscardHandler)
	return New(Options{
		Runner:      runner,
		Applier:     apply.New(runner, store, logger),
		Store:       store,
		SwatchWidth: 9,
	})
}

const listing = "Schemes:\n  - gruvbox-dark\n  - nord\n  - zenburn\nOptions:\n"

func updateModel(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestInit_LoadsCatalog(t *testing.T) {
	m := newTestModel(listing)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should fetch the catalog")
	}

	msg, ok := cmd().(catalogMsg)
	if !ok {
		t.Fatalf("got %T, want catalogMsg", cmd())
	}
	if len(msg.themes) != 4 {
		t.Errorf("got %d themes, want 4 (incl. random)", len(msg.themes))
	}
}

func TestUpdate_CatalogPopulatesList(t *testing.T) {
	m := newTestModel(listing)
	m, _ = updateModel(t, m, catalogMsg{themes: []string{"gruvbox-dark", "nord", "random"}})

	if len(m.visible) != 3 {
		t.Fatalf("got %d visible themes, want 3", len(m.visible))
	}
	if m.loading {
		t.Error("loading should clear once the catalog arrives")
	}
}

func TestUpdate_EmptyCatalogReportsDistinctly(t *testing.T) {
	m := newTestModel("Options:\n")
	m, _ = updateModel(t, m, catalogMsg{themes: nil})

	if !m.statusErr || m.status != "no themes found" {
		t.Errorf("got status %q (err=%v), want 'no themes found'", m.status, m.statusErr)
	}
}

func TestUpdate_CursorMovement(t *testing.T) {
	m := newTestModel(listing)
	m, _ = updateModel(t, m, catalogMsg{themes: []string{"a", "b", "c"}})

	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	// Clamped at the end.
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.cursor)
	}
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
}

func TestUpdate_EnterAppliesSelection(t *testing.T) {
	m := newTestModel(listing)
	m, _ = updateModel(t, m, catalogMsg{themes: []string{"nord", "random"}})

	_, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should trigger an apply command")
	}
	msg, ok := cmd().(appliedMsg)
	if !ok {
		t.Fatalf("got %T, want appliedMsg", cmd())
	}
	if msg.requested != "nord" {
		t.Errorf("applied %q, want nord", msg.requested)
	}
}

func TestUpdate_QuitOnApply(t *testing.T) {
	m := newTestModel(listing)
	m.opts.QuitOnApply = true
	m, _ = updateModel(t, m, catalogMsg{themes: []string{"nord"}})

	_, cmd := updateModel(t, m, appliedMsg{requested: "nord", result: apply.Result{Theme: "nord"}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestApplyFilter(t *testing.T) {
	m := newTestModel(listing)
	m, _ = updateModel(t, m, catalogMsg{themes: []string{"gruvbox-dark", "gruvbox-light", "nord"}})

	m.filter.SetValue("gruv")
	m.applyFilter()
	if len(m.visible) != 2 {
		t.Errorf("got %d visible, want 2", len(m.visible))
	}

	m.filter.SetValue("")
	m.applyFilter()
	if len(m.visible) != 3 {
		t.Errorf("got %d visible after clearing, want 3", len(m.visible))
	}
}

func TestUpdate_PreviewStoresSwatches(t *testing.T) {
	m := newTestModel(listing)
	m, _ = updateModel(t, m, previewMsg{theme: "nord", colors: []string{"#2e3440", "#88c0d0"}})

	if m.previewTheme != "nord" || len(m.previewColors) != 2 {
		t.Errorf("preview not stored: %q %v", m.previewTheme, m.previewColors)
	}

	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.swatchIdx != 1 {
		t.Errorf("swatchIdx = %d, want 1", m.swatchIdx)
	}
}

func TestView_ShowsThemesAndCurrent(t *testing.T) {
	m := newTestModel(listing)
	m, _ = updateModel(t, m, catalogMsg{themes: []string{"gruvbox-dark", "nord"}})
	m.opts.Store.SetCurrent("nord")

	view := m.View()
	if !strings.Contains(view, "gruvbox-dark") || !strings.Contains(view, "nord") {
		t.Error("view missing theme names")
	}
	if !strings.Contains(view, "current") {
		t.Error("view missing current-theme badge")
	}
}

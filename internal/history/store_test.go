package history

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Record("nord", "nord", true, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Record("random", "gruvbox-dark", true, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Record("bogus", "bogus", false, "[E] bad theme"); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Newest first.
	if entries[0].Theme != "bogus" || entries[0].Success {
		t.Errorf("unexpected newest entry: %+v", entries[0])
	}
	if entries[0].Detail != "[E] bad theme" {
		t.Errorf("got detail %q, want diagnostic text", entries[0].Detail)
	}
	if entries[1].Requested != "random" || entries[1].Theme != "gruvbox-dark" {
		t.Errorf("unexpected middle entry: %+v", entries[1])
	}
}

func TestRecent_Limit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		if err := s.Record("nord", "nord", true, ""); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := s.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestLastApplied(t *testing.T) {
	s := openTestStore(t)

	entry, err := s.LastApplied()
	if err != nil {
		t.Fatal(err)
	}
	if entry != nil {
		t.Errorf("empty store should have no last applied, got %+v", entry)
	}

	if err := s.Record("nord", "nord", true, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Record("bogus", "bogus", false, "Error: nope"); err != nil {
		t.Fatal(err)
	}

	entry, err = s.LastApplied()
	if err != nil {
		t.Fatal(err)
	}
	if entry == nil {
		t.Fatal("expected a last applied entry")
	}
	// Failures never become the last applied theme.
	if entry.Theme != "nord" {
		t.Errorf("got %q, want nord", entry.Theme)
	}
}

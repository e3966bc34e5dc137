// Package reload triggers the editor's theme reload once generated
// artifact files are in place.
package reload

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ErrNoCommand indicates no reload command is configured.
var ErrNoCommand = errors.New("no reload command configured")

// Reloader invokes the configured editor reload command after checking
// that every generated theme artifact exists. Artifact contents are
// hashed so a watcher can skip reloads when nothing actually changed.
type Reloader struct {
	artifacts []string
	command   []string
	logger    *slog.Logger

	mu       sync.Mutex
	lastHash map[string]uint64
}

// New creates a Reloader over the given artifact paths. command is the
// editor reload invocation (argv form); it may be empty, in which case
// every reload attempt fails with ErrNoCommand.
func New(artifacts, command []string, logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{
		artifacts: artifacts,
		command:   command,
		logger:    logger,
		lastHash:  make(map[string]uint64),
	}
}

// Run checks artifacts and invokes the reload command unconditionally.
// A missing artifact fails this reload only; it never rolls back the
// theme the generator already applied.
func (r *Reloader) Run() error {
	if _, err := r.checkArtifacts(); err != nil {
		return err
	}
	return r.invoke()
}

// RunIfChanged invokes the reload command only when some artifact's
// content differs from the last time it was hashed.
func (r *Reloader) RunIfChanged() error {
	changed, err := r.checkArtifacts()
	if err != nil {
		return err
	}
	if !changed {
		r.logger.Debug("theme artifacts unchanged, skipping reload")
		return nil
	}
	return r.invoke()
}

// checkArtifacts verifies every artifact exists, updates content hashes
// and reports whether any content changed since the previous check.
func (r *Reloader) checkArtifacts() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	for _, path := range r.artifacts {
		data, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("theme artifact %s: %w", path, err)
		}
		sum := xxhash.Sum64(data)
		if r.lastHash[path] != sum {
			r.lastHash[path] = sum
			changed = true
		}
	}
	return changed, nil
}

func (r *Reloader) invoke() error {
	if len(r.command) == 0 {
		return ErrNoCommand
	}
	cmd := exec.Command(r.command[0], r.command[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("reload command %s: %w: %s", r.command[0], err, string(out))
	}
	r.logger.Debug("editor reload triggered", "command", r.command[0])
	return nil
}

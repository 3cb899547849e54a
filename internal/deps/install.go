// Package deps executes a capability entry's dependency-install
// procedure. The installer only knows which commands to run; the
// commands themselves come from the static capability table.
package deps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joss/devflow/internal/exec"
	"github.com/joss/devflow/internal/profile"
)

// Mode selects the install variant.
type Mode int

const (
	// Incremental reuses the existing package cache and lockfiles.
	Incremental Mode = iota
	// Fresh destroys local dependency artifacts first and installs
	// from scratch.
	Fresh
)

// StepResult records one executed (or skipped) install step.
type StepResult struct {
	Command []string
	Dir     string
	Skipped bool
}

// Installer runs install procedures in a working directory.
type Installer struct {
	runner exec.Runner
	dir    string
}

// NewInstaller creates an installer rooted at dir.
func NewInstaller(runner exec.Runner, dir string) *Installer {
	return &Installer{runner: runner, dir: dir}
}

// MissingTools returns the procedure's required tools that are not on
// PATH, in declaration order.
func (i *Installer) MissingTools(proc profile.InstallProcedure) []string {
	var missing []string
	for _, tool := range proc.Tools {
		if !exec.Available(i.runner, tool) {
			missing = append(missing, tool)
		}
	}
	return missing
}

// Install runs the procedure in the given mode. Steps gated on an
// absent directory or manifest are skipped, not failed. The first
// failing command aborts the install.
func (i *Installer) Install(ctx context.Context, proc profile.InstallProcedure, mode Mode) ([]StepResult, error) {
	steps := proc.Incremental
	if mode == Fresh {
		if err := i.purge(proc.FreshPurge); err != nil {
			return nil, err
		}
		steps = proc.Fresh
	}

	var results []StepResult
	for _, step := range steps {
		res := StepResult{Command: step.Command, Dir: step.Dir}

		runDir := i.dir
		if step.Dir != "" {
			runDir = filepath.Join(i.dir, step.Dir)
			if info, err := os.Stat(runDir); err != nil || !info.IsDir() {
				res.Skipped = true
				results = append(results, res)
				continue
			}
		}
		if step.Manifest != "" {
			if _, err := os.Stat(filepath.Join(runDir, step.Manifest)); err != nil {
				res.Skipped = true
				results = append(results, res)
				continue
			}
		}

		out, err := i.runner.RunInDir(ctx, runDir, step.Command[0], step.Command[1:]...)
		if err != nil {
			return results, fmt.Errorf("%s: %s: %w",
				strings.Join(step.Command, " "), strings.TrimSpace(string(out)), err)
		}
		results = append(results, res)
	}
	return results, nil
}

// purge removes fresh-install targets. Absent paths are fine; the only
// guarded failure is an actual removal error.
func (i *Installer) purge(paths []string) error {
	for _, p := range paths {
		target := filepath.Join(i.dir, p)
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("purge %s: %w", p, err)
		}
	}
	return nil
}

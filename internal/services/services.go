// Package services starts optional background processes (compose
// stacks, cache servers, databases) declared by a profile's capability
// entry. Everything is best-effort: a missing tool skips the directive,
// a started process is abandoned, and nothing here is ever fatal.
package services

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joss/devflow/internal/exec"
	"github.com/joss/devflow/internal/profile"
)

// State classifies what happened to one directive.
type State int

const (
	// Started means the service was launched.
	Started State = iota
	// AlreadyRunning means the running check succeeded, nothing to do.
	AlreadyRunning
	// ToolMissing means the tool is not installed; directive skipped.
	ToolMissing
	// NotApplicable means the directive's marker file is absent.
	NotApplicable
	// StartFailed means the launch command reported an error.
	StartFailed
)

// Result records the outcome for a single directive.
type Result struct {
	Name  string
	State State
	Err   error
}

// Manager evaluates service directives for a working directory.
type Manager struct {
	runner exec.Runner
	dir    string
}

// NewManager creates a service manager rooted at dir.
func NewManager(runner exec.Runner, dir string) *Manager {
	return &Manager{runner: runner, dir: dir}
}

// StartAll applies every directive in order and returns one result per
// directive. It never returns an error: failures are carried in the
// results for the caller to render as warnings.
func (m *Manager) StartAll(ctx context.Context, directives []profile.ServiceDirective) []Result {
	results := make([]Result, 0, len(directives))
	for _, d := range directives {
		results = append(results, m.start(ctx, d))
	}
	return results
}

func (m *Manager) start(ctx context.Context, d profile.ServiceDirective) Result {
	res := Result{Name: d.Name}

	if d.Marker != "" {
		if _, err := os.Stat(filepath.Join(m.dir, d.Marker)); err != nil {
			res.State = NotApplicable
			return res
		}
	}

	if !exec.Available(m.runner, d.Tool) {
		res.State = ToolMissing
		return res
	}

	if len(d.CheckCmd) > 0 {
		if _, err := m.runner.RunInDir(ctx, m.dir, d.CheckCmd[0], d.CheckCmd[1:]...); err == nil {
			res.State = AlreadyRunning
			return res
		}
	}

	var err error
	if d.Detach {
		err = m.runner.StartDetached(ctx, m.dir, d.StartCmd[0], d.StartCmd[1:]...)
	} else {
		_, err = m.runner.RunInDir(ctx, m.dir, d.StartCmd[0], d.StartCmd[1:]...)
	}
	if err != nil {
		res.State = StartFailed
		res.Err = err
		return res
	}

	res.State = Started
	return res
}

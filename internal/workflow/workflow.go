// Package workflow implements the session initializer and finalizer.
// Each command is a fixed sequence of steps; every step owns its own
// recoverability: environment problems are fatal, optional-tool absence
// and sync/PR failures degrade to warnings, and no-op conditions are
// informational.
package workflow

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joss/devflow/internal/config"
	"github.com/joss/devflow/internal/exec"
	"github.com/joss/devflow/internal/gitx"
	"github.com/joss/devflow/internal/render"
	"github.com/joss/devflow/internal/session"
)

// Workflow carries the collaborators shared by both commands.
type Workflow struct {
	Runner   exec.Runner
	Out      *render.Writer
	Dir      string
	Settings *config.Settings
	Version  string

	// LogDir receives the plain-text session logs.
	LogDir string

	// History is the optional sqlite index; nil disables it.
	History *session.History

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

func (w *Workflow) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// git returns the version-control collaborator for the working tree.
func (w *Workflow) git() *gitx.Git {
	return gitx.New(w.Runner, w.Dir)
}

// autoBranch derives a branch name from the configured prefix and the
// current timestamp. Same-second collisions between the initializer and
// the finalizer are accepted.
func (w *Workflow) autoBranch() string {
	return fmt.Sprintf("%s-%s", w.Settings.BranchPrefix, w.now().Format("20060102-150405"))
}

// record writes the session log and, when available, the history index
// entry. Recording failures are warnings: the session itself succeeded.
func (w *Workflow) record(ctx context.Context, command string, sc session.Context, extra map[string]string) {
	path, err := session.WriteLog(w.LogDir, command, sc, extra)
	if err != nil {
		w.Out.Warn("could not write session log: %v", err)
	} else {
		w.Out.Item("session log: %s", path)
	}

	if w.History == nil {
		return
	}
	err = w.History.Add(ctx, session.Record{
		ID:        sc.ID,
		Command:   command,
		Project:   sc.Project,
		Profile:   sc.Profile.String(),
		Branch:    sc.Branch,
		Summary:   sc.Changes.Summary(),
		StartedAt: sc.Timestamp,
	})
	if err != nil {
		w.Out.Warn("could not update session history: %v", err)
	}
}

// dirEntries lists the top-level entries for the handover document,
// directories suffixed with a slash.
func (w *Workflow) dirEntries() []string {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if name == ".git" {
			continue
		}
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names
}

// missingRequiredTools checks git plus the profile's install tools.
func (w *Workflow) missingRequiredTools(installTools []string) []string {
	var missing []string
	for _, tool := range append([]string{"git"}, installTools...) {
		if !exec.Available(w.Runner, tool) {
			missing = append(missing, tool)
		}
	}
	return missing
}

// errMissingTools is the fatal environment error for absent tooling.
func errMissingTools(missing []string) error {
	return fmt.Errorf("required tools missing: %s", strings.Join(missing, ", "))
}

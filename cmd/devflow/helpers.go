package main

import (
	"fmt"
	"os"

	"github.com/joss/devflow/internal/config"
	"github.com/joss/devflow/internal/exec"
	"github.com/joss/devflow/internal/render"
	"github.com/joss/devflow/internal/session"
	"github.com/joss/devflow/internal/workflow"
)

// workDir resolves the directory both commands operate on.
func workDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return dir, nil
}

// newWorkflow assembles a Workflow for dir with real collaborators.
// The history index is optional: a failure to open it degrades to a
// warning and a nil History.
func newWorkflow(dir string) (*workflow.Workflow, func(), error) {
	settings, err := config.Load(dir)
	if err != nil {
		return nil, nil, err
	}

	out := render.Stdout(pretty)
	paths := config.GetPaths()

	var history *session.History
	closeFn := func() {}
	if h, err := session.OpenHistory(paths.Data); err != nil {
		out.Warn("session history unavailable: %v", err)
	} else {
		history = h
		closeFn = func() { _ = h.Close() }
	}

	w := &workflow.Workflow{
		Runner:   exec.NewOSRunner(),
		Out:      out,
		Dir:      dir,
		Settings: settings,
		Version:  version,
		LogDir:   paths.Sessions,
		History:  history,
	}
	return w, closeFn, nil
}

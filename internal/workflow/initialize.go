package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joss/devflow/internal/deps"
	"github.com/joss/devflow/internal/profile"
	"github.com/joss/devflow/internal/services"
	"github.com/joss/devflow/internal/session"
)

// InitOptions are the session initializer's flags.
type InitOptions struct {
	// Branch switches to (or creates) this branch when set.
	Branch string

	// Fresh pulls the remote tracking branch and reinstalls
	// dependencies from scratch.
	Fresh bool

	// CheckOnly runs environment validation and the status probe,
	// skipping branch changes, installs, and services.
	CheckOnly bool

	// SkipDeps skips dependency installation.
	SkipDeps bool

	// SkipServices skips background service startup.
	SkipServices bool
}

// Initialize runs the session initializer. A returned error means a
// fatal environment problem and a non-zero exit.
func (w *Workflow) Initialize(ctx context.Context, opts InitOptions) error {
	git := w.git()

	// Step 1: ensure a repository exists, seeding one when absent.
	if !git.IsRepo(ctx) {
		w.Out.Step("no repository found, creating one")
		if err := w.seedRepo(ctx); err != nil {
			return err
		}
		w.Out.Success("repository initialized")
	}

	// Step 2: classify the project.
	p := profile.Classify(w.Dir)
	entry := profile.Capabilities(p)
	w.Out.Step("detected profile: %s", p)

	// Step 3: required tools are a hard gate.
	if missing := w.missingRequiredTools(entry.Install.Tools); len(missing) > 0 {
		return errMissingTools(missing)
	}
	w.Out.Success("required tools present")

	if !opts.CheckOnly {
		// Step 4: optional branch switch.
		if opts.Branch != "" {
			if err := git.SwitchOrCreate(ctx, opts.Branch); err != nil {
				return fmt.Errorf("switch branch: %w", err)
			}
			w.Out.Success("on branch %s", opts.Branch)
		}

		// Step 5: fresh start pulls the tracking branch. Conflicts
		// are a warning, never a failure.
		if opts.Fresh {
			if out, err := git.Pull(ctx); err != nil {
				w.Out.Warn("pull failed, continuing: %v", err)
			} else if out != "" {
				w.Out.Item("%s", out)
			}
		}

		// Step 6: dependency install.
		if w.skipDeps(opts) {
			w.Out.Item("dependency install skipped")
		} else if err := w.installDeps(ctx, entry, opts.Fresh); err != nil {
			return fmt.Errorf("install dependencies: %w", err)
		}

		// Step 7: background services, fire-and-forget.
		if w.skipServices(opts) {
			w.Out.Item("service startup skipped")
		} else {
			w.startServices(ctx, entry)
		}
	}

	// Step 8: status report.
	sc, err := session.Gather(ctx, git, w.Dir, p)
	if err != nil {
		return err
	}
	sc.Timestamp = w.now()
	w.Out.Line()
	w.printStatus(sc, entry)

	// Step 9: session log.
	w.record(ctx, "start", sc, map[string]string{
		"mode": w.initMode(opts),
	})

	return nil
}

func (w *Workflow) initMode(opts InitOptions) string {
	switch {
	case opts.CheckOnly:
		return "check"
	case opts.Fresh:
		return "fresh"
	default:
		return "normal"
	}
}

func (w *Workflow) skipDeps(opts InitOptions) bool {
	return opts.SkipDeps || opts.CheckOnly || w.Settings.SkipDeps
}

func (w *Workflow) skipServices(opts InitOptions) bool {
	return opts.SkipServices || opts.CheckOnly || w.Settings.SkipServices
}

// seedRepo creates a repository with a minimal marker file and an
// initial commit so later steps always have a HEAD to work with.
func (w *Workflow) seedRepo(ctx context.Context) error {
	git := w.git()
	if err := git.Init(ctx); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	readme := filepath.Join(w.Dir, "README.md")
	if _, err := os.Stat(readme); os.IsNotExist(err) {
		content := fmt.Sprintf("# %s\n", filepath.Base(w.Dir))
		if err := os.WriteFile(readme, []byte(content), 0644); err != nil {
			return fmt.Errorf("seed readme: %w", err)
		}
	}

	if err := git.StageAll(ctx); err != nil {
		return err
	}
	if err := git.Commit(ctx, "Initial commit"); err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	return nil
}

func (w *Workflow) installDeps(ctx context.Context, entry profile.Entry, fresh bool) error {
	if len(entry.Install.Incremental) == 0 {
		w.Out.Item("no dependency install for this profile")
		return nil
	}

	mode := deps.Incremental
	label := "incremental"
	if fresh {
		mode = deps.Fresh
		label = "fresh"
	}
	w.Out.Step("installing dependencies (%s)", label)

	installer := deps.NewInstaller(w.Runner, w.Dir)
	results, err := installer.Install(ctx, entry.Install, mode)
	if err != nil {
		return err
	}
	ran := 0
	for _, r := range results {
		if !r.Skipped {
			ran++
		}
	}
	w.Out.Success("dependencies installed (%d steps)", ran)
	return nil
}

func (w *Workflow) startServices(ctx context.Context, entry profile.Entry) {
	if len(entry.Services) == 0 {
		w.Out.Item("no services required for this profile")
		return
	}

	w.Out.Step("starting background services")
	mgr := services.NewManager(w.Runner, w.Dir)
	for _, res := range mgr.StartAll(ctx, entry.Services) {
		switch res.State {
		case services.Started:
			w.Out.Success("%s started", res.Name)
		case services.AlreadyRunning:
			w.Out.Item("%s already running", res.Name)
		case services.ToolMissing:
			w.Out.Item("%s not installed, skipping", res.Name)
		case services.NotApplicable:
			// no marker file, stay quiet
		case services.StartFailed:
			w.Out.Warn("%s failed to start: %v", res.Name, res.Err)
		}
	}
}

func (w *Workflow) printStatus(sc session.Context, entry profile.Entry) {
	w.Out.Println("project:  %s", sc.Project)
	w.Out.Println("profile:  %s", sc.Profile)
	w.Out.Println("branch:   %s", sc.Branch)
	w.Out.Println("tree:     %s", sc.Changes.Summary())
	w.Out.Line()
	w.Out.Println("next: %s", entry.Guidance)
}

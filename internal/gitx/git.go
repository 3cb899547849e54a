// Package gitx wraps the git CLI behind a narrow interface. Every call
// goes through exec.Runner so workflow logic can be tested without a
// real repository.
package gitx

import (
	"context"
	"fmt"
	"strings"

	"github.com/joss/devflow/internal/exec"
)

// Git performs version-control operations in a single working tree.
type Git struct {
	runner exec.Runner
	dir    string
}

// New creates a Git collaborator for the given directory.
func New(runner exec.Runner, dir string) *Git {
	return &Git{runner: runner, dir: dir}
}

// Dir returns the working tree path.
func (g *Git) Dir() string {
	return g.dir
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	out, err := g.runner.RunInDir(ctx, g.dir, "git", args...)
	if err != nil {
		return strings.TrimSpace(string(out)), fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether the directory is inside a git repository.
func (g *Git) IsRepo(ctx context.Context) bool {
	_, err := g.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// Init creates a new repository.
func (g *Git) Init(ctx context.Context) error {
	_, err := g.run(ctx, "init")
	return err
}

// CurrentBranch returns the checked-out branch name.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// BranchExists reports whether a local branch exists.
func (g *Git) BranchExists(ctx context.Context, name string) bool {
	_, err := g.run(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// SwitchOrCreate switches to the branch, creating it from the current
// branch when it does not exist yet.
func (g *Git) SwitchOrCreate(ctx context.Context, name string) error {
	if g.BranchExists(ctx, name) {
		_, err := g.run(ctx, "checkout", name)
		return err
	}
	_, err := g.run(ctx, "checkout", "-b", name)
	return err
}

// Pull synchronizes with the remote tracking branch. The combined
// output is returned so conflicts can be surfaced as warnings.
func (g *Git) Pull(ctx context.Context) (string, error) {
	return g.run(ctx, "pull")
}

// Push pushes a branch and sets its upstream.
func (g *Git) Push(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "push", "-u", "origin", branch)
	return err
}

// StageAll stages every change in the working tree.
func (g *Git) StageAll(ctx context.Context) error {
	_, err := g.run(ctx, "add", "-A")
	return err
}

// HasStaged reports whether anything is staged for commit.
func (g *Git) HasStaged(ctx context.Context) bool {
	// diff --cached --quiet exits non-zero when the index differs
	// from HEAD. In a repo without commits, treat staged paths in
	// status output as the signal instead.
	if _, err := g.run(ctx, "diff", "--cached", "--quiet"); err != nil {
		return true
	}
	return false
}

// Commit records the staged changes with the given message.
func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

// RemoteURL returns the origin URL, or "" when no remote is configured.
func (g *Git) RemoteURL(ctx context.Context) string {
	url, err := g.run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return ""
	}
	return url
}

// Identity returns the configured user name and email. Missing values
// come back empty, never as errors.
func (g *Git) Identity(ctx context.Context) (name, email string) {
	name, _ = g.run(ctx, "config", "user.name")
	email, _ = g.run(ctx, "config", "user.email")
	return name, email
}

// LastCommit returns the most recent commit as a one-line summary.
func (g *Git) LastCommit(ctx context.Context) string {
	line, err := g.run(ctx, "log", "-1", "--oneline")
	if err != nil {
		return ""
	}
	return line
}

// HeadHash returns the abbreviated hash of HEAD.
func (g *Git) HeadHash(ctx context.Context) string {
	hash, err := g.run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return ""
	}
	return hash
}

// StatusRaw returns the short-format status block.
func (g *Git) StatusRaw(ctx context.Context) string {
	out, err := g.run(ctx, "status", "--short")
	if err != nil {
		return ""
	}
	return out
}

// Package hosting wraps the PR-hosting CLI (gh). The workflow never
// depends on gh's invocation syntax directly; it consumes a tri-state
// result: created, tool unavailable, or failed.
package hosting

import (
	"context"
	"fmt"
	"strings"

	"github.com/joss/devflow/internal/exec"
)

// Outcome classifies the result of a PR attempt.
type Outcome int

const (
	// Created means the PR exists and URL is set.
	Created Outcome = iota
	// ToolMissing means the gh CLI is not installed; the step was
	// skipped, not failed.
	ToolMissing
	// Failed means gh ran and reported an error.
	Failed
)

// Result holds the outcome of a pull-request creation attempt.
type Result struct {
	Outcome Outcome
	URL     string
	Title   string
	Err     error
}

// Client creates pull requests through the gh CLI.
type Client struct {
	runner exec.Runner
	dir    string
}

// NewClient creates a hosting client for the given repository path.
func NewClient(runner exec.Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

// Available reports whether the gh CLI is installed.
func (c *Client) Available() bool {
	return exec.Available(c.runner, "gh")
}

// Create opens a pull request with the given title, body, and labels.
// A missing gh CLI degrades to ToolMissing; gh errors degrade to
// Failed. Neither is fatal to the caller.
func (c *Client) Create(ctx context.Context, title, body string, labels []string) Result {
	if !c.Available() {
		return Result{Outcome: ToolMissing, Title: title}
	}

	args := []string{"pr", "create", "--title", title, "--body", body}
	for _, label := range labels {
		args = append(args, "--label", label)
	}

	out, err := c.runner.RunInDir(ctx, c.dir, "gh", args...)
	if err != nil {
		return Result{
			Outcome: Failed,
			Title:   title,
			Err:     fmt.Errorf("gh pr create: %s: %w", strings.TrimSpace(string(out)), err),
		}
	}

	// gh prints the PR URL as the last line of its output.
	url := ""
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http") {
			url = line
		}
	}

	return Result{Outcome: Created, URL: url, Title: title}
}

package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joss/devflow/internal/cleanup"
	"github.com/joss/devflow/internal/handover"
	"github.com/joss/devflow/internal/hosting"
	"github.com/joss/devflow/internal/profile"
	"github.com/joss/devflow/internal/render"
	"github.com/joss/devflow/internal/session"
	"github.com/joss/devflow/internal/todo"
)

// FinishOptions are the session finalizer's flags.
type FinishOptions struct {
	// Branch is the branch to push the session to when leaving
	// main/master; auto-generated when empty.
	Branch string

	// PRTitle overrides the auto-generated pull-request title.
	PRTitle string

	// SkipPR disables pull-request creation.
	SkipPR bool

	// SkipCleanup disables the cleanup sweep.
	SkipCleanup bool

	// DryRun reports what would happen without deleting, committing,
	// or opening a PR.
	DryRun bool
}

// Finalize runs the session finalizer. Cleanup, documentation, and
// commit always complete before the PR attempt; a failed PR is reported
// but never fails the run.
func (w *Workflow) Finalize(ctx context.Context, opts FinishOptions) error {
	git := w.git()

	// Step 1: a repository is required, no seeding here.
	if !git.IsRepo(ctx) {
		return fmt.Errorf("not a git repository: %s", w.Dir)
	}

	// Step 2: classify and gather the session context.
	p := profile.Classify(w.Dir)
	entry := profile.Capabilities(p)
	w.Out.Step("detected profile: %s", p)

	sc, err := session.Gather(ctx, git, w.Dir, p)
	if err != nil {
		return err
	}
	sc.Timestamp = w.now()

	// Step 3: cleanup sweep.
	if w.skipCleanup(opts) {
		w.Out.Item("cleanup skipped")
	} else if opts.DryRun {
		w.Out.Item("dry-run: would clean %d profile globs plus universal targets", len(entry.Cleanup))
	} else {
		globs := append(append([]string{}, entry.Cleanup...), w.Settings.CleanupGlobs...)
		res := cleanup.Run(w.Dir, globs)
		for _, cerr := range res.Errors {
			w.Out.Warn("cleanup: %v", cerr)
		}
		w.Out.Success("cleanup removed %d targets", len(res.Removed))
	}

	// Step 4: readme freshness stamp.
	if !opts.DryRun {
		if updated, err := stampReadme(w.Dir, sc.Timestamp.Format("2006-01-02 15:04:05")); err != nil {
			w.Out.Warn("readme update failed: %v", err)
		} else if updated {
			w.Out.Success("readme timestamp updated")
		}
	}

	// Step 5: re-analyze the change set after cleanup touched the tree.
	if changes, err := git.Status(ctx); err == nil {
		sc.Changes = changes
	}
	w.Out.Item("changes: %s", sc.Changes.Summary())

	// Step 6: handover document, written before the commit so it is
	// part of it.
	todos := todo.NewScanner(w.Settings.TodoPerToken, w.Settings.TodoTotal).Scan(w.Dir)
	handoverPath := filepath.Join(w.Dir, w.Settings.HandoverFile)
	doc := w.buildHandover(ctx, sc, todos, nil)
	if opts.DryRun {
		w.Out.Item("dry-run: would write %s", w.Settings.HandoverFile)
	} else if err := doc.WriteFile(handoverPath); err != nil {
		return fmt.Errorf("write handover: %w", err)
	} else {
		w.Out.Success("handover written: %s", w.Settings.HandoverFile)
	}

	// Step 7: commit everything; nothing staged is a no-op, not a
	// failure.
	committed := false
	if opts.DryRun {
		w.Out.Item("dry-run: would commit %d files", sc.Changes.Total())
	} else {
		committed, err = w.commitSession(ctx, sc)
		if err != nil {
			return err
		}
	}

	// Step 8: pull request, best effort.
	var pr *hosting.Result
	if w.skipPR(opts) {
		w.Out.Item("pull request skipped")
	} else if opts.DryRun {
		w.Out.Item("dry-run: would open a pull request")
	} else {
		pr = w.openPR(ctx, &sc, opts, handoverPath, todos)
	}

	// Step 9: regenerate the handover so it carries the final commit
	// hash and PR URL.
	if !opts.DryRun {
		doc = w.buildHandover(ctx, sc, todos, pr)
		if err := doc.WriteFile(handoverPath); err != nil {
			w.Out.Warn("handover refresh failed: %v", err)
		}
	}

	// Step 10: final summary.
	fields := []render.Field{
		{Key: "project", Value: sc.Project},
		{Key: "profile", Value: sc.Profile.String()},
		{Key: "branch", Value: sc.Branch},
		{Key: "developer", Value: sc.Developer},
		{Key: "handover", Value: w.Settings.HandoverFile},
	}
	if pr != nil && pr.Outcome == hosting.Created {
		fields = append(fields, render.Field{Key: "pr", Value: pr.URL})
	}
	w.Out.Line()
	w.Out.SummaryPanel("Session finalized", fields)

	// Step 11: session log.
	extra := map[string]string{"committed": fmt.Sprintf("%v", committed)}
	if pr != nil && pr.URL != "" {
		extra["pr"] = pr.URL
	}
	w.record(ctx, "finish", sc, extra)

	return nil
}

func (w *Workflow) skipCleanup(opts FinishOptions) bool {
	return opts.SkipCleanup || w.Settings.SkipCleanup
}

func (w *Workflow) skipPR(opts FinishOptions) bool {
	return opts.SkipPR || w.Settings.SkipPR
}

func (w *Workflow) buildHandover(ctx context.Context, sc session.Context, todos []todo.Entry, pr *hosting.Result) *handover.Document {
	git := w.git()
	return handover.Build(handover.Input{
		Session:     sc,
		RawStatus:   git.StatusRaw(ctx),
		LastCommit:  git.LastCommit(ctx),
		CommitHash:  git.HeadHash(ctx),
		PR:          pr,
		Todos:       todos,
		DirEntries:  w.dirEntries(),
		ToolVersion: w.Version,
	})
}

// commitSession stages everything and commits with the generated
// message. Returns whether a commit was made.
func (w *Workflow) commitSession(ctx context.Context, sc session.Context) (bool, error) {
	git := w.git()
	if err := git.StageAll(ctx); err != nil {
		return false, err
	}
	if !git.HasStaged(ctx) {
		w.Out.Item("nothing to commit")
		return false, nil
	}
	if err := git.Commit(ctx, commitMessage(sc)); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	w.Out.Success("session committed")
	return true, nil
}

// commitMessage composes the multi-line commit message embedding the
// timestamp, change summary, file list, profile, and branch.
func commitMessage(sc session.Context) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session checkpoint: %s\n\n", sc.Changes.Summary())
	fmt.Fprintf(&sb, "Timestamp: %s\n", sc.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Profile: %s\n", sc.Profile)
	fmt.Fprintf(&sb, "Branch: %s\n", sc.Branch)
	if len(sc.Changes.Files) > 0 {
		sb.WriteString("Files:\n")
		for _, f := range sc.Changes.Files {
			fmt.Fprintf(&sb, "  - %s\n", f)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// openPR pushes the session branch and opens the pull request. Every
// failure path is a warning; the commit is already safe.
func (w *Workflow) openPR(ctx context.Context, sc *session.Context, opts FinishOptions, handoverPath string, todos []todo.Entry) *hosting.Result {
	git := w.git()
	client := hosting.NewClient(w.Runner, w.Dir)

	if !client.Available() {
		w.Out.Warn("gh CLI not installed, skipping pull request")
		return &hosting.Result{Outcome: hosting.ToolMissing}
	}

	// Leaving main/master: move the session to its own branch first.
	if sc.Branch == "main" || sc.Branch == "master" {
		branch := opts.Branch
		if branch == "" {
			branch = w.autoBranch()
		}
		if err := git.SwitchOrCreate(ctx, branch); err != nil {
			w.Out.Warn("could not create session branch: %v", err)
			return &hosting.Result{Outcome: hosting.Failed, Err: err}
		}
		sc.Branch = branch
	}

	if err := git.Push(ctx, sc.Branch); err != nil {
		w.Out.Warn("push failed, skipping pull request: %v", err)
		return &hosting.Result{Outcome: hosting.Failed, Err: err}
	}

	title := opts.PRTitle
	if title == "" {
		title = fmt.Sprintf("Session handover %s", sc.Timestamp.Format("2006-01-02 15:04"))
	}

	res := client.Create(ctx, title, prBody(*sc, git.StatusRaw(ctx), w.Settings.HandoverFile, todos), w.Settings.PRLabels)
	switch res.Outcome {
	case hosting.Created:
		w.Out.Success("pull request created: %s", res.URL)
	case hosting.Failed:
		w.Out.Warn("pull request failed: %v", res.Err)
	}
	return &res
}

// prBody composes the rich PR description.
func prBody(sc session.Context, rawStatus, handoverFile string, todos []todo.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Session summary\n\n%s on `%s` (%s profile).\n\n", sc.Changes.Summary(), sc.Branch, sc.Profile)

	if len(sc.Changes.Files) > 0 {
		sb.WriteString("## Changed files\n\n")
		for _, f := range sc.Changes.Files {
			fmt.Fprintf(&sb, "- `%s`\n", f)
		}
		sb.WriteString("\n")
	}

	if strings.TrimSpace(rawStatus) != "" {
		fmt.Fprintf(&sb, "## Status excerpt\n\n```\n%s\n```\n\n", strings.TrimSpace(rawStatus))
	}

	if len(todos) > 0 {
		fmt.Fprintf(&sb, "%d outstanding markers are listed in the handover.\n\n", len(todos))
	}

	fmt.Fprintf(&sb, "See `%s` for the full handover.\n", handoverFile)
	return sb.String()
}

// lastUpdated matches an existing freshness line in the readme.
var lastUpdated = regexp.MustCompile(`(?m)^\*?_?Last updated:.*$`)

// stampReadme rewrites or appends the "Last updated" line in the
// top-level readme. A missing readme is a no-op.
func stampReadme(dir, timestamp string) (bool, error) {
	path := filepath.Join(dir, "README.md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	line := fmt.Sprintf("*Last updated: %s*", timestamp)
	content := string(data)
	if lastUpdated.MatchString(content) {
		content = lastUpdated.ReplaceAllString(content, line)
	} else {
		content = strings.TrimRight(content, "\n") + "\n\n" + line + "\n"
	}
	return true, os.WriteFile(path, []byte(content), 0644)
}

// Package handover generates the end-of-session markdown document. The
// document is modeled as an ordered list of named sections, each
// rendered independently from the session context, keeping the document
// model separate from formatting.
package handover

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joss/devflow/internal/hosting"
	"github.com/joss/devflow/internal/session"
	"github.com/joss/devflow/internal/todo"
)

// Input carries everything the document renders.
type Input struct {
	Session     session.Context
	RawStatus   string
	LastCommit  string
	CommitHash  string
	PR          *hosting.Result
	Todos       []todo.Entry
	DirEntries  []string
	ToolVersion string
}

// Section is one named block of the document.
type Section struct {
	Title string
	Body  string
}

// Document is the ordered section list.
type Document struct {
	Title    string
	Sections []Section
}

// Render produces the markdown text.
func (d *Document) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", d.Title)
	for _, s := range d.Sections {
		sb.WriteString("\n")
		if s.Title != "" {
			fmt.Fprintf(&sb, "## %s\n\n", s.Title)
		}
		sb.WriteString(strings.TrimRight(s.Body, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteFile renders the document to path.
func (d *Document) WriteFile(path string) error {
	return os.WriteFile(path, []byte(d.Render()), 0644)
}

// Build assembles the document in its fixed section order.
func Build(in Input) *Document {
	sc := in.Session
	doc := &Document{Title: fmt.Sprintf("Session Handover: %s", sc.Project)}

	add := func(title, body string) {
		doc.Sections = append(doc.Sections, Section{Title: title, Body: body})
	}

	add("", metadata(sc))
	add("Session Summary", sc.Changes.Summary())
	add("Changed Files", changedFiles(sc))
	add("Repository Status", codeBlock(in.RawStatus))
	add("Pull Request", prBlock(in.PR))
	add("Outstanding Work", todoBlock(in.Todos))
	add("Architecture", architecture(sc))
	add("Directory Layout", dirListing(in.DirEntries))
	add("Setup", setup(sc))
	add("Next Steps", checklist(sc))
	add("Statistics", statistics(in))
	add("", footer(in.ToolVersion))

	return doc
}

func metadata(sc session.Context) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- **Project**: %s\n", sc.Project)
	fmt.Fprintf(&sb, "- **Date**: %s\n", sc.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- **Developer**: %s\n", sc.Developer)
	fmt.Fprintf(&sb, "- **Branch**: %s\n", sc.Branch)
	fmt.Fprintf(&sb, "- **Profile**: %s\n", sc.Profile)
	fmt.Fprintf(&sb, "- **Version**: %s\n", sc.Version)
	return sb.String()
}

func changedFiles(sc session.Context) string {
	if len(sc.Changes.Files) == 0 {
		return "No files changed this session."
	}
	var sb strings.Builder
	for _, f := range sc.Changes.Files {
		fmt.Fprintf(&sb, "- `%s`\n", f)
	}
	return sb.String()
}

func codeBlock(content string) string {
	if strings.TrimSpace(content) == "" {
		content = "(clean)"
	}
	return "```\n" + strings.TrimRight(content, "\n") + "\n```\n"
}

func prBlock(pr *hosting.Result) string {
	if pr == nil || pr.Outcome != hosting.Created {
		return "No pull request was created this session."
	}
	return fmt.Sprintf("- **URL**: %s\n- **Title**: %s\n", pr.URL, pr.Title)
}

func todoBlock(entries []todo.Entry) string {
	if len(entries) == 0 {
		return "No outstanding markers found. Nice and clean."
	}
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "- `%s`\n", e.String())
	}
	return sb.String()
}

func dirListing(entries []string) string {
	if len(entries) == 0 {
		return "(empty)"
	}
	sorted := append([]string(nil), entries...)
	sort.Strings(sorted)
	var sb strings.Builder
	sb.WriteString("```\n")
	for _, e := range sorted {
		sb.WriteString(e + "\n")
	}
	sb.WriteString("```\n")
	return sb.String()
}

func checklist(sc session.Context) string {
	items := []string{
		"Review the changed files above",
		"Confirm tests pass locally",
	}
	if sc.Changes.Untracked > 0 {
		items = append(items, "Decide whether untracked files belong in the repository")
	}
	items = append(items, "Address outstanding markers before the next release")
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "- [ ] %s\n", item)
	}
	return sb.String()
}

func statistics(in Input) string {
	sc := in.Session
	var sb strings.Builder
	fmt.Fprintf(&sb, "- **Remote**: %s\n", orDash(sc.RemoteURL))
	fmt.Fprintf(&sb, "- **Last commit**: %s\n", orDash(in.LastCommit))
	fmt.Fprintf(&sb, "- **Commit hash**: %s\n", orDash(in.CommitHash))
	fmt.Fprintf(&sb, "- **Branch**: %s\n", orDash(sc.Branch))
	fmt.Fprintf(&sb, "- **Files changed**: %d\n", sc.Changes.Total())
	return sb.String()
}

func footer(version string) string {
	return fmt.Sprintf("---\n\n*Generated automatically by devflow v%s.*", version)
}

func orDash(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

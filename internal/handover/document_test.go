package handover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/devflow/internal/gitx"
	"github.com/joss/devflow/internal/hosting"
	"github.com/joss/devflow/internal/profile"
	"github.com/joss/devflow/internal/session"
	"github.com/joss/devflow/internal/todo"
)

func sampleInput() Input {
	return Input{
		Session: session.Context{
			ID:        "id-1",
			Project:   "demo",
			Profile:   profile.NextJS,
			Branch:    "session-20260829",
			Developer: "Jo Dev <jo@example.com>",
			Version:   "1.4.0",
			RemoteURL: "git@github.com:joss/demo.git",
			Timestamp: time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC),
			Changes: gitx.Changes{
				Staged: 2, Untracked: 1,
				Files: []string{"pages/index.tsx", "lib/api.ts", "notes.md"},
			},
		},
		RawStatus:  "M  pages/index.tsx\n?? notes.md",
		LastCommit: "ab12cd3 checkpoint",
		CommitHash: "ab12cd3",
		PR: &hosting.Result{
			Outcome: hosting.Created,
			URL:     "https://github.com/joss/demo/pull/42",
			Title:   "Session handover",
		},
		Todos: []todo.Entry{
			{File: "lib/api.ts", Line: 7, Token: "TODO", Text: "// TODO retry on 429"},
		},
		DirEntries:  []string{"pages/", "lib/", "package.json"},
		ToolVersion: "0.1.0",
	}
}

func TestBuildSectionOrder(t *testing.T) {
	doc := Build(sampleInput())

	var titles []string
	for _, s := range doc.Sections {
		if s.Title != "" {
			titles = append(titles, s.Title)
		}
	}

	assert.Equal(t, []string{
		"Session Summary",
		"Changed Files",
		"Repository Status",
		"Pull Request",
		"Outstanding Work",
		"Architecture",
		"Directory Layout",
		"Setup",
		"Next Steps",
		"Statistics",
	}, titles)
}

func TestRenderContainsAllFields(t *testing.T) {
	out := Build(sampleInput()).Render()

	assert.Contains(t, out, "# Session Handover: demo")
	assert.Contains(t, out, "**Project**: demo")
	assert.Contains(t, out, "**Developer**: Jo Dev <jo@example.com>")
	assert.Contains(t, out, "**Profile**: nextjs")
	assert.Contains(t, out, "**Version**: 1.4.0")
	assert.Contains(t, out, "2 staged, 0 unstaged, 1 untracked")
	assert.Contains(t, out, "`pages/index.tsx`")
	assert.Contains(t, out, "https://github.com/joss/demo/pull/42")
	assert.Contains(t, out, "lib/api.ts:7: // TODO retry on 429")
	assert.Contains(t, out, "localhost:3000")
	assert.Contains(t, out, "**Files changed**: 3")
	assert.Contains(t, out, "Generated automatically by devflow v0.1.0")
}

func TestRenderWithoutPR(t *testing.T) {
	in := sampleInput()
	in.PR = &hosting.Result{Outcome: hosting.ToolMissing}

	out := Build(in).Render()
	assert.Contains(t, out, "No pull request was created this session.")

	in.PR = nil
	out = Build(in).Render()
	assert.Contains(t, out, "No pull request was created this session.")
}

func TestRenderCleanSession(t *testing.T) {
	in := sampleInput()
	in.Session.Changes = gitx.Changes{}
	in.Todos = nil
	in.RawStatus = ""

	out := Build(in).Render()
	assert.Contains(t, out, "working tree clean")
	assert.Contains(t, out, "No files changed this session.")
	assert.Contains(t, out, "No outstanding markers found. Nice and clean.")
	assert.Contains(t, out, "(clean)")
}

func TestSetupAgreesWithCapabilityTable(t *testing.T) {
	in := sampleInput()
	in.Session.Profile = profile.Rust
	out := Build(in).Render()
	assert.Contains(t, out, "cargo fetch")

	in.Session.Profile = profile.Generic
	out = Build(in).Render()
	assert.Contains(t, out, "No ecosystem-specific install step.")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HANDOVER.md")
	require.NoError(t, Build(sampleInput()).WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Session Handover: demo"))
}

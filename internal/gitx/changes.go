package gitx

import (
	"context"
	"fmt"
	"strings"
)

// Changes summarizes the working tree state from porcelain status.
type Changes struct {
	Staged    int
	Unstaged  int
	Untracked int
	Files     []string
}

// Clean reports whether the working tree has no changes at all.
func (c Changes) Clean() bool {
	return c.Staged == 0 && c.Unstaged == 0 && c.Untracked == 0
}

// Total returns the number of changed paths.
func (c Changes) Total() int {
	return len(c.Files)
}

// Summary composes the one-line change summary used in commit messages
// and the handover document.
func (c Changes) Summary() string {
	if c.Clean() {
		return "working tree clean"
	}
	return fmt.Sprintf("%d staged, %d unstaged, %d untracked", c.Staged, c.Unstaged, c.Untracked)
}

// Status parses `git status --porcelain` into change counts and the
// list of affected paths.
func (g *Git) Status(ctx context.Context) (Changes, error) {
	out, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return Changes{}, err
	}
	return parsePorcelain(out), nil
}

func parsePorcelain(out string) Changes {
	var c Changes
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 3 {
			continue
		}
		index, tree := line[0], line[1]
		path := strings.TrimSpace(line[2:])
		// Renames are shown as "old -> new"; keep the new path.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		c.Files = append(c.Files, path)

		switch {
		case index == '?' && tree == '?':
			c.Untracked++
		default:
			if index != ' ' {
				c.Staged++
			}
			if tree != ' ' {
				c.Unstaged++
			}
		}
	}
	return c
}

// Package session assembles the per-invocation session context and
// records each run: a plain-text audit log plus a sqlite history index.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joss/devflow/internal/gitx"
	"github.com/joss/devflow/internal/profile"
)

// Context is the transient record created once per invocation and
// passed by value into every component that needs it. It is never
// persisted except as text in generated documentation and the log.
type Context struct {
	ID        string
	Project   string
	Profile   profile.Profile
	Branch    string
	Timestamp time.Time
	RemoteURL string
	Developer string
	Version   string
	Changes   gitx.Changes
}

// Gather builds the session context for a working directory. Queries
// that can fail (remote URL, identity, version) degrade to empty
// values; only the status probe error is surfaced.
func Gather(ctx context.Context, git *gitx.Git, dir string, p profile.Profile) (Context, error) {
	sc := Context{
		ID:        uuid.New().String(),
		Project:   filepath.Base(dir),
		Profile:   p,
		Timestamp: time.Now(),
		RemoteURL: git.RemoteURL(ctx),
		Version:   ManifestVersion(dir),
	}

	if branch, err := git.CurrentBranch(ctx); err == nil {
		sc.Branch = branch
	}

	name, email := git.Identity(ctx)
	sc.Developer = formatDeveloper(name, email)

	changes, err := git.Status(ctx)
	if err != nil {
		return sc, fmt.Errorf("probe working tree: %w", err)
	}
	sc.Changes = changes

	return sc, nil
}

func formatDeveloper(name, email string) string {
	switch {
	case name != "" && email != "":
		return fmt.Sprintf("%s <%s>", name, email)
	case name != "":
		return name
	case email != "":
		return email
	default:
		return "unknown"
	}
}

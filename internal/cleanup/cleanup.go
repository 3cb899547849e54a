// Package cleanup deletes profile-specific build output and a
// universal set of temporary files. Deletion is idempotent and
// non-fatal: absent targets are fine, and a failed removal is reported
// without stopping the sweep.
package cleanup

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// UniversalGlobs are removed for every profile: OS metadata and generic
// log/temp artifacts.
var UniversalGlobs = []string{
	"**/.DS_Store",
	"**/Thumbs.db",
	"*.log",
	"*.tmp",
	"*~",
}

// Result summarizes one cleanup sweep.
type Result struct {
	Removed []string
	Errors  []error
}

// Run deletes everything matching the given globs plus the universal
// set, all relative to root. The .git directory is never entered.
func Run(root string, globs []string) Result {
	all := make([]string, 0, len(globs)+len(UniversalGlobs))
	all = append(all, globs...)
	all = append(all, UniversalGlobs...)

	matches := map[string]struct{}{}
	fsys := os.DirFS(root)
	for _, pattern := range all {
		_ = doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
			if insideGit(path) {
				return nil
			}
			matches[path] = struct{}{}
			return nil
		})
	}

	// Delete deepest paths first so directory matches don't invalidate
	// their children mid-sweep.
	ordered := make([]string, 0, len(matches))
	for m := range matches {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	var res Result
	for _, rel := range ordered {
		if rel == "." || rel == "" {
			continue
		}
		target := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Lstat(target); err != nil {
			continue // already gone via a parent match
		}
		if err := os.RemoveAll(target); err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		res.Removed = append(res.Removed, rel)
	}
	return res
}

func insideGit(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteLog writes the plain-text audit record for one invocation to a
// timestamp-suffixed file in dir and returns the file path. The format
// is key: value lines, an audit trail only, not meant for parsing.
func WriteLog(dir, command string, sc Context, extra map[string]string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create session log dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.log", command, sc.Timestamp.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	var sb strings.Builder
	writeKV := func(k, v string) {
		fmt.Fprintf(&sb, "%s: %s\n", k, v)
	}
	writeKV("session", sc.ID)
	writeKV("command", command)
	writeKV("timestamp", sc.Timestamp.Format("2006-01-02 15:04:05"))
	writeKV("project", sc.Project)
	writeKV("profile", sc.Profile.String())
	writeKV("branch", sc.Branch)
	writeKV("developer", sc.Developer)
	writeKV("remote", sc.RemoteURL)
	writeKV("changes", sc.Changes.Summary())

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeKV(k, extra[k])
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("write session log: %w", err)
	}
	return path, nil
}

// Package config provides centralized configuration management.
// Environment variables override built-in defaults; a project-local
// .devflow.yaml file can override both.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DevflowEnv holds all devflow environment variables.
type DevflowEnv struct {
	// BranchPrefix is the prefix for auto-generated branch names (DEVFLOW_BRANCH_PREFIX)
	BranchPrefix string

	// PRLabels are the default labels applied to created PRs (DEVFLOW_PR_LABELS, comma-separated)
	PRLabels []string

	// HandoverFile is the handover document filename (DEVFLOW_HANDOVER_FILE)
	HandoverFile string

	// SkipDeps force-skips dependency installation (DEVFLOW_SKIP_DEPS)
	SkipDeps bool

	// SkipServices force-skips service startup (DEVFLOW_SKIP_SERVICES)
	SkipServices bool

	// SkipCleanup force-skips cleanup (DEVFLOW_SKIP_CLEANUP)
	SkipCleanup bool

	// SkipPR force-skips pull-request creation (DEVFLOW_SKIP_PR)
	SkipPR bool
}

var (
	env     *DevflowEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *DevflowEnv {
	envOnce.Do(func() {
		env = &DevflowEnv{
			BranchPrefix: getEnvDefault("DEVFLOW_BRANCH_PREFIX", "session"),
			PRLabels:     splitList(os.Getenv("DEVFLOW_PR_LABELS")),
			HandoverFile: getEnvDefault("DEVFLOW_HANDOVER_FILE", "HANDOVER.md"),
			SkipDeps:     boolEnv("DEVFLOW_SKIP_DEPS"),
			SkipServices: boolEnv("DEVFLOW_SKIP_SERVICES"),
			SkipCleanup:  boolEnv("DEVFLOW_SKIP_CLEANUP"),
			SkipPR:       boolEnv("DEVFLOW_SKIP_PR"),
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string) bool {
	v := os.Getenv(key)
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Paths holds standard devflow directory paths.
type Paths struct {
	// Home is the devflow home directory (~/.devflow)
	Home string

	// Sessions is the session log directory (~/.devflow/sessions)
	Sessions string

	// Data is the data directory for the history index (~/.devflow/data)
	Data string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		root := filepath.Join(home, ".devflow")
		paths = &Paths{
			Home:     root,
			Sessions: filepath.Join(root, "sessions"),
			Data:     filepath.Join(root, "data"),
		}
	})
	return paths
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv(t *testing.T) {
	ResetEnv()

	os.Setenv("DEVFLOW_BRANCH_PREFIX", "work")
	os.Setenv("DEVFLOW_PR_LABELS", "session, handover")
	os.Setenv("DEVFLOW_SKIP_PR", "1")
	os.Setenv("DEVFLOW_SKIP_DEPS", "true")
	defer func() {
		os.Unsetenv("DEVFLOW_BRANCH_PREFIX")
		os.Unsetenv("DEVFLOW_PR_LABELS")
		os.Unsetenv("DEVFLOW_SKIP_PR")
		os.Unsetenv("DEVFLOW_SKIP_DEPS")
		ResetEnv()
	}()

	env := Env()

	assert.Equal(t, "work", env.BranchPrefix)
	assert.Equal(t, []string{"session", "handover"}, env.PRLabels)
	assert.True(t, env.SkipPR)
	assert.True(t, env.SkipDeps)
	assert.False(t, env.SkipCleanup)
}

func TestEnvDefaults(t *testing.T) {
	ResetEnv()
	os.Unsetenv("DEVFLOW_BRANCH_PREFIX")
	os.Unsetenv("DEVFLOW_HANDOVER_FILE")
	defer ResetEnv()

	env := Env()

	assert.Equal(t, "session", env.BranchPrefix)
	assert.Equal(t, "HANDOVER.md", env.HandoverFile)
	assert.Nil(t, env.PRLabels)
}

func TestEnvSingleton(t *testing.T) {
	ResetEnv()
	defer ResetEnv()

	assert.Same(t, Env(), Env())
}

func TestLoadFileMissing(t *testing.T) {
	fc, err := LoadFile(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, fc)
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("branch_prefix: [oops"), 0644))

	_, err := LoadFile(dir)
	assert.Error(t, err)
}

func TestLoadMergesFileOverEnv(t *testing.T) {
	ResetEnv()
	os.Setenv("DEVFLOW_BRANCH_PREFIX", "env-prefix")
	os.Setenv("DEVFLOW_SKIP_CLEANUP", "1")
	defer func() {
		os.Unsetenv("DEVFLOW_BRANCH_PREFIX")
		os.Unsetenv("DEVFLOW_SKIP_CLEANUP")
		ResetEnv()
	}()

	dir := t.TempDir()
	content := `
branch_prefix: file-prefix
pr_labels:
  - review
cleanup_globs:
  - "tmp/**"
todo_per_token: 5
todo_total: 12
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "file-prefix", s.BranchPrefix)
	assert.Equal(t, "HANDOVER.md", s.HandoverFile)
	assert.Equal(t, []string{"review"}, s.PRLabels)
	assert.Equal(t, []string{"tmp/**"}, s.CleanupGlobs)
	assert.Equal(t, 5, s.TodoPerToken)
	assert.Equal(t, 12, s.TodoTotal)
	assert.True(t, s.SkipCleanup)
	assert.False(t, s.SkipPR)
}

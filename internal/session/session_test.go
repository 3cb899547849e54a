package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/devflow/internal/exec"
	"github.com/joss/devflow/internal/gitx"
	"github.com/joss/devflow/internal/profile"
)

func TestGather(t *testing.T) {
	m := exec.NewMockRunner()
	m.AddResponse("git rev-parse --abbrev-ref HEAD", exec.MockResponse{Output: []byte("feature/login\n")})
	m.AddResponse("git remote", exec.MockResponse{Output: []byte("git@github.com:joss/demo.git\n")})
	m.AddResponse("git config user.name", exec.MockResponse{Output: []byte("Jo Dev\n")})
	m.AddResponse("git config user.email", exec.MockResponse{Output: []byte("jo@example.com\n")})
	m.AddResponse("git status --porcelain", exec.MockResponse{Output: []byte("M  a.go\n?? b.go\n")})

	dir := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, os.MkdirAll(dir, 0755))

	sc, err := Gather(context.Background(), gitx.New(m, dir), dir, profile.Go)
	require.NoError(t, err)

	assert.NotEmpty(t, sc.ID)
	assert.Equal(t, "demo", sc.Project)
	assert.Equal(t, profile.Go, sc.Profile)
	assert.Equal(t, "feature/login", sc.Branch)
	assert.Equal(t, "git@github.com:joss/demo.git", sc.RemoteURL)
	assert.Equal(t, "Jo Dev <jo@example.com>", sc.Developer)
	assert.Equal(t, 1, sc.Changes.Staged)
	assert.Equal(t, 1, sc.Changes.Untracked)
	assert.WithinDuration(t, time.Now(), sc.Timestamp, 5*time.Second)
}

func TestFormatDeveloper(t *testing.T) {
	assert.Equal(t, "Jo <j@x>", formatDeveloper("Jo", "j@x"))
	assert.Equal(t, "Jo", formatDeveloper("Jo", ""))
	assert.Equal(t, "j@x", formatDeveloper("", "j@x"))
	assert.Equal(t, "unknown", formatDeveloper("", ""))
}

func TestManifestVersion(t *testing.T) {
	t.Run("package.json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
			[]byte(`{"name":"demo","version":"2.1.0"}`), 0644))
		assert.Equal(t, "2.1.0", ManifestVersion(dir))
	})

	t.Run("cargo toml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"),
			[]byte("[package]\nname = \"demo\"\nversion = \"0.3.1\"\n"), 0644))
		assert.Equal(t, "0.3.1", ManifestVersion(dir))
	})

	t.Run("no manifest", func(t *testing.T) {
		assert.Equal(t, "unknown", ManifestVersion(t.TempDir()))
	})

	t.Run("malformed package.json falls through", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{oops"), 0644))
		assert.Equal(t, "unknown", ManifestVersion(dir))
	})
}

func TestWriteLog(t *testing.T) {
	dir := t.TempDir()
	sc := Context{
		ID:        "abc-123",
		Project:   "demo",
		Profile:   profile.NextJS,
		Branch:    "main",
		Developer: "Jo <j@x>",
		Timestamp: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
	}

	path, err := WriteLog(dir, "start", sc, map[string]string{"services": "redis started"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "start-20260829-103000.log"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "session: abc-123\n")
	assert.Contains(t, content, "profile: nextjs\n")
	assert.Contains(t, content, "changes: working tree clean\n")
	assert.Contains(t, content, "services: redis started\n")
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	h, err := OpenHistory(t.TempDir())
	require.NoError(t, err)
	defer h.Close()

	base := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	for i, cmd := range []string{"start", "finish", "start"} {
		require.NoError(t, h.Add(ctx, Record{
			ID:        string(rune('a' + i)),
			Command:   cmd,
			Project:   "demo",
			Profile:   "go",
			Branch:    "main",
			Summary:   "working tree clean",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	records, err := h.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "start", records[0].Command)
	assert.True(t, records[0].StartedAt.After(records[1].StartedAt))

	all, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

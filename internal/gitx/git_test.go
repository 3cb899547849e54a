package gitx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/devflow/internal/exec"
)

func TestParsePorcelain(t *testing.T) {
	out := "M  staged.go\n" +
		" M unstaged.go\n" +
		"MM both.go\n" +
		"?? new.txt\n" +
		"R  old.go -> renamed.go\n"

	c := parsePorcelain(out)

	assert.Equal(t, 3, c.Staged) // staged.go, both.go, renamed.go
	assert.Equal(t, 2, c.Unstaged)
	assert.Equal(t, 1, c.Untracked)
	assert.Equal(t, []string{"staged.go", "unstaged.go", "both.go", "new.txt", "renamed.go"}, c.Files)
	assert.Equal(t, "3 staged, 2 unstaged, 1 untracked", c.Summary())
	assert.False(t, c.Clean())
}

func TestParsePorcelainEmpty(t *testing.T) {
	c := parsePorcelain("")
	assert.True(t, c.Clean())
	assert.Zero(t, c.Total())
	assert.Equal(t, "working tree clean", c.Summary())
}

func TestSwitchOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("existing branch", func(t *testing.T) {
		m := exec.NewMockRunner()
		g := New(m, "/repo")

		require.NoError(t, g.SwitchOrCreate(ctx, "feature"))
		assert.True(t, m.CalledWith("git", "checkout", "feature"))
		assert.False(t, m.CalledWith("git", "checkout", "-b"))
	})

	t.Run("new branch", func(t *testing.T) {
		m := exec.NewMockRunner()
		m.AddResponse("git show-ref", exec.MockResponse{Err: errors.New("not found")})
		g := New(m, "/repo")

		require.NoError(t, g.SwitchOrCreate(ctx, "feature"))
		assert.True(t, m.CalledWith("git", "checkout", "-b", "feature"))
	})
}

func TestIsRepo(t *testing.T) {
	ctx := context.Background()

	m := exec.NewMockRunner()
	assert.True(t, New(m, "/repo").IsRepo(ctx))

	m = exec.NewMockRunner()
	m.AddResponse("git rev-parse", exec.MockResponse{Err: errors.New("not a git repository")})
	assert.False(t, New(m, "/repo").IsRepo(ctx))
}

func TestHasStaged(t *testing.T) {
	ctx := context.Background()

	// diff --cached --quiet failing means staged changes exist
	m := exec.NewMockRunner()
	m.AddResponse("git diff", exec.MockResponse{Err: errors.New("exit status 1")})
	assert.True(t, New(m, "/repo").HasStaged(ctx))

	m = exec.NewMockRunner()
	assert.False(t, New(m, "/repo").HasStaged(ctx))
}

func TestTolerantQueries(t *testing.T) {
	ctx := context.Background()
	m := exec.NewMockRunner()
	m.AddResponse("git remote", exec.MockResponse{Err: errors.New("no remote")})
	m.AddResponse("git log", exec.MockResponse{Err: errors.New("no commits yet")})
	m.AddResponse("git config", exec.MockResponse{Err: errors.New("unset")})

	g := New(m, "/repo")
	assert.Empty(t, g.RemoteURL(ctx))
	assert.Empty(t, g.LastCommit(ctx))
	name, email := g.Identity(ctx)
	assert.Empty(t, name)
	assert.Empty(t, email)
}

func TestRunsInConfiguredDir(t *testing.T) {
	ctx := context.Background()
	m := exec.NewMockRunner()
	g := New(m, "/some/tree")

	_, _ = g.Status(ctx)
	require.NotEmpty(t, m.Calls)
	assert.Equal(t, "/some/tree", m.Calls[0].Dir)
}

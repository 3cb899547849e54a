package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockRunnerLookupSpecificity(t *testing.T) {
	m := NewMockRunner()
	m.AddResponse("git", MockResponse{Output: []byte("generic")})
	m.AddResponse("git status", MockResponse{Output: []byte("status")})
	m.AddResponse("git status --porcelain", MockResponse{Output: []byte("porcelain")})

	out, err := m.Run(context.Background(), "git", "status", "--porcelain")
	assert.NoError(t, err)
	assert.Equal(t, "porcelain", string(out))

	out, _ = m.Run(context.Background(), "git", "status", "-sb")
	assert.Equal(t, "status", string(out))

	out, _ = m.Run(context.Background(), "git", "log")
	assert.Equal(t, "generic", string(out))

	out, _ = m.Run(context.Background(), "npm", "install")
	assert.Empty(t, out)
}

func TestMockRunnerRecordsCalls(t *testing.T) {
	m := NewMockRunner()
	_, _ = m.RunInDir(context.Background(), "/tmp", "git", "init")
	_ = m.StartDetached(context.Background(), "/tmp", "redis-server", "--daemonize", "yes")

	assert.Len(t, m.Calls, 2)
	assert.Equal(t, "/tmp", m.Calls[0].Dir)
	assert.False(t, m.Calls[0].Detached)
	assert.True(t, m.Calls[1].Detached)
	assert.True(t, m.CalledWith("git", "init"))
	assert.True(t, m.CalledWith("redis-server", "--daemonize"))
	assert.False(t, m.CalledWith("git", "commit"))
}

func TestMockRunnerLookPath(t *testing.T) {
	m := NewMockRunner()
	m.MissingTools = []string{"gh"}

	_, err := m.LookPath("git")
	assert.NoError(t, err)

	_, err = m.LookPath("gh")
	assert.Error(t, err)
	assert.False(t, Available(m, "gh"))
	assert.True(t, Available(m, "git"))
}

func TestOSRunnerLookPath(t *testing.T) {
	r := NewOSRunner()
	// sh exists on every platform we run tests on
	_, err := r.LookPath("sh")
	assert.NoError(t, err)

	_, err = r.LookPath("definitely-not-a-real-tool-xyz")
	assert.Error(t, err)
}

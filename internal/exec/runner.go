// Package exec provides a testable command execution abstraction.
// All external collaborators (git, gh, package managers, service tools)
// are invoked through the Runner interface so workflow logic never
// depends on any particular tool's invocation syntax.
package exec

import (
	"context"
	"io"
	osexec "os/exec"
	"strings"
)

// Runner defines the interface for executing external commands.
// Inject this instead of calling exec.Command directly.
type Runner interface {
	// Run executes a command in the working directory and returns
	// combined stdout/stderr.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// RunInDir executes a command in a specific directory.
	RunInDir(ctx context.Context, dir, name string, args ...string) ([]byte, error)

	// StartDetached begins a background process without waiting for
	// completion. The process is abandoned after a successful start.
	StartDetached(ctx context.Context, dir, name string, args ...string) error

	// LookPath reports the resolved path of a tool, or an error when
	// the tool is not installed.
	LookPath(name string) (string, error)
}

// OSRunner implements Runner using os/exec.
type OSRunner struct {
	// Env overrides environment variables (nil = inherit from parent)
	Env []string
}

// NewOSRunner creates a new OS-based command runner.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run executes a command and returns combined output.
func (r *OSRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return r.RunInDir(ctx, "", name, args...)
}

// RunInDir executes a command in a specific directory.
func (r *OSRunner) RunInDir(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if r.Env != nil {
		cmd.Env = r.Env
	}
	return cmd.CombinedOutput()
}

// StartDetached starts a background process and abandons it.
// Output is discarded; the process outlives the CLI run.
func (r *OSRunner) StartDetached(ctx context.Context, dir, name string, args ...string) error {
	cmd := osexec.Command(name, args...)
	cmd.Dir = dir
	if r.Env != nil {
		cmd.Env = r.Env
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	cmd.Stdin = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background so it never turns into a zombie
	// while the CLI is still running.
	go func() { _ = cmd.Wait() }()
	return nil
}

// LookPath resolves a tool on PATH.
func (r *OSRunner) LookPath(name string) (string, error) {
	return osexec.LookPath(name)
}

// Available reports whether a tool is installed.
func Available(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}

// MockRunner implements Runner for testing.
type MockRunner struct {
	// Calls records all command invocations in order.
	Calls []MockCall

	// Responses maps a command key to its canned response. Keys are
	// matched most-specific first: "name arg1 arg2", then "name arg1",
	// then "name".
	Responses map[string]MockResponse

	// MissingTools lists tool names LookPath should reject.
	MissingTools []string
}

// MockCall records a single command invocation.
type MockCall struct {
	Name     string
	Args     []string
	Dir      string
	Detached bool
}

// MockResponse defines the response for a mocked command.
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockRunner creates a new mock runner.
func NewMockRunner() *MockRunner {
	return &MockRunner{Responses: make(map[string]MockResponse)}
}

// AddResponse sets the response for a command key.
func (m *MockRunner) AddResponse(key string, resp MockResponse) {
	m.Responses[key] = resp
}

// CalledWith reports whether any recorded call starts with the given
// name and argument prefix.
func (m *MockRunner) CalledWith(name string, argPrefix ...string) bool {
	for _, c := range m.Calls {
		if c.Name != name || len(c.Args) < len(argPrefix) {
			continue
		}
		match := true
		for i, a := range argPrefix {
			if c.Args[i] != a {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (m *MockRunner) lookup(name string, args []string) MockResponse {
	key := name
	if len(args) > 0 {
		key = name + " " + strings.Join(args, " ")
	}
	for {
		if resp, ok := m.Responses[key]; ok {
			return resp
		}
		idx := strings.LastIndex(key, " ")
		if idx < 0 {
			return MockResponse{}
		}
		key = key[:idx]
	}
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, MockCall{Name: name, Args: args})
	resp := m.lookup(name, args)
	return resp.Output, resp.Err
}

func (m *MockRunner) RunInDir(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, MockCall{Name: name, Args: args, Dir: dir})
	resp := m.lookup(name, args)
	return resp.Output, resp.Err
}

func (m *MockRunner) StartDetached(ctx context.Context, dir, name string, args ...string) error {
	m.Calls = append(m.Calls, MockCall{Name: name, Args: args, Dir: dir, Detached: true})
	return m.lookup(name, args).Err
}

func (m *MockRunner) LookPath(name string) (string, error) {
	for _, missing := range m.MissingTools {
		if missing == name {
			return "", &osexec.Error{Name: name, Err: osexec.ErrNotFound}
		}
	}
	return "/usr/bin/" + name, nil
}

// Default is the default runner used by helper functions.
var Default Runner = NewOSRunner()

var _ Runner = (*OSRunner)(nil)
var _ Runner = (*MockRunner)(nil)

package todo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanFindsMarkers(t *testing.T) {
	root := t.TempDir()
	write(t, root, "main.go", "package main\n// TODO: wire flags\nfunc main() {}\n// FIXME handle error\n")
	write(t, root, "app.py", "# HACK: temporary\nprint('hi')\n")

	entries := NewScanner(0, 0).Scan(root)

	require.Len(t, entries, 3)
	byToken := map[string]Entry{}
	for _, e := range entries {
		byToken[e.Token] = e
	}
	assert.Equal(t, 2, byToken["TODO"].Line)
	assert.Equal(t, "main.go", byToken["TODO"].File)
	assert.Equal(t, "// TODO: wire flags", byToken["TODO"].Text)
	assert.Equal(t, "main.go:2: // TODO: wire flags", byToken["TODO"].String())
	assert.Equal(t, "app.py", byToken["HACK"].File)
}

func TestScanSkipsDependencyDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "node_modules/pkg/index.js", "// TODO vendored\n")
	write(t, root, "dist/bundle.js", "// FIXME built\n")
	write(t, root, ".git/hooks/sample.sh", "# TODO hook\n")
	write(t, root, "src/index.js", "// TODO real\n")

	entries := NewScanner(0, 0).Scan(root)

	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join("src", "index.js"), entries[0].File)
}

func TestScanIgnoresNonSourceFiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "notes.txt", "TODO not source\n")
	write(t, root, "data.json", "\"TODO\": true\n")

	assert.Empty(t, NewScanner(0, 0).Scan(root))
}

func TestScanWordBoundary(t *testing.T) {
	root := t.TempDir()
	write(t, root, "main.go", "// NOTEBOOK is not a marker\n// NOTE: this is\nvar xxxTODO int\n")

	entries := NewScanner(0, 0).Scan(root)

	require.Len(t, entries, 1)
	assert.Equal(t, "NOTE", entries[0].Token)
}

func TestScanPerTokenCap(t *testing.T) {
	root := t.TempDir()
	content := ""
	for i := 0; i < 30; i++ {
		content += fmt.Sprintf("// TODO item %d\n", i)
	}
	write(t, root, "big.go", content)

	entries := NewScanner(5, 100).Scan(root)
	assert.Len(t, entries, 5)
}

func TestScanTotalCapIsIndependent(t *testing.T) {
	root := t.TempDir()
	content := ""
	for i := 0; i < 8; i++ {
		content += fmt.Sprintf("// TODO a%d\n// FIXME b%d\n// HACK c%d\n", i, i, i)
	}
	write(t, root, "busy.go", content)

	// Per-token cap admits 8 each (24 candidates); total trims to 10.
	entries := NewScanner(8, 10).Scan(root)
	assert.Len(t, entries, 10)
}

func TestScanEmptyTreeIsNotAnError(t *testing.T) {
	assert.Empty(t, NewScanner(0, 0).Scan(t.TempDir()))
	assert.Empty(t, NewScanner(0, 0).Scan(filepath.Join(t.TempDir(), "missing")))
}

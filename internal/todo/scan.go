// Package todo scans source files for outstanding-work markers used to
// populate the handover document.
package todo

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Tokens are the recognized markers, scanned in this order.
var Tokens = []string{"TODO", "FIXME", "HACK", "XXX", "BUG", "NOTE"}

// sourceExtensions is the extension allow-list.
var sourceExtensions = map[string]bool{
	".go": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".py": true, ".rs": true, ".java": true, ".rb": true, ".php": true,
	".c": true, ".h": true, ".cpp": true, ".hpp": true,
	".sh": true, ".sql": true, ".html": true, ".css": true, ".vue": true,
}

// skipDirs are dependency and output directories never scanned.
var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "target": true,
	"dist": true, "build": true, "__pycache__": true, ".next": true,
	"venv": true, ".venv": true, ".pytest_cache": true, ".mypy_cache": true,
}

const (
	// DefaultPerToken caps matches collected per marker token.
	DefaultPerToken = 10
	// DefaultTotal caps entries surfaced in the handover document.
	DefaultTotal = 20
)

// Entry is a single marker occurrence.
type Entry struct {
	File  string
	Line  int
	Token string
	Text  string
}

// String renders the entry as "file:line: text".
func (e Entry) String() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Text)
}

// Scanner walks a tree collecting marker entries. The per-token and
// total caps are independent limits: the scan stops collecting a token
// once its cap is hit, and the final list is truncated to the total.
type Scanner struct {
	PerToken int
	Total    int
}

// NewScanner creates a scanner with the default caps. Zero or negative
// overrides keep the defaults.
func NewScanner(perToken, total int) *Scanner {
	s := &Scanner{PerToken: DefaultPerToken, Total: DefaultTotal}
	if perToken > 0 {
		s.PerToken = perToken
	}
	if total > 0 {
		s.Total = total
	}
	return s
}

// Scan walks root and returns the capped, flat entry list. Absence of
// matches yields an empty list, never an error.
func (s *Scanner) Scan(root string) []Entry {
	perToken := make(map[string]int, len(Tokens))
	var entries []Entry

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		entries = append(entries, scanFile(path, rel, perToken, s.PerToken)...)
		return nil
	})

	if len(entries) > s.Total {
		entries = entries[:s.Total]
	}
	return entries
}

func scanFile(path, rel string, perToken map[string]int, limit int) []Entry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 256*1024), 256*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		for _, token := range Tokens {
			if perToken[token] >= limit {
				continue
			}
			if !containsToken(line, token) {
				continue
			}
			perToken[token]++
			entries = append(entries, Entry{
				File:  rel,
				Line:  lineNum,
				Token: token,
				Text:  strings.TrimSpace(line),
			})
			break // one entry per line, first token wins
		}
	}
	return entries
}

// containsToken matches the marker as a standalone word so that e.g.
// "NOTEBOOK" does not count as a NOTE.
func containsToken(line, token string) bool {
	idx := strings.Index(line, token)
	for idx >= 0 {
		before := idx == 0 || !isWordByte(line[idx-1])
		afterIdx := idx + len(token)
		after := afterIdx >= len(line) || !isWordByte(line[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(line[idx+1:], token)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

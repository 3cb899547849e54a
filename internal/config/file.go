package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project-local configuration file.
const FileName = ".devflow.yaml"

// FileConfig represents the optional .devflow.yaml project file.
type FileConfig struct {
	// BranchPrefix overrides the auto-generated branch name prefix
	BranchPrefix string `yaml:"branch_prefix"`

	// HandoverFile overrides the handover document filename
	HandoverFile string `yaml:"handover_file"`

	// PRLabels are labels applied to created pull requests
	PRLabels []string `yaml:"pr_labels"`

	// CleanupGlobs are extra glob patterns removed during cleanup
	CleanupGlobs []string `yaml:"cleanup_globs"`

	// TodoPerToken caps TODO-scan matches per marker token (0 = default)
	TodoPerToken int `yaml:"todo_per_token"`

	// TodoTotal caps the TODO entries shown in the handover (0 = default)
	TodoTotal int `yaml:"todo_total"`
}

// LoadFile reads the project config from dir. A missing file is not an
// error and yields a zero-value config.
func LoadFile(dir string) (*FileConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return &fc, nil
}

// Settings is the merged view of environment and file configuration
// consumed by the workflow commands.
type Settings struct {
	BranchPrefix string
	HandoverFile string
	PRLabels     []string
	CleanupGlobs []string
	TodoPerToken int
	TodoTotal    int
	SkipDeps     bool
	SkipServices bool
	SkipCleanup  bool
	SkipPR       bool
}

// Load merges environment configuration with the optional project file.
// File values win over environment values where both are set.
func Load(dir string) (*Settings, error) {
	fc, err := LoadFile(dir)
	if err != nil {
		return nil, err
	}

	e := Env()
	s := &Settings{
		BranchPrefix: e.BranchPrefix,
		HandoverFile: e.HandoverFile,
		PRLabels:     e.PRLabels,
		SkipDeps:     e.SkipDeps,
		SkipServices: e.SkipServices,
		SkipCleanup:  e.SkipCleanup,
		SkipPR:       e.SkipPR,
	}

	if fc.BranchPrefix != "" {
		s.BranchPrefix = fc.BranchPrefix
	}
	if fc.HandoverFile != "" {
		s.HandoverFile = fc.HandoverFile
	}
	if len(fc.PRLabels) > 0 {
		s.PRLabels = fc.PRLabels
	}
	s.CleanupGlobs = fc.CleanupGlobs
	s.TodoPerToken = fc.TodoPerToken
	s.TodoTotal = fc.TodoTotal

	return s, nil
}

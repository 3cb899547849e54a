package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
)

// tomlVersion matches `version = "x.y.z"` in Cargo.toml / pyproject.toml.
var tomlVersion = regexp.MustCompile(`(?m)^\s*version\s*=\s*"([^"]+)"`)

// ManifestVersion reads the project version string from the nearest
// manifest file. Unknown or unreadable manifests yield "unknown".
func ManifestVersion(dir string) string {
	if data, err := os.ReadFile(filepath.Join(dir, "package.json")); err == nil {
		var manifest struct {
			Version string `json:"version"`
		}
		if json.Unmarshal(data, &manifest) == nil && manifest.Version != "" {
			return manifest.Version
		}
	}

	for _, name := range []string{"Cargo.toml", "pyproject.toml"} {
		if data, err := os.ReadFile(filepath.Join(dir, name)); err == nil {
			if m := tomlVersion.FindSubmatch(data); m != nil {
				return string(m[1])
			}
		}
	}

	return "unknown"
}

package profile

import (
	"os"
	"path/filepath"
	"strings"
)

// detectionRule pairs a predicate over the filesystem with the profile
// it yields. Rules are evaluated in a fixed order; the first match wins.
// The combined fullstack directory-pair check must come before every
// single-ecosystem check, and specific frameworks (nextjs) before their
// generic fallbacks (javascript).
type detectionRule struct {
	profile Profile
	match   func(p *probe) bool
}

var rules = []detectionRule{
	{Fullstack, func(p *probe) bool {
		return (p.hasDir("frontend") && p.hasDir("backend")) ||
			(p.hasDir("client") && p.hasDir("server"))
	}},
	{NextJS, func(p *probe) bool {
		return p.hasFile("package.json") &&
			(p.fileContains("package.json", `"next"`) ||
				p.hasFile("next.config.js") || p.hasFile("next.config.mjs") || p.hasFile("next.config.ts"))
	}},
	{React, func(p *probe) bool {
		return p.hasFile("package.json") &&
			(p.fileContains("package.json", `"react"`) || p.hasDir(filepath.Join("src", "components")))
	}},
	{NodeJS, func(p *probe) bool {
		return p.hasFile("package.json") &&
			(p.fileContains("package.json", `"express"`) ||
				p.fileContains("package.json", `"fastify"`) ||
				p.fileContains("package.json", `"koa"`))
	}},
	{JavaScript, func(p *probe) bool {
		return p.hasFile("package.json")
	}},
	{Django, func(p *probe) bool {
		return p.hasPythonManifest() &&
			(p.hasFile("manage.py") || p.anyManifestContains("django"))
	}},
	{Flask, func(p *probe) bool {
		return p.hasPythonManifest() && p.anyManifestContains("flask")
	}},
	{FastAPI, func(p *probe) bool {
		return p.hasPythonManifest() && p.anyManifestContains("fastapi")
	}},
	{Python, func(p *probe) bool {
		return p.hasPythonManifest()
	}},
	{Rust, func(p *probe) bool {
		return p.hasFile("Cargo.toml")
	}},
	{Go, func(p *probe) bool {
		return p.hasFile("go.mod")
	}},
	{Java, func(p *probe) bool {
		return p.hasFile("pom.xml") || p.hasFile("build.gradle") || p.hasFile("build.gradle.kts")
	}},
	{Ruby, func(p *probe) bool {
		return p.hasFile("Gemfile")
	}},
}

// pythonManifests are the recognized Python dependency formats.
var pythonManifests = []string{"requirements.txt", "pyproject.toml", "Pipfile"}

// Classify inspects root and returns exactly one profile. It never
// fails: when no rule matches it returns Generic. Classification is a
// pure function of the directory's file set, so re-running it without
// filesystem changes yields the same result.
func Classify(root string) Profile {
	p := &probe{root: root, contents: make(map[string][]byte)}
	for _, rule := range rules {
		if rule.match(p) {
			return rule.profile
		}
	}
	return Generic
}

// probe performs read-only filesystem checks, caching manifest contents
// so repeated substring probes stat each file once.
type probe struct {
	root     string
	contents map[string][]byte
}

func (p *probe) hasFile(name string) bool {
	info, err := os.Stat(filepath.Join(p.root, name))
	return err == nil && !info.IsDir()
}

func (p *probe) hasDir(name string) bool {
	info, err := os.Stat(filepath.Join(p.root, name))
	return err == nil && info.IsDir()
}

// fileContains reports whether a root-level file contains the given
// substring, case-insensitively. An absent or unreadable file is
// treated as no match, never as an error.
func (p *probe) fileContains(name, substr string) bool {
	data, ok := p.contents[name]
	if !ok {
		data, _ = os.ReadFile(filepath.Join(p.root, name))
		p.contents[name] = data
	}
	return strings.Contains(strings.ToLower(string(data)), strings.ToLower(substr))
}

func (p *probe) hasPythonManifest() bool {
	for _, m := range pythonManifests {
		if p.hasFile(m) {
			return true
		}
	}
	return false
}

func (p *probe) anyManifestContains(substr string) bool {
	for _, m := range pythonManifests {
		if p.fileContains(m, substr) {
			return true
		}
	}
	return false
}

package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesTotal(t *testing.T) {
	for _, p := range All() {
		t.Run(p.String(), func(t *testing.T) {
			e := Capabilities(p)
			assert.Equal(t, p, e.Profile)
			assert.NotEmpty(t, e.Guidance)
		})
	}
}

func TestCapabilitiesUnknownFallsBackToGeneric(t *testing.T) {
	e := Capabilities(Profile("cobol"))
	assert.Equal(t, Generic, e.Profile)
}

func TestGenericEntryIsInert(t *testing.T) {
	e := Capabilities(Generic)
	assert.Empty(t, e.Install.Incremental)
	assert.Empty(t, e.Install.Fresh)
	assert.Empty(t, e.Install.Tools)
	assert.Empty(t, e.Cleanup)
	assert.Empty(t, e.Services)
}

func TestNextJSGuidanceMentionsPort3000(t *testing.T) {
	e := Capabilities(NextJS)
	assert.Contains(t, e.Guidance, "3000")
}

func TestInstallProceduresHaveFreshVariant(t *testing.T) {
	for _, p := range All() {
		if p == Generic {
			continue
		}
		e := Capabilities(p)
		assert.NotEmpty(t, e.Install.Incremental, "profile %s has no incremental install", p)
		assert.NotEmpty(t, e.Install.Fresh, "profile %s has no fresh install", p)
	}
}

func TestFreshPurgeTargetsAreRelative(t *testing.T) {
	for _, p := range All() {
		e := Capabilities(p)
		for _, path := range e.Install.FreshPurge {
			assert.False(t, strings.HasPrefix(path, "/"), "profile %s purges absolute path %s", p, path)
			assert.False(t, strings.Contains(path, ".."), "profile %s purges parent path %s", p, path)
		}
		for _, g := range e.Cleanup {
			assert.False(t, strings.HasPrefix(g, "/"), "profile %s cleans absolute glob %s", p, g)
		}
	}
}

func TestServiceDirectivesNameATool(t *testing.T) {
	for _, p := range All() {
		for _, s := range Capabilities(p).Services {
			assert.NotEmpty(t, s.Tool, "profile %s service %s has no tool", p, s.Name)
			assert.NotEmpty(t, s.StartCmd, "profile %s service %s has no start command", p, s.Name)
		}
	}
}

func TestCapabilityTableIsStable(t *testing.T) {
	// Two lookups return equal entries; the table is never mutated.
	assert.Equal(t, Capabilities(NextJS), Capabilities(NextJS))
	assert.Equal(t, Capabilities(Fullstack), Capabilities(Fullstack))
}

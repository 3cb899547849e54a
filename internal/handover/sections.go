package handover

import (
	"fmt"
	"strings"

	"github.com/joss/devflow/internal/profile"
	"github.com/joss/devflow/internal/session"
)

// architectureNotes is the per-profile architecture summary.
var architectureNotes = map[profile.Profile]string{
	profile.Fullstack:  "Split frontend/backend (or client/server) layout. Each half carries its own dependency manifest and dev server.",
	profile.NextJS:     "Next.js application. Pages or app router under the project root, static assets in `public/`, build output in `.next/`.",
	profile.React:      "React single-page application. Components under `src/`, bundled build output in `build/` or `dist/`.",
	profile.NodeJS:     "Node.js server application. Entry point declared in `package.json`, HTTP layer via the declared server framework.",
	profile.JavaScript: "Plain JavaScript/TypeScript package managed through `package.json`.",
	profile.Django:     "Django project. `manage.py` drives the app; settings, URLs and apps follow the standard Django layout.",
	profile.Flask:      "Flask microservice. A small application module wires routes; configuration via environment.",
	profile.FastAPI:    "FastAPI service. ASGI app served by uvicorn; request/response models via pydantic.",
	profile.Python:     "Python project managed through its dependency manifest; no web framework detected.",
	profile.Rust:       "Cargo workspace/crate. Sources under `src/`, build artifacts in `target/`.",
	profile.Go:         "Go module. Packages under the module root; binaries typically under `cmd/`.",
	profile.Java:       "Java project built with Maven or Gradle; sources under `src/main/java`.",
	profile.Ruby:       "Ruby project managed with Bundler; for Rails apps the standard `app/` layout applies.",
	profile.Generic:    "No recognized ecosystem markers; treat as a plain file tree.",
}

func architecture(sc session.Context) string {
	if note, ok := architectureNotes[sc.Profile]; ok {
		return note
	}
	return architectureNotes[profile.Generic]
}

// setup renders the profile's install and run instructions from the
// capability table so the handover always agrees with what the
// initializer actually does.
func setup(sc session.Context) string {
	entry := profile.Capabilities(sc.Profile)

	var sb strings.Builder
	if len(entry.Install.Incremental) == 0 {
		sb.WriteString("No ecosystem-specific install step.\n")
	} else {
		sb.WriteString("Install dependencies:\n\n```sh\n")
		for _, step := range entry.Install.Incremental {
			line := strings.Join(step.Command, " ")
			if step.Dir != "" {
				line = fmt.Sprintf("(cd %s && %s)", step.Dir, line)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("```\n")
	}
	fmt.Fprintf(&sb, "\n%s\n", entry.Guidance)
	return sb.String()
}

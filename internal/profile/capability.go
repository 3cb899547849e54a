package profile

// InstallStep is a single external command of an install procedure.
// Steps with a Dir or Manifest constraint are skipped when the target
// is absent, which keeps mixed layouts (fullstack) from failing.
type InstallStep struct {
	// Dir is the relative subdirectory to run in ("" = project root).
	Dir string

	// Manifest gates the step: it runs only when this file exists
	// relative to Dir ("" = always run).
	Manifest string

	// Command is the external command and its arguments.
	Command []string
}

// InstallProcedure describes how a profile installs its dependencies.
// Incremental reuses the local package cache; Fresh purges lockfile and
// cache artifacts first and installs from scratch.
type InstallProcedure struct {
	// Tools are the external binaries the procedure requires. The
	// initializer refuses to run when any of these are missing.
	Tools []string

	// Incremental steps for a normal install.
	Incremental []InstallStep

	// Fresh steps, run after FreshPurge paths are removed.
	Fresh []InstallStep

	// FreshPurge lists paths (relative to the root) deleted before a
	// fresh install. Absent paths are skipped silently.
	FreshPurge []string
}

// ServiceDirective names an optional background process. Absence of the
// tool is not an error; the directive is simply skipped.
type ServiceDirective struct {
	// Name is the human-readable service name.
	Name string

	// Tool is the binary that must be on PATH.
	Tool string

	// Marker, when set, is a project file that must exist for the
	// directive to apply (e.g. a compose file).
	Marker string

	// CheckCmd, when set, is run first; success means the service is
	// already running and the start is skipped.
	CheckCmd []string

	// StartCmd starts the service.
	StartCmd []string

	// Detach starts the process fire-and-forget instead of waiting.
	Detach bool
}

// Entry holds the four behaviors a profile governs. The table is static
// configuration: constructed once, immutable, shared read-only by the
// initializer and the finalizer.
type Entry struct {
	Profile  Profile
	Install  InstallProcedure
	Cleanup  []string
	Services []ServiceDirective
	Guidance string
}

var (
	composeService = ServiceDirective{
		Name:     "docker compose stack",
		Tool:     "docker",
		Marker:   "docker-compose.yml",
		StartCmd: []string{"docker", "compose", "up", "-d"},
	}
	redisService = ServiceDirective{
		Name:     "redis",
		Tool:     "redis-server",
		CheckCmd: []string{"redis-cli", "ping"},
		StartCmd: []string{"redis-server", "--daemonize", "yes"},
	}
	postgresService = ServiceDirective{
		Name:     "postgresql",
		Tool:     "pg_ctl",
		CheckCmd: []string{"pg_isready"},
		StartCmd: []string{"pg_ctl", "start"},
		Detach:   true,
	}
)

func npmInstall(extraCleanup ...string) (InstallProcedure, []string) {
	proc := InstallProcedure{
		Tools: []string{"node", "npm"},
		Incremental: []InstallStep{
			{Command: []string{"npm", "install"}},
		},
		Fresh: []InstallStep{
			{Command: []string{"npm", "cache", "clean", "--force"}},
			{Command: []string{"npm", "install"}},
		},
		FreshPurge: []string{"node_modules", "package-lock.json"},
	}
	cleanup := append([]string{
		"node_modules/.cache/**",
		"dist/**",
		"build/**",
		"coverage/**",
	}, extraCleanup...)
	return proc, cleanup
}

func pipInstall() (InstallProcedure, []string) {
	proc := InstallProcedure{
		Tools: []string{"python3", "pip3"},
		Incremental: []InstallStep{
			{Manifest: "requirements.txt", Command: []string{"pip3", "install", "-r", "requirements.txt"}},
			{Manifest: "pyproject.toml", Command: []string{"pip3", "install", "-e", "."}},
		},
		Fresh: []InstallStep{
			{Command: []string{"pip3", "cache", "purge"}},
			{Manifest: "requirements.txt", Command: []string{"pip3", "install", "--force-reinstall", "-r", "requirements.txt"}},
			{Manifest: "pyproject.toml", Command: []string{"pip3", "install", "--force-reinstall", "-e", "."}},
		},
		FreshPurge: []string{".pytest_cache", ".mypy_cache"},
	}
	cleanup := []string{
		"**/__pycache__/**",
		"**/*.pyc",
		".pytest_cache/**",
		".mypy_cache/**",
		"*.egg-info/**",
	}
	return proc, cleanup
}

// buildTable constructs the capability table. Every profile has an
// entry, including Generic, whose entry performs no ecosystem action.
func buildTable() map[Profile]Entry {
	t := make(map[Profile]Entry, len(All()))

	npmProc, npmCleanup := npmInstall()
	pipProc, pipCleanup := pipInstall()

	t[Fullstack] = Entry{
		Profile: Fullstack,
		Install: InstallProcedure{
			Tools: []string{"node", "npm"},
			Incremental: []InstallStep{
				{Dir: "frontend", Manifest: "package.json", Command: []string{"npm", "install"}},
				{Dir: "client", Manifest: "package.json", Command: []string{"npm", "install"}},
				{Dir: "backend", Manifest: "package.json", Command: []string{"npm", "install"}},
				{Dir: "server", Manifest: "package.json", Command: []string{"npm", "install"}},
				{Dir: "backend", Manifest: "requirements.txt", Command: []string{"pip3", "install", "-r", "requirements.txt"}},
				{Dir: "server", Manifest: "requirements.txt", Command: []string{"pip3", "install", "-r", "requirements.txt"}},
			},
			Fresh: []InstallStep{
				{Dir: "frontend", Manifest: "package.json", Command: []string{"npm", "install"}},
				{Dir: "client", Manifest: "package.json", Command: []string{"npm", "install"}},
				{Dir: "backend", Manifest: "package.json", Command: []string{"npm", "install"}},
				{Dir: "server", Manifest: "package.json", Command: []string{"npm", "install"}},
				{Dir: "backend", Manifest: "requirements.txt", Command: []string{"pip3", "install", "-r", "requirements.txt"}},
				{Dir: "server", Manifest: "requirements.txt", Command: []string{"pip3", "install", "-r", "requirements.txt"}},
			},
			FreshPurge: []string{
				"frontend/node_modules", "client/node_modules",
				"backend/node_modules", "server/node_modules",
				"frontend/package-lock.json", "client/package-lock.json",
			},
		},
		Cleanup: []string{
			"frontend/dist/**", "frontend/build/**", "client/dist/**", "client/build/**",
			"backend/**/__pycache__/**", "server/**/__pycache__/**",
			"**/node_modules/.cache/**",
		},
		Services: []ServiceDirective{composeService, redisService, postgresService},
		Guidance: "Start the frontend and backend dev servers in separate terminals",
	}

	nextProc, nextCleanup := npmInstall(".next/**")
	t[NextJS] = Entry{
		Profile:  NextJS,
		Install:  nextProc,
		Cleanup:  nextCleanup,
		Services: nil,
		Guidance: "Run 'npm run dev' and open http://localhost:3000",
	}

	t[React] = Entry{
		Profile:  React,
		Install:  npmProc,
		Cleanup:  npmCleanup,
		Guidance: "Run 'npm start' to launch the dev server",
	}

	t[NodeJS] = Entry{
		Profile:  NodeJS,
		Install:  npmProc,
		Cleanup:  npmCleanup,
		Services: []ServiceDirective{redisService},
		Guidance: "Run 'npm start' (or 'npm run dev') to launch the server",
	}

	t[JavaScript] = Entry{
		Profile:  JavaScript,
		Install:  npmProc,
		Cleanup:  npmCleanup,
		Guidance: "Run 'npm test' to verify the toolchain",
	}

	for _, p := range []Profile{Django, Flask, FastAPI, Python} {
		entry := Entry{
			Profile:  p,
			Install:  pipProc,
			Cleanup:  pipCleanup,
			Services: []ServiceDirective{redisService, postgresService},
		}
		switch p {
		case Django:
			entry.Guidance = "Run 'python3 manage.py runserver'"
		case Flask:
			entry.Guidance = "Run 'flask run' (or 'python3 app.py')"
		case FastAPI:
			entry.Guidance = "Run 'uvicorn main:app --reload'"
		default:
			entry.Services = nil
			entry.Guidance = "Activate your virtualenv and run the entry point"
		}
		t[p] = entry
	}

	t[Rust] = Entry{
		Profile: Rust,
		Install: InstallProcedure{
			Tools:       []string{"cargo"},
			Incremental: []InstallStep{{Command: []string{"cargo", "fetch"}}},
			Fresh: []InstallStep{
				{Command: []string{"cargo", "clean"}},
				{Command: []string{"cargo", "fetch"}},
			},
		},
		Cleanup:  []string{"**/*.rs.bk", "target/debug/incremental/**"},
		Guidance: "Run 'cargo build' then 'cargo test'",
	}

	t[Go] = Entry{
		Profile: Go,
		Install: InstallProcedure{
			Tools:       []string{"go"},
			Incremental: []InstallStep{{Command: []string{"go", "mod", "download"}}},
			Fresh: []InstallStep{
				{Command: []string{"go", "clean", "-cache"}},
				{Command: []string{"go", "mod", "download"}},
			},
		},
		Cleanup:  []string{"coverage.out", "**/*.test"},
		Guidance: "Run 'go build ./...' then 'go test ./...'",
	}

	t[Java] = Entry{
		Profile: Java,
		Install: InstallProcedure{
			Tools: []string{"java"},
			Incremental: []InstallStep{
				{Manifest: "pom.xml", Command: []string{"mvn", "-q", "dependency:resolve"}},
				{Manifest: "build.gradle", Command: []string{"gradle", "dependencies", "-q"}},
			},
			Fresh: []InstallStep{
				{Manifest: "pom.xml", Command: []string{"mvn", "-q", "dependency:purge-local-repository", "dependency:resolve"}},
				{Manifest: "build.gradle", Command: []string{"gradle", "--refresh-dependencies", "dependencies", "-q"}},
			},
		},
		Cleanup:  []string{"target/classes/**", "build/tmp/**", ".gradle/**"},
		Guidance: "Run 'mvn package' or 'gradle build'",
	}

	t[Ruby] = Entry{
		Profile: Ruby,
		Install: InstallProcedure{
			Tools:       []string{"ruby", "bundle"},
			Incremental: []InstallStep{{Command: []string{"bundle", "install"}}},
			Fresh: []InstallStep{
				{Command: []string{"bundle", "install"}},
			},
			FreshPurge: []string{"Gemfile.lock", "vendor/bundle"},
		},
		Cleanup:  []string{"tmp/cache/**", "log/*.log"},
		Services: []ServiceDirective{redisService, postgresService},
		Guidance: "Run 'bundle exec rails server' (or your app's entry point)",
	}

	t[Generic] = Entry{
		Profile:  Generic,
		Install:  InstallProcedure{},
		Cleanup:  nil,
		Services: nil,
		Guidance: "No ecosystem detected; set up tooling manually",
	}

	return t
}

var table = buildTable()

// Capabilities returns the capability entry for a profile. It is total:
// unknown values fall back to the Generic entry.
func Capabilities(p Profile) Entry {
	if e, ok := table[p]; ok {
		return e
	}
	return table[Generic]
}

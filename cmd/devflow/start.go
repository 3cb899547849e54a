package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joss/devflow/internal/workflow"
)

func startCmd() *cobra.Command {
	var opts workflow.InitOptions

	cmd := &cobra.Command{
		Use:   "start [branch]",
		Short: "Prepare the working directory for a coding session",
		Long: `Prepare the current directory for a coding session.

Initializes a repository when none exists, detects the project type,
verifies the required tools, optionally switches branches, installs
dependencies, starts background services, and prints a status report.

Examples:
  devflow start                  Prepare the current directory
  devflow start feature/auth     Switch to (or create) a branch
  devflow start --fresh          Pull and reinstall from scratch
  devflow start --check          Validate the environment only`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Branch = args[0]
			}
			dir, err := workDir()
			if err != nil {
				return err
			}
			w, done, err := newWorkflow(dir)
			if err != nil {
				return err
			}
			defer done()
			return w.Initialize(context.Background(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Fresh, "fresh", false, "Pull and reinstall dependencies from scratch")
	cmd.Flags().BoolVar(&opts.CheckOnly, "check", false, "Validate tools and report status without changing anything")
	cmd.Flags().BoolVar(&opts.SkipDeps, "skip-deps", false, "Skip dependency installation")
	cmd.Flags().BoolVar(&opts.SkipServices, "skip-services", false, "Skip background service startup")

	return cmd
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joss/devflow/internal/workflow"
)

func finishCmd() *cobra.Command {
	var opts workflow.FinishOptions

	cmd := &cobra.Command{
		Use:   "finish [branch] [pr-title]",
		Short: "Wrap up the session: cleanup, handover, commit, PR",
		Long: `Wrap up a coding session in the current directory.

Removes build artifacts and temporary files, refreshes the readme
timestamp, writes the handover document, commits everything with a
generated message, and opens a pull request when the gh CLI is
installed. A missing gh or a failed PR never fails the run; the commit
is already safe by then.

Examples:
  devflow finish                             Finalize with defaults
  devflow finish --no-pr                     Skip the pull request
  devflow finish --dry-run                   Show what would happen
  devflow finish fix/limiter "Fix limiter"   Branch and PR title`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Branch = args[0]
			}
			if len(args) > 1 {
				opts.PRTitle = args[1]
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
			return w.Finalize(context.Background(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipPR, "no-pr", false, "Skip pull request creation")
	cmd.Flags().BoolVar(&opts.SkipCleanup, "no-cleanup", false, "Skip the cleanup sweep")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report without deleting, committing, or opening a PR")

	return cmd
}

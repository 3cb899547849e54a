package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joss/devflow/internal/config"
	"github.com/joss/devflow/internal/render"
	"github.com/joss/devflow/internal/session"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sessions recorded on this machine",
		Long: `Show the most recent sessions from the local history index.

Every start and finish run is recorded with its project, profile,
branch, and change summary.

Examples:
  devflow history            Last 20 sessions
  devflow history -n 5       Last 5 sessions`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := session.OpenHistory(config.GetPaths().Data)
			if err != nil {
				return err
			}
			defer h.Close()

			records, err := h.Recent(context.Background(), limit)
			if err != nil {
				return err
			}

			out := render.Stdout(pretty)
			if len(records) == 0 {
				out.Item("no sessions recorded yet")
				return nil
			}

			for _, rec := range records {
				out.Println("%s  %-6s  %-20s  %s",
					rec.StartedAt.Format("2006-01-02 15:04"),
					rec.Command,
					render.Truncate(fmt.Sprintf("%s (%s)", rec.Project, rec.Profile), 20),
					rec.Summary)
				if rec.Branch != "" {
					out.Item("branch: %s", rec.Branch)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of sessions to show")

	return cmd
}

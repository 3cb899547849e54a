// Package main provides the devflow CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "0.1.0"
	pretty  = term.IsTerminal(int(os.Stdout.Fd()))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "devflow",
		Short: "Session bookends for everyday development work",
		Long: `devflow wraps the repetitive start and finish of a coding session.

  devflow start     Prepare the working directory: repository, branch,
                    dependencies, background services, status report.
  devflow finish    Wrap up: cleanup, handover document, commit, and a
                    pull request when the gh CLI is available.
  devflow history   Show recent sessions recorded on this machine.

The project type is detected automatically from marker files; every
profile-specific behavior (install commands, cleanup targets, services,
guidance) follows from that detection.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", pretty, "Colorized output")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version and exit")
	rootCmd.SetVersionTemplate("devflow v{{.Version}}\n")

	rootCmd.AddCommand(startCmd())
	rootCmd.AddCommand(finishCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

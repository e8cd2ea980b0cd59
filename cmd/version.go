package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonbc/internal/nbc"
	"github.com/alexiusacademia/gonbc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gonbc",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gonbc v%s\n", version.Version)
		fmt.Fprintln(out, "Structural Design Load Calculator")
		fmt.Fprintf(out, "Based on %s (National Building Code of Canada), Part 4\n", nbc.Edition)
		fmt.Fprintf(out, "Build: %s (%s)\n", version.BuildTime, version.GitCommit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Package cmd wires the trackast CLI: entry point resolution, output
// rendering, config loading, and anonymous usage reporting, built
// around spf13/cobra.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trackast/trackast/analytics"
)

var (
	verboseFlag bool
	Version     = "0.1.0"
	GitCommit   = "HEAD"
)

var rootCmd = &cobra.Command{
	Use:   "trackast",
	Short: "Call dependency graph generator",
	Long: `trackast builds a call graph from Python, JavaScript, or Rust source
and reports its size, or, given entry points, which functions they
can reach.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics")
		verboseFlag, _ = cmd.Flags().GetBool("verbose")
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
		analytics.SetVersion(Version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "disable anonymous usage metrics")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output; no subcommand reads this flag")
}

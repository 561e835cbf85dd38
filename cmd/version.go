package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and commit information",
	Run: func(_ *cobra.Command, _ []string) {
		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("Version: %s\n", bold(Version))
		fmt.Printf("Git Commit: %s\n", bold(GitCommit))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

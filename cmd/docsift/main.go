package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archivelabs/docsift/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Archive document research pipeline",
	Long: `docsift retrieves documents from a public archive metadata endpoint,
classifies their relevance to a research question with a generative judge,
and produces a deduplicated, tier-ranked report.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

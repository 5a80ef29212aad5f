package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the contentscore command tree
func NewRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "contentscore",
		Short: "Score travel-rewards articles for readability, keywords and on-page SEO",
		Long: `contentscore scores blog drafts on content quality, keyword optimization,
technical SEO and user experience, and lists prioritized recommendations.

Run "contentscore serve" to start the scoring API used by the CMS, or
"contentscore analyze" to score Markdown or HTML drafts from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (yaml, json or toml)")

	root.AddCommand(
		newServeCmd(&configFile),
		newAnalyzeCmd(),
		newKeywordCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

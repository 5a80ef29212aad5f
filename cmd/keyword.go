package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/contentscore/analyzer"
	"github.com/seo-optimizer/contentscore/content"
)

func newKeywordCmd() *cobra.Command {
	var corpus string
	cmd := &cobra.Command{
		Use:   "keyword <file> <keyword>",
		Short: "Show how a keyword is used in a draft",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := content.Load(args[0])
			if err != nil {
				return err
			}
			docs, err := content.LoadCorpus(corpus)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(analyzer.AnalyzeKeyword(doc.HTML, args[1], docs))
		},
	}
	cmd.Flags().StringVar(&corpus, "corpus", "", "Glob of reference articles for IDF")
	return cmd
}

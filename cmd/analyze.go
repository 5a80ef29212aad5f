package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/contentscore/analyzer"
	"github.com/seo-optimizer/contentscore/content"
	"github.com/seo-optimizer/contentscore/output"
)

type analyzeOptions struct {
	title       string
	description string
	slug        string
	keyword     string
	secondary   []string
	heroImage   string
	heroAlt     string
	corpus      string
	format      string
	verbose     bool
	failUnder   int
}

// ScoreError reports drafts that scored below --fail-under
type ScoreError struct {
	Threshold int
	Failed    []string
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("%d draft(s) scored below %d: %s", len(e.Failed), e.Threshold, strings.Join(e.Failed, ", "))
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Score Markdown or HTML drafts",
		Long: `Score one or more drafts. Markdown files may declare their title, description,
slug, keywords and hero image in YAML front matter; flags override those values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.title, "title", "", "Page title")
	f.StringVar(&opts.description, "description", "", "Meta description")
	f.StringVar(&opts.slug, "slug", "", "URL slug")
	f.StringVarP(&opts.keyword, "keyword", "k", "", "Focus keyword")
	f.StringSliceVar(&opts.secondary, "secondary", nil, "Secondary keywords (repeat or comma separate)")
	f.StringVar(&opts.heroImage, "hero-image", "", "Hero image URL")
	f.StringVar(&opts.heroAlt, "hero-alt", "", "Hero image alt text")
	f.StringVar(&opts.corpus, "corpus", "", "Glob of reference articles for IDF, e.g. 'posts/**/*.md'")
	f.StringVarP(&opts.format, "format", "f", "console", "Output format (console|json)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Show the component breakdown")
	f.IntVar(&opts.failUnder, "fail-under", 0, "Exit non-zero when an overall score is below this value")
	return cmd
}

// applyFlags overrides document metadata with the flags that were set
func (o *analyzeOptions) applyFlags(cmd *cobra.Command, meta analyzer.Metadata) analyzer.Metadata {
	changed := cmd.Flags().Changed
	if changed("title") {
		meta.Title = o.title
	}
	if changed("description") {
		meta.MetaDescription = o.description
	}
	if changed("slug") {
		meta.Slug = o.slug
	}
	if changed("keyword") {
		meta.FocusKeyword = o.keyword
	}
	if changed("secondary") {
		meta.SecondaryKeywords = o.secondary
	}
	if changed("hero-image") {
		meta.HeroImageURL = o.heroImage
	}
	if changed("hero-alt") {
		meta.HeroImageAlt = o.heroAlt
	}
	return meta
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, paths []string) error {
	formatter, err := output.New(opts.format, cmd.OutOrStdout(), opts.verbose)
	if err != nil {
		return err
	}
	corpus, err := content.LoadCorpus(opts.corpus)
	if err != nil {
		return err
	}

	var failed []string
	for _, path := range paths {
		doc, err := content.Load(path)
		if err != nil {
			return err
		}
		result := analyzer.AnalyzeContent(doc.HTML, opts.applyFlags(cmd, doc.Metadata), corpus)
		if err := formatter.Format(path, result); err != nil {
			return err
		}
		if result.Scores.Overall < opts.failUnder {
			failed = append(failed, path)
		}
	}

	if len(failed) > 0 {
		return &ScoreError{Threshold: opts.failUnder, Failed: failed}
	}
	return nil
}

package analyzer

import "strings"

// AnalyzeContent scores an article. It performs no I/O, keeps no state and
// never fails: empty or malformed input degrades to low scores and the
// matching recommendations. corpus is optional and only read.
func AnalyzeContent(content string, meta Metadata, corpus []string) *Result {
	text := ExtractMetrics(content)
	read := ScoreReadability(text)
	structure := AnalyzeStructure(content)
	pg := parsePage(content)
	toks := tokens(StripHTML(content))

	focus := analyzeKeyword(toks, pg, meta.FocusKeyword, corpus)
	secondary := []KeywordAnalysis{}
	for _, kw := range meta.SecondaryKeywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		secondary = append(secondary, analyzeKeyword(toks, pg, kw, corpus))
	}

	in := scoringInput{
		meta:      meta,
		text:      text,
		read:      read,
		structure: structure,
		focus:     focus,
		secondary: secondary,
		page:      pg,
		needle:    keywordTokens(meta.FocusKeyword),
	}

	return &Result{
		Scores:          computeScores(in),
		Recommendations: generateRecommendations(in),
		Metrics: Metrics{
			Text:              text,
			Readability:       read,
			Structure:         structure,
			FocusKeyword:      focus,
			SecondaryKeywords: secondary,
		},
	}
}

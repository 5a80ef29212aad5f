package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// rule inspects one measurement and returns a recommendation when its
// threshold is crossed.
type rule func(in scoringInput) *Recommendation

// recommendationRules run in this order; the order breaks priority ties.
var recommendationRules = []rule{
	missingFocusKeywordRule,
	contentLengthRule,
	missingH1Rule,
	multipleH1Rule,
	missingTitleRule,
	keywordInTitleRule,
	titleLengthRule,
	metaDescriptionRule,
	keywordDensityRule,
	readabilityRule,
	missingH2Rule,
	heroImageRule,
	heroImageAltRule,
	internalLinksRule,
	secondaryKeywordsRule,
}

// generateRecommendations evaluates every rule and sorts the findings by
// priority, highest first. Equal priorities keep rule order.
func generateRecommendations(in scoringInput) []Recommendation {
	recs := []Recommendation{}
	for _, r := range recommendationRules {
		if rec := r(in); rec != nil {
			recs = append(recs, *rec)
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})
	return recs
}

func missingFocusKeywordRule(in scoringInput) *Recommendation {
	if len(in.needle) > 0 {
		return nil
	}
	return &Recommendation{
		Category:    CategoryKeywords,
		Type:        SeverityError,
		Priority:    PriorityCritical,
		Title:       "Missing Focus Keyword",
		Description: "No focus keyword is set, so keyword placement cannot be evaluated.",
		Suggestion:  "Choose the main search phrase this article should rank for and set it as the focus keyword.",
		Impact:      9,
	}
}

func contentLengthRule(in scoringInput) *Recommendation {
	wc := in.text.WordCount
	switch {
	case wc < MinimumWordCount:
		return &Recommendation{
			Category:     CategoryContent,
			Type:         SeverityError,
			Priority:     PriorityHigh,
			Title:        "Content Too Short",
			Description:  fmt.Sprintf("The article has %d words. In-depth guides need at least %d words to compete.", wc, MinimumWordCount),
			Suggestion:   "Add sections that answer the questions readers ask about this topic, such as eligibility, earning rates and redemption examples.",
			CurrentValue: fmt.Sprintf("%d words", wc),
			TargetValue:  fmt.Sprintf("%d+ words", TargetWordCount),
			Impact:       9,
		}
	case wc < TargetWordCount:
		return &Recommendation{
			Category:     CategoryContent,
			Type:         SeveritySuggestion,
			Priority:     PriorityMedium,
			Title:        "Consider Expanding Content",
			Description:  fmt.Sprintf("The article has %d words. The strongest guides on this blog run %d words or more.", wc, TargetWordCount),
			Suggestion:   "Expand thin sections with worked examples, comparisons or a FAQ.",
			CurrentValue: fmt.Sprintf("%d words", wc),
			TargetValue:  fmt.Sprintf("%d+ words", TargetWordCount),
			Impact:       6,
		}
	}
	return nil
}

func missingH1Rule(in scoringInput) *Recommendation {
	if in.structure.Headings.H1 > 0 {
		return nil
	}
	return &Recommendation{
		Category:     CategoryContent,
		Type:         SeverityError,
		Priority:     PriorityCritical,
		Title:        "Missing H1 Tag",
		Description:  "The content has no H1 heading.",
		Suggestion:   "Add a single H1 that states the topic of the article and includes the focus keyword.",
		CurrentValue: "0",
		TargetValue:  "1",
		Impact:       8,
	}
}

func multipleH1Rule(in scoringInput) *Recommendation {
	if in.structure.Headings.H1 <= 1 {
		return nil
	}
	return &Recommendation{
		Category:     CategoryContent,
		Type:         SeverityWarning,
		Priority:     PriorityHigh,
		Title:        "Multiple H1 Tags",
		Description:  fmt.Sprintf("The content has %d H1 headings.", in.structure.Headings.H1),
		Suggestion:   "Keep one H1 and demote the others to H2.",
		CurrentValue: fmt.Sprintf("%d", in.structure.Headings.H1),
		TargetValue:  "1",
		Impact:       6,
	}
}

func missingTitleRule(in scoringInput) *Recommendation {
	if strings.TrimSpace(in.meta.Title) != "" {
		return nil
	}
	return &Recommendation{
		Category:    CategoryTechnical,
		Type:        SeverityError,
		Priority:    PriorityCritical,
		Title:       "Missing Title",
		Description: "The article has no SEO title.",
		Suggestion:  fmt.Sprintf("Write a title of %d-%d characters that starts with the focus keyword.", int(TitleIdeal.Min), int(TitleIdeal.Max)),
		TargetValue: fmt.Sprintf("%d-%d characters", int(TitleIdeal.Min), int(TitleIdeal.Max)),
		Impact:      10,
	}
}

func keywordInTitleRule(in scoringInput) *Recommendation {
	if len(in.needle) == 0 || containsPhrase(in.meta.Title, in.needle) {
		return nil
	}
	return &Recommendation{
		Category:    CategoryKeywords,
		Type:        SeverityError,
		Priority:    PriorityHigh,
		Title:       "Focus Keyword Missing from Title",
		Description: fmt.Sprintf("The title does not contain the focus keyword %q.", in.focus.Keyword),
		Suggestion:  "Place the focus keyword in the title, ideally near the beginning.",
		TargetValue: in.focus.Keyword,
		Impact:      9,
	}
}

func titleLengthRule(in scoringInput) *Recommendation {
	title := strings.TrimSpace(in.meta.Title)
	length := utf8.RuneCountInString(title)
	if length == 0 {
		return nil
	}
	target := fmt.Sprintf("%d-%d characters", TitleMinimumLength, TitleMaximumLength)
	switch {
	case length < TitleMinimumLength:
		return &Recommendation{
			Category:     CategoryTechnical,
			Type:         SeverityWarning,
			Priority:     PriorityMedium,
			Title:        "Title Too Short",
			Description:  fmt.Sprintf("The title is %d characters long.", length),
			Suggestion:   "Add a qualifier such as the year, a number or the main benefit.",
			CurrentValue: fmt.Sprintf("%d characters", length),
			TargetValue:  target,
			Impact:       5,
		}
	case length > TitleMaximumLength:
		return &Recommendation{
			Category:     CategoryTechnical,
			Type:         SeverityWarning,
			Priority:     PriorityMedium,
			Title:        "Title Too Long",
			Description:  fmt.Sprintf("The title is %d characters long and will be truncated in search results.", length),
			Suggestion:   "Shorten the title and keep the focus keyword in the first half.",
			CurrentValue: fmt.Sprintf("%d characters", length),
			TargetValue:  target,
			Impact:       5,
		}
	}
	return nil
}

func metaDescriptionRule(in scoringInput) *Recommendation {
	desc := strings.TrimSpace(in.meta.MetaDescription)
	length := utf8.RuneCountInString(desc)
	target := fmt.Sprintf("%d-%d characters", MetaMinimumLength, MetaMaximumLength)
	switch {
	case length == 0:
		return &Recommendation{
			Category:    CategoryTechnical,
			Type:        SeverityError,
			Priority:    PriorityHigh,
			Title:       "Missing Meta Description",
			Description: "The article has no meta description, so search engines will pick a snippet themselves.",
			Suggestion:  "Write a meta description that includes the focus keyword and a reason to click.",
			TargetValue: target,
			Impact:      8,
		}
	case length < MetaMinimumLength:
		return &Recommendation{
			Category:     CategoryTechnical,
			Type:         SeverityWarning,
			Priority:     PriorityMedium,
			Title:        "Meta Description Too Short",
			Description:  fmt.Sprintf("The meta description is %d characters long.", length),
			Suggestion:   "Expand the description with the main benefit and a call to action.",
			CurrentValue: fmt.Sprintf("%d characters", length),
			TargetValue:  target,
			Impact:       5,
		}
	case length > MetaMaximumLength:
		return &Recommendation{
			Category:     CategoryTechnical,
			Type:         SeverityWarning,
			Priority:     PriorityMedium,
			Title:        "Meta Description Too Long",
			Description:  fmt.Sprintf("The meta description is %d characters long and will be truncated.", length),
			Suggestion:   "Trim the description so the key message fits before the cut-off.",
			CurrentValue: fmt.Sprintf("%d characters", length),
			TargetValue:  target,
			Impact:       4,
		}
	}
	return nil
}

func keywordDensityRule(in scoringInput) *Recommendation {
	if len(in.needle) == 0 || in.text.WordCount == 0 {
		return nil
	}
	density := in.focus.Density
	current := fmt.Sprintf("%.2f%%", density)
	target := fmt.Sprintf("%.1f%%-%.1f%%", DensityOptimal.Min, DensityOptimal.Max)
	switch {
	case density < DensityOptimal.Min:
		return &Recommendation{
			Category:     CategoryKeywords,
			Type:         SeverityWarning,
			Priority:     PriorityHigh,
			Title:        "Keyword Density Too Low",
			Description:  fmt.Sprintf("The focus keyword %q appears %d times.", in.focus.Keyword, in.focus.Frequency),
			Suggestion:   "Use the focus keyword naturally in the introduction, a subheading and the conclusion.",
			CurrentValue: current,
			TargetValue:  target,
			Impact:       7,
		}
	case density > DensityAcceptable.Max:
		return &Recommendation{
			Category:     CategoryKeywords,
			Type:         SeverityError,
			Priority:     PriorityHigh,
			Title:        "Keyword Density Too High",
			Description:  fmt.Sprintf("The focus keyword %q appears %d times, which reads as keyword stuffing.", in.focus.Keyword, in.focus.Frequency),
			Suggestion:   "Replace some occurrences with synonyms or secondary keywords.",
			CurrentValue: current,
			TargetValue:  target,
			Impact:       8,
		}
	}
	return nil
}

func readabilityRule(in scoringInput) *Recommendation {
	if in.text.WordCount == 0 || in.read.FleschReadingEase >= ReadabilityTarget {
		return nil
	}
	return &Recommendation{
		Category:     CategoryContent,
		Type:         SeverityWarning,
		Priority:     PriorityMedium,
		Title:        "Improve Readability",
		Description:  fmt.Sprintf("The Flesch Reading Ease score is %.1f (%s).", in.read.FleschReadingEase, in.read.TargetAudience),
		Suggestion:   "Use shorter sentences and plainer words. Break dense paragraphs into lists where possible.",
		CurrentValue: fmt.Sprintf("%.1f", in.read.FleschReadingEase),
		TargetValue:  fmt.Sprintf("%.0f+", ReadabilityTarget),
		Impact:       6,
	}
}

func missingH2Rule(in scoringInput) *Recommendation {
	if in.structure.Headings.H2 > 0 {
		return nil
	}
	return &Recommendation{
		Category:    CategoryContent,
		Type:        SeverityWarning,
		Priority:    PriorityMedium,
		Title:       "Missing H2 Headings",
		Description: "The content has no H2 subheadings.",
		Suggestion:  "Split the article into sections with descriptive H2 subheadings.",
		Impact:      6,
	}
}

func heroImageRule(in scoringInput) *Recommendation {
	if strings.TrimSpace(in.meta.HeroImageURL) != "" {
		return nil
	}
	return &Recommendation{
		Category:    CategoryUserExperience,
		Type:        SeverityWarning,
		Priority:    PriorityMedium,
		Title:       "Missing Hero Image",
		Description: "The article has no hero image.",
		Suggestion:  "Add a hero image; it is used for the article header and social sharing cards.",
		Impact:      5,
	}
}

func heroImageAltRule(in scoringInput) *Recommendation {
	if strings.TrimSpace(in.meta.HeroImageURL) == "" || strings.TrimSpace(in.meta.HeroImageAlt) != "" {
		return nil
	}
	return &Recommendation{
		Category:    CategoryUserExperience,
		Type:        SeverityWarning,
		Priority:    PriorityMedium,
		Title:       "Missing Hero Image Alt Text",
		Description: "The hero image has no alt text.",
		Suggestion:  "Describe the image in a short alt text, using the focus keyword where it fits.",
		Impact:      4,
	}
}

func internalLinksRule(in scoringInput) *Recommendation {
	if in.text.WordCount == 0 || in.structure.InternalLinks >= MinimumInternalLinks {
		return nil
	}
	return &Recommendation{
		Category:     CategoryTechnical,
		Type:         SeveritySuggestion,
		Priority:     PriorityLow,
		Title:        "Add Internal Links",
		Description:  fmt.Sprintf("The article links to %d other pages on the site.", in.structure.InternalLinks),
		Suggestion:   "Link to related card reviews and guides.",
		CurrentValue: fmt.Sprintf("%d", in.structure.InternalLinks),
		TargetValue:  fmt.Sprintf("%d+", MinimumInternalLinks),
		Impact:       3,
	}
}

func secondaryKeywordsRule(in scoringInput) *Recommendation {
	if len(in.needle) == 0 {
		return nil
	}
	if len(in.secondary) == 0 {
		return &Recommendation{
			Category:    CategoryKeywords,
			Type:        SeverityOptimization,
			Priority:    PriorityLow,
			Title:       "Add Secondary Keywords",
			Description: "No secondary keywords are set.",
			Suggestion:  "Add two or three related phrases readers also search for.",
			Impact:      2,
		}
	}
	var missing []string
	for _, ka := range in.secondary {
		if ka.Frequency == 0 && ka.Keyword != "" {
			missing = append(missing, ka.Keyword)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &Recommendation{
		Category:     CategoryKeywords,
		Type:         SeverityOptimization,
		Priority:     PriorityLow,
		Title:        "Use Secondary Keywords",
		Description:  fmt.Sprintf("These secondary keywords do not appear in the content: %s.", strings.Join(missing, ", ")),
		Suggestion:   "Work each secondary keyword into a relevant section.",
		CurrentValue: fmt.Sprintf("%d of %d used", len(in.secondary)-len(missing), len(in.secondary)),
		Impact:       3,
	}
}

package analyzer

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Component names used in Scores.Breakdown.
const (
	ComponentContentLength       = "contentLength"
	ComponentReadability         = "readability"
	ComponentStructure           = "structure"
	ComponentKeywordDensity      = "keywordDensity"
	ComponentKeywordDistribution = "keywordDistribution"
	ComponentLSIKeywords         = "lsiKeywords"
	ComponentTitle               = "titleOptimization"
	ComponentMetaDescription     = "metaDescription"
	ComponentURLStructure        = "urlStructure"
	ComponentInternalLinking     = "internalLinking"
	ComponentEngagement          = "engagement"
	ComponentVisualContent       = "visualContent"
	ComponentScannability        = "scannability"
)

// share is one component's percentage of a category.
type share struct {
	component string
	percent   float64
}

// blend lists the shares of a category in a fixed order so the weighted
// sum is computed identically on every call.
type blend []share

func (b blend) apply(components map[string]float64) float64 {
	total := 0.0
	for _, s := range b {
		total += components[s.component] * s.percent / 100
	}
	return clamp(total, 0, 100)
}

var cleanSlugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// scoringInput carries everything the component scorers look at.
type scoringInput struct {
	meta      Metadata
	text      TextMetrics
	read      ReadabilityScores
	structure ContentStructure
	focus     KeywordAnalysis
	secondary []KeywordAnalysis
	page      page
	needle    []string
}

func contentLengthScore(in scoringInput) float64 {
	return tierScore(ContentLengthTiers, float64(in.text.WordCount))
}

func readabilityScore(in scoringInput) float64 {
	if in.text.WordCount == 0 {
		return 0
	}
	score := bandScore(FleschEaseBands, in.read.FleschReadingEase, FleschEaseFallback)
	score += ceilingScore(GradeLevelCeilings, in.read.FleschKincaidGrade)
	score += ceilingScore(FogCeilings, in.read.GunningFog)
	return clamp(score, 0, 100)
}

func structureScore(in scoringInput) float64 {
	h := in.structure.Headings
	score := 0.0
	switch {
	case h.H1 == 1:
		score += StructureSingleH1
	case h.H1 > 1:
		score += StructureMultipleH1
	}
	if h.H2 > 0 {
		score += StructureH2
	}
	if h.H3 > 0 {
		score += StructureH3
	}
	if in.structure.Lists() > 0 {
		score += StructureLists
	}
	if in.structure.HasSemanticStructure {
		score += StructureSemantic
	}
	return clamp(score, 0, 100)
}

// DensityScore grades a keyword density percentage: full marks inside the
// optimal band, a linear ramp below it, a flat acceptable score just above
// it and a linear penalty that reaches zero at the maximum.
func DensityScore(density float64) float64 {
	switch {
	case density <= 0:
		return 0
	case density < DensityOptimal.Min:
		return density / DensityOptimal.Min * 100
	case density <= DensityOptimal.Max:
		return 100
	case density <= DensityAcceptable.Max:
		return DensityAcceptableScore
	case density < DensityMaximum:
		over := (density - DensityAcceptable.Max) / (DensityMaximum - DensityAcceptable.Max)
		return DensityAcceptableScore * (1 - over)
	}
	return 0
}

func keywordDensityScore(in scoringInput) float64 {
	return DensityScore(in.focus.Density)
}

func keywordDistributionScore(in scoringInput) float64 {
	if len(in.needle) == 0 {
		return 0
	}
	score := 0.0
	if containsPhrase(in.meta.Title, in.needle) {
		score += DistributionTitle
	}
	if slugContains(in.meta.Slug, in.needle) {
		score += DistributionSlug
	}
	if containsPhrase(in.meta.MetaDescription, in.needle) {
		score += DistributionMeta
	}
	if containsPhraseAny(in.page.h1, in.needle) {
		score += DistributionH1
	}
	if containsPhrase(in.page.firstParagraph, in.needle) {
		score += DistributionFirstParagraph
	}
	score += in.focus.Prominence / 100 * DistributionProminence
	return clamp(score, 0, 100)
}

func lsiKeywordScore(in scoringInput) float64 {
	if len(in.secondary) == 0 {
		return NeutralLSIScore
	}
	used := 0
	for _, ka := range in.secondary {
		if ka.Frequency > 0 {
			used++
		}
	}
	return float64(used) / float64(len(in.secondary)) * 100
}

func titleScore(in scoringInput) float64 {
	title := strings.TrimSpace(in.meta.Title)
	length := float64(utf8.RuneCountInString(title))
	if length == 0 {
		return 0
	}
	score := float64(TitlePresentScore)
	switch {
	case TitleIdeal.Contains(length):
		score = TitleIdealScore
	case TitleAcceptable.Contains(length):
		score = TitleAcceptableScore
	}
	if len(in.needle) > 0 {
		toks := tokens(title)
		if pos := findPhrase(toks, in.needle); len(pos) > 0 {
			switch {
			case pos[0] == 0:
				score += TitleKeywordLeading
			case pos[0] < (len(toks)+1)/2:
				score += TitleKeywordEarly
			default:
				score += TitleKeywordLate
			}
		}
	}
	return clamp(score, 0, 100)
}

func metaDescriptionScore(in scoringInput) float64 {
	desc := strings.TrimSpace(in.meta.MetaDescription)
	length := float64(utf8.RuneCountInString(desc))
	if length == 0 {
		return 0
	}
	score := float64(MetaPresentScore)
	switch {
	case MetaIdeal.Contains(length):
		score = MetaIdealScore
	case MetaAcceptable.Contains(length):
		score = MetaAcceptableScore
	}
	if containsPhrase(desc, in.needle) {
		score += MetaKeywordScore
	}
	if hasCallToAction(desc) {
		score += MetaCallToAction
	}
	return clamp(score, 0, 100)
}

func hasCallToAction(text string) bool {
	for _, word := range CallToActionWords {
		if containsPhrase(text, tokens(word)) {
			return true
		}
	}
	return false
}

// slugTokens splits a slug on its separators.
func slugTokens(slug string) []string {
	return strings.FieldsFunc(strings.ToLower(slug), func(r rune) bool {
		return r == '-' || r == '_' || r == '/' || r == ' ' || r == '.'
	})
}

func slugContains(slug string, needle []string) bool {
	if len(needle) == 0 {
		return false
	}
	var parts []string
	for _, n := range needle {
		parts = append(parts, slugTokens(n)...)
	}
	return len(findPhrase(slugTokens(slug), parts)) > 0
}

func urlStructureScore(in scoringInput) float64 {
	slug := strings.Trim(strings.TrimSpace(in.meta.Slug), "/")
	if slug == "" {
		return 0
	}
	score := 0.0
	if cleanSlugRe.MatchString(slug) {
		score += SlugCleanScore
	}
	switch length := utf8.RuneCountInString(slug); {
	case length <= SlugShortMax:
		score += SlugShortScore
	case length <= SlugMediumMax:
		score += SlugMediumScore
	}
	if slugContains(slug, in.needle) {
		score += SlugKeywordScore
	}
	return clamp(score, 0, 100)
}

func internalLinkingScore(in scoringInput) float64 {
	return tierScore(InternalLinkTiers, float64(in.structure.InternalLinks))
}

func engagementScore(in scoringInput) float64 {
	if in.text.WordCount == 0 {
		return 0
	}
	score := bandScore(ReadingTimeBands, float64(in.read.ReadingTimeMinutes), 0)
	perParagraph := float64(in.text.WordCount) / float64(in.text.ParagraphCount)
	score += bandScore(ParagraphLengthBands, perParagraph, ParagraphLengthFallback)
	score += bandScore(SentenceLengthBands, in.text.AverageSentenceLength, SentenceLengthFallback)
	return clamp(score, 0, 100)
}

func visualContentScore(in scoringInput) float64 {
	score := 0.0
	if strings.TrimSpace(in.meta.HeroImageURL) != "" {
		score += VisualHeroImage
		if strings.TrimSpace(in.meta.HeroImageAlt) != "" {
			score += VisualHeroAlt
		}
	}
	score += tierScore(BodyImageTiers, float64(in.structure.Images))
	return clamp(score, 0, 100)
}

func scannabilityScore(in scoringInput) float64 {
	h := in.structure.Headings
	subheadings := h.H2 + h.H3 + h.H4
	score := 0.0
	if subheadings > 0 && in.text.WordCount > 0 {
		score += ceilingScore(HeadingDensityCeilings, float64(in.text.WordCount)/float64(subheadings))
	}
	score += tierScore(ListTiers, float64(in.structure.Lists()))
	score += tierScore(LinkTiers, float64(in.structure.InternalLinks+in.structure.ExternalLinks))
	return clamp(score, 0, 100)
}

var componentScorers = map[string]func(scoringInput) float64{
	ComponentContentLength:       contentLengthScore,
	ComponentReadability:         readabilityScore,
	ComponentStructure:           structureScore,
	ComponentKeywordDensity:      keywordDensityScore,
	ComponentKeywordDistribution: keywordDistributionScore,
	ComponentLSIKeywords:         lsiKeywordScore,
	ComponentTitle:               titleScore,
	ComponentMetaDescription:     metaDescriptionScore,
	ComponentURLStructure:        urlStructureScore,
	ComponentInternalLinking:     internalLinkingScore,
	ComponentEngagement:          engagementScore,
	ComponentVisualContent:       visualContentScore,
	ComponentScannability:        scannabilityScore,
}

// computeScores scores every component and blends them into the four
// weighted categories. Category points are rounded individually and the
// overall score is their sum, so the parts always add up.
func computeScores(in scoringInput) Scores {
	components := make(map[string]float64, len(componentScorers))
	breakdown := make(map[string]int, len(componentScorers))
	for name, score := range componentScorers {
		v := clamp(score(in), 0, 100)
		components[name] = v
		breakdown[name] = int(math.Round(v))
	}

	weighted := func(b blend, weight float64) int {
		return int(math.Round(b.apply(components) * weight / 100))
	}

	s := Scores{
		ContentQuality:      weighted(contentQualityBlend, WeightContentQuality),
		KeywordOptimization: weighted(keywordOptimizationBlend, WeightKeywordOptimization),
		TechnicalSEO:        weighted(technicalSEOBlend, WeightTechnicalSEO),
		UserExperience:      weighted(userExperienceBlend, WeightUserExperience),
		Breakdown:           breakdown,
	}
	s.Overall = min(100, max(0, s.ContentQuality+s.KeywordOptimization+s.TechnicalSEO+s.UserExperience))
	return s
}

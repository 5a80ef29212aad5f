package analyzer

// TextMetrics holds the token-level counts derived from a piece of content
type TextMetrics struct {
	WordCount               int     `json:"wordCount"`
	SentenceCount           int     `json:"sentenceCount"`
	ParagraphCount          int     `json:"paragraphCount"`
	SyllableCount           int     `json:"syllableCount"`
	ComplexWordCount        int     `json:"complexWordCount"`
	CharacterCount          int     `json:"characterCount"`
	AverageSentenceLength   float64 `json:"averageSentenceLength"`
	AverageSyllablesPerWord float64 `json:"averageSyllablesPerWord"`
}

// ReadabilityScores holds the output of the six readability formulas
type ReadabilityScores struct {
	FleschReadingEase         float64  `json:"fleschReadingEase"`
	FleschKincaidGrade        float64  `json:"fleschKincaidGrade"`
	GunningFog                float64  `json:"gunningFog"`
	SMOG                      float64  `json:"smog"`
	AutomatedReadabilityIndex float64  `json:"automatedReadabilityIndex"`
	ColemanLiau               float64  `json:"colemanLiau"`
	ReadingTimeMinutes        int      `json:"readingTimeMinutes"`
	TargetAudience            string   `json:"targetAudience"`
	Recommendations           []string `json:"recommendations"`
}

// KeywordAnalysis describes how a single keyword is used in the content.
// IDF and TFIDF are nil unless a corpus was supplied and at least one
// corpus document contains the keyword.
type KeywordAnalysis struct {
	Keyword             string   `json:"keyword"`
	Frequency           int      `json:"frequency"`
	Density             float64  `json:"density"`
	Prominence          float64  `json:"prominence"`
	ContextualRelevance float64  `json:"contextualRelevance"`
	TermFrequency       float64  `json:"termFrequency"`
	IDF                 *float64 `json:"idf,omitempty"`
	TFIDF               *float64 `json:"tfIdf,omitempty"`
	Positions           []int    `json:"positions"`
}

// ContentStructure holds tag counts taken from the raw markup
type ContentStructure struct {
	Headings             HeadingCounts `json:"headings"`
	OrderedLists         int           `json:"orderedLists"`
	UnorderedLists       int           `json:"unorderedLists"`
	Paragraphs           int           `json:"paragraphs"`
	Images               int           `json:"images"`
	ImagesWithAlt        int           `json:"imagesWithAlt"`
	InternalLinks        int           `json:"internalLinks"`
	ExternalLinks        int           `json:"externalLinks"`
	HasSemanticStructure bool          `json:"hasSemanticStructure"`
}

type HeadingCounts struct {
	H1 int `json:"h1"`
	H2 int `json:"h2"`
	H3 int `json:"h3"`
	H4 int `json:"h4"`
	H5 int `json:"h5"`
	H6 int `json:"h6"`
}

// Lists returns the total number of ordered and unordered lists
func (s ContentStructure) Lists() int {
	return s.OrderedLists + s.UnorderedLists
}

// Metadata is the caller-supplied SEO metadata of an article
type Metadata struct {
	Title             string   `json:"title"`
	MetaDescription   string   `json:"metaDescription"`
	Slug              string   `json:"slug"`
	FocusKeyword      string   `json:"focusKeyword"`
	SecondaryKeywords []string `json:"secondaryKeywords,omitempty"`
	HeroImageURL      string   `json:"heroImageUrl,omitempty"`
	HeroImageAlt      string   `json:"heroImageAlt,omitempty"`
}

// Scores is the weighted score of an article. The four category values are
// weighted points and add up to Overall. Breakdown holds every component
// score on its own 0-100 scale.
type Scores struct {
	Overall             int            `json:"overall"`
	ContentQuality      int            `json:"contentQuality"`
	KeywordOptimization int            `json:"keywordOptimization"`
	TechnicalSEO        int            `json:"technicalSeo"`
	UserExperience      int            `json:"userExperience"`
	Breakdown           map[string]int `json:"breakdown"`
}

type Category string

const (
	CategoryContent        Category = "content"
	CategoryKeywords       Category = "keywords"
	CategoryTechnical      Category = "technical"
	CategoryUserExperience Category = "user-experience"
)

type Severity string

const (
	SeverityError        Severity = "error"
	SeverityWarning      Severity = "warning"
	SeveritySuggestion   Severity = "suggestion"
	SeverityOptimization Severity = "optimization"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank orders priorities from low (1) to critical (4)
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Recommendation is a single actionable finding. Impact (1-10) only
// influences presentation, never the sort order.
type Recommendation struct {
	Category     Category `json:"category"`
	Type         Severity `json:"type"`
	Priority     Priority `json:"priority"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Suggestion   string   `json:"suggestion"`
	CurrentValue string   `json:"currentValue,omitempty"`
	TargetValue  string   `json:"targetValue,omitempty"`
	Impact       int      `json:"impact"`
}

// Metrics groups the analyzer outputs a score was computed from
type Metrics struct {
	Text              TextMetrics       `json:"text"`
	Readability       ReadabilityScores `json:"readability"`
	Structure         ContentStructure  `json:"structure"`
	FocusKeyword      KeywordAnalysis   `json:"focusKeyword"`
	SecondaryKeywords []KeywordAnalysis `json:"secondaryKeywords"`
}

// Result is the complete analysis of an article
type Result struct {
	Scores          Scores           `json:"scores"`
	Recommendations []Recommendation `json:"recommendations"`
	Metrics         Metrics          `json:"metrics"`
}

// Clone returns a deep copy of r that shares no maps, slices or pointers
// with it.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	if r.Scores.Breakdown != nil {
		c.Scores.Breakdown = make(map[string]int, len(r.Scores.Breakdown))
		for k, v := range r.Scores.Breakdown {
			c.Scores.Breakdown[k] = v
		}
	}
	if r.Recommendations != nil {
		c.Recommendations = append([]Recommendation{}, r.Recommendations...)
	}
	if r.Metrics.Readability.Recommendations != nil {
		c.Metrics.Readability.Recommendations = append([]string{}, r.Metrics.Readability.Recommendations...)
	}
	c.Metrics.FocusKeyword = r.Metrics.FocusKeyword.clone()
	if r.Metrics.SecondaryKeywords != nil {
		c.Metrics.SecondaryKeywords = make([]KeywordAnalysis, len(r.Metrics.SecondaryKeywords))
		for i, ka := range r.Metrics.SecondaryKeywords {
			c.Metrics.SecondaryKeywords[i] = ka.clone()
		}
	}
	return &c
}

func (ka KeywordAnalysis) clone() KeywordAnalysis {
	if ka.Positions != nil {
		ka.Positions = append([]int{}, ka.Positions...)
	}
	if ka.IDF != nil {
		idf := *ka.IDF
		ka.IDF = &idf
	}
	if ka.TFIDF != nil {
		tfidf := *ka.TFIDF
		ka.TFIDF = &tfidf
	}
	return ka
}

package analyzer

// Policy tables. Scoring code only reads these; tuning a threshold never
// requires touching the scoring logic.

// Tier awards Score when a measured value is at least Min. Tier tables are
// ordered from the highest Min down.
type Tier struct {
	Min   float64
	Score float64
}

// Band awards Score when a measured value lies within [Min, Max].
type Band struct {
	Min   float64
	Max   float64
	Score float64
}

// Range is an inclusive acceptable range.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// tierScore returns the score of the first tier whose minimum is reached.
func tierScore(tiers []Tier, v float64) float64 {
	for _, t := range tiers {
		if v >= t.Min {
			return t.Score
		}
	}
	return 0
}

// bandScore returns the score of the first band containing v, or fallback.
func bandScore(bands []Band, v, fallback float64) float64 {
	for _, b := range bands {
		if v >= b.Min && v <= b.Max {
			return b.Score
		}
	}
	return fallback
}

// Category weights, in percent.
const (
	WeightContentQuality      = 35
	WeightKeywordOptimization = 30
	WeightTechnicalSEO        = 20
	WeightUserExperience      = 15
)

// Component blends inside each category, in percent.
var (
	contentQualityBlend = blend{
		{ComponentContentLength, 40},
		{ComponentReadability, 40},
		{ComponentStructure, 20},
	}
	keywordOptimizationBlend = blend{
		{ComponentKeywordDensity, 50},
		{ComponentKeywordDistribution, 35},
		{ComponentLSIKeywords, 15},
	}
	technicalSEOBlend = blend{
		{ComponentTitle, 40},
		{ComponentMetaDescription, 30},
		{ComponentURLStructure, 15},
		{ComponentInternalLinking, 15},
	}
	userExperienceBlend = blend{
		{ComponentEngagement, 55},
		{ComponentVisualContent, 25},
		{ComponentScannability, 20},
	}
)

// ContentLengthTiers maps word counts to the content length score.
var ContentLengthTiers = []Tier{
	{Min: 2500, Score: 100},
	{Min: 2000, Score: 70},
	{Min: 1500, Score: 60},
	{Min: 1000, Score: 40},
	{Min: 600, Score: 20},
}

const (
	// MinimumWordCount is the length below which content is too short.
	MinimumWordCount = 1000
	// TargetWordCount is the length of a complete long-form article.
	TargetWordCount = 2500
	WordsPerMinute  = 200
)

// Readability component tables. The three parts add up to 100.
var (
	FleschEaseBands = []Band{
		{Min: 60, Max: 80, Score: 40},
		{Min: 50, Max: 90, Score: 30},
		{Min: 30, Max: 100, Score: 20},
	}
	FleschEaseFallback = 10.0

	// GradeLevelCeilings and FogCeilings award points when the value is at most Min.
	GradeLevelCeilings = []Tier{
		{Min: 8, Score: 30},
		{Min: 10, Score: 20},
		{Min: 12, Score: 10},
	}
	FogCeilings = []Tier{
		{Min: 10, Score: 30},
		{Min: 12, Score: 20},
		{Min: 15, Score: 10},
	}
)

// ceilingScore is the mirror of tierScore for "lower is better" values.
func ceilingScore(tiers []Tier, v float64) float64 {
	for _, t := range tiers {
		if v <= t.Min {
			return t.Score
		}
	}
	return 0
}

// Structure points.
const (
	StructureSingleH1   = 30
	StructureMultipleH1 = 10
	StructureH2         = 25
	StructureH3         = 15
	StructureLists      = 15
	StructureSemantic   = 15
)

// Keyword density bands, in percent of total words.
var (
	DensityOptimal    = Range{Min: 0.5, Max: 1.5}
	DensityAcceptable = Range{Min: 1.5, Max: 2.5}
)

const (
	DensityAcceptableScore = 80
	DensityMaximum         = 5.0
)

// Keyword distribution points.
const (
	DistributionTitle          = 25
	DistributionSlug           = 15
	DistributionMeta           = 15
	DistributionH1             = 20
	DistributionFirstParagraph = 10
	DistributionProminence     = 15
)

// NeutralLSIScore is used when no secondary keywords were supplied.
const NeutralLSIScore = 50

// Title scoring.
var (
	TitleIdeal      = Range{Min: 50, Max: 60}
	TitleAcceptable = Range{Min: 30, Max: 70}
)

const (
	TitleIdealScore      = 60
	TitleAcceptableScore = 40
	TitlePresentScore    = 20
	TitleKeywordLeading  = 40
	TitleKeywordEarly    = 30
	TitleKeywordLate     = 20
)

// Meta description scoring.
var (
	MetaIdeal      = Range{Min: 150, Max: 160}
	MetaAcceptable = Range{Min: 120, Max: 170}
)

const (
	MetaIdealScore      = 50
	MetaAcceptableScore = 35
	MetaPresentScore    = 15
	MetaKeywordScore    = 30
	MetaCallToAction    = 20
)

// CallToActionWords trigger the meta description call-to-action bonus.
var CallToActionWords = []string{
	"learn", "discover", "find out", "get", "read", "explore", "book",
	"save", "earn", "start", "check", "see", "compare", "maximize",
}

// Slug scoring.
const (
	SlugCleanScore   = 40
	SlugKeywordScore = 40
	SlugShortScore   = 20
	SlugMediumScore  = 10
	SlugShortMax     = 60
	SlugMediumMax    = 75
)

// InternalLinkTiers maps internal link counts to the internal linking score.
var InternalLinkTiers = []Tier{
	{Min: 5, Score: 100},
	{Min: 3, Score: 80},
	{Min: 1, Score: 50},
}

const MinimumInternalLinks = 3

// Engagement tables. Each part tops out at its share of 100.
var (
	ReadingTimeBands = []Band{
		{Min: 7, Max: 15, Score: 40},
		{Min: 4, Max: 20, Score: 30},
		{Min: 1, Max: 1 << 20, Score: 15},
	}
	ParagraphLengthBands = []Band{
		{Min: 40, Max: 100, Score: 30},
		{Min: 1, Max: 40, Score: 20},
		{Min: 100, Max: 150, Score: 15},
	}
	ParagraphLengthFallback = 5.0
	SentenceLengthBands     = []Band{
		{Min: 12, Max: 20, Score: 30},
		{Min: 1, Max: 12, Score: 20},
		{Min: 20, Max: 25, Score: 15},
	}
	SentenceLengthFallback = 5.0
)

// Visual content points.
const (
	VisualHeroImage = 40
	VisualHeroAlt   = 20
)

var BodyImageTiers = []Tier{
	{Min: 3, Score: 40},
	{Min: 1, Score: 25},
}

// Scannability tables. Heading density is measured in words per subheading.
var (
	HeadingDensityCeilings = []Tier{
		{Min: 300, Score: 40},
		{Min: 500, Score: 25},
		{Min: 1 << 20, Score: 10},
	}
	ListTiers = []Tier{
		{Min: 2, Score: 30},
		{Min: 1, Score: 20},
	}
	LinkTiers = []Tier{
		{Min: 3, Score: 30},
		{Min: 1, Score: 15},
	}
)

// Recommendation thresholds.
const (
	ReadabilityTarget     = 60.0
	GradeLevelTarget      = 8.0
	LongSentenceWords     = 20.0
	ComplexWordPercentMax = 15.0
	FogTarget             = 12.0
	SyllablesPerWordMax   = 1.7
	MetaMinimumLength     = 120
	MetaMaximumLength     = 160
	TitleMinimumLength    = 30
	TitleMaximumLength    = 60
)

package analyzer

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Prominence points.
const (
	prominenceTitle          = 25
	prominenceH1             = 20
	prominenceSubheading     = 15
	prominenceFirstParagraph = 10
	prominencePositionMax    = 10
	prominenceCap            = 100
)

const (
	contextWindow        = 5
	contextWordMinLength = 3
	contextWordPoints    = 10
	relevanceCap         = 100
)

var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true, "an": true,
	"and": true, "any": true, "are": true, "as": true, "at": true, "be": true,
	"been": true, "but": true, "by": true, "can": true, "could": true, "did": true,
	"do": true, "does": true, "each": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "here": true, "his": true,
	"how": true, "if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "just": true, "more": true, "most": true, "not": true, "of": true,
	"on": true, "or": true, "our": true, "over": true, "she": true, "should": true,
	"so": true, "some": true, "such": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "to": true, "very": true, "was": true,
	"we": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "who": true, "will": true, "with": true,
	"would": true, "you": true, "your": true,
}

// page holds the text of the elements keyword placement is judged on.
type page struct {
	title          string
	h1             []string
	subheadings    []string
	firstParagraph string
}

// parsePage reads element text from markup. Plain text content yields an
// empty page apart from the first paragraph.
func parsePage(content string) page {
	var p page
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err == nil {
		p.title = doc.Find("title").First().Text()
		doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
			p.h1 = append(p.h1, s.Text())
		})
		doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
			p.subheadings = append(p.subheadings, s.Text())
		})
		if first := doc.Find("p").First(); first.Length() > 0 {
			p.firstParagraph = first.Text()
		}
	}
	if p.firstParagraph == "" {
		p.firstParagraph = firstTextBlock(content)
	}
	return p
}

// firstTextBlock returns the first non-empty blank-line separated block.
func firstTextBlock(content string) string {
	for _, block := range blankLineRe.Split(removeMarkup(content), -1) {
		if strings.TrimSpace(block) != "" {
			return block
		}
	}
	return ""
}

// AnalyzeKeyword measures how keyword is used in content. Matching is
// case-insensitive and token-exact: a multi-word keyword must appear as a
// contiguous word sequence. When corpus is non-empty and at least one of
// its documents contains the keyword, IDF and TF-IDF are filled in.
func AnalyzeKeyword(content, keyword string, corpus []string) KeywordAnalysis {
	return analyzeKeyword(tokens(StripHTML(content)), parsePage(content), keyword, corpus)
}

func analyzeKeyword(toks []string, pg page, keyword string, corpus []string) KeywordAnalysis {
	keyword = strings.TrimSpace(keyword)
	ka := KeywordAnalysis{Keyword: keyword, Positions: []int{}}

	needle := keywordTokens(keyword)
	if len(needle) == 0 || len(toks) == 0 {
		return ka
	}

	ka.Positions = findPhrase(toks, needle)
	ka.Frequency = len(ka.Positions)

	total := float64(len(toks))
	ka.TermFrequency = float64(ka.Frequency) / total
	ka.Density = ka.TermFrequency * 100
	ka.Prominence = prominence(pg, needle, ka.Positions, len(toks))
	ka.ContextualRelevance = contextualRelevance(toks, ka.Positions, len(needle))

	if len(corpus) > 0 {
		containing := 0
		for _, doc := range corpus {
			if len(findPhrase(tokens(StripHTML(doc)), needle)) > 0 {
				containing++
			}
		}
		if containing > 0 {
			idf := math.Log(float64(len(corpus)) / float64(containing))
			tfidf := ka.TermFrequency * idf
			ka.IDF = &idf
			ka.TFIDF = &tfidf
		}
	}
	return ka
}

// findPhrase returns every start index at which needle occurs in haystack.
func findPhrase(haystack, needle []string) []int {
	positions := []int{}
	if len(needle) == 0 {
		return positions
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, n := range needle {
			if haystack[i+j] != n {
				match = false
				break
			}
		}
		if match {
			positions = append(positions, i)
		}
	}
	return positions
}

// containsPhrase reports whether text contains needle as a token sequence.
func containsPhrase(text string, needle []string) bool {
	return len(needle) > 0 && len(findPhrase(tokens(text), needle)) > 0
}

func containsPhraseAny(texts []string, needle []string) bool {
	for _, t := range texts {
		if containsPhrase(t, needle) {
			return true
		}
	}
	return false
}

func prominence(pg page, needle []string, positions []int, total int) float64 {
	score := 0.0
	if containsPhrase(pg.title, needle) {
		score += prominenceTitle
	}
	if containsPhraseAny(pg.h1, needle) {
		score += prominenceH1
	}
	if containsPhraseAny(pg.subheadings, needle) {
		score += prominenceSubheading
	}
	if containsPhrase(pg.firstParagraph, needle) {
		score += prominenceFirstParagraph
	}
	for _, pos := range positions {
		score += prominencePositionMax * (1 - float64(pos)/float64(total))
	}
	return math.Min(score, prominenceCap)
}

// contextualRelevance scores the words around each occurrence. Every
// meaningful word (not a stopword, longer than three characters) within
// five words of the match is worth ten points.
func contextualRelevance(toks []string, positions []int, length int) float64 {
	if len(positions) == 0 {
		return 0
	}
	total := 0.0
	for _, pos := range positions {
		start := max(0, pos-contextWindow)
		end := min(len(toks), pos+length+contextWindow)
		relevant := 0
		for i := start; i < end; i++ {
			if i >= pos && i < pos+length {
				continue
			}
			t := toks[i]
			if utf8.RuneCountInString(t) > contextWordMinLength && !stopwords[t] {
				relevant++
			}
		}
		total += math.Min(float64(relevant*contextWordPoints), relevanceCap)
	}
	return math.Min(total/float64(len(positions)), relevanceCap)
}

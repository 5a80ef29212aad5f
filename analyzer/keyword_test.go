package analyzer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsContent = "<p>Travel cards are great. A travel card, or two travel cards!</p>"

func TestAnalyzeKeywordMatching(t *testing.T) {
	t.Run("multi-word phrase", func(t *testing.T) {
		ka := AnalyzeKeyword(cardsContent, "travel cards", nil)

		assert.Equal(t, "travel cards", ka.Keyword)
		assert.Equal(t, []int{0, 9}, ka.Positions)
		assert.Equal(t, 2, ka.Frequency)
		assert.InDelta(t, 2.0/11.0, ka.TermFrequency, 1e-12)
		assert.InDelta(t, 200.0/11.0, ka.Density, 1e-9)
	})

	t.Run("no substring matches", func(t *testing.T) {
		ka := AnalyzeKeyword(cardsContent, "card", nil)

		assert.Equal(t, []int{6}, ka.Positions)
		assert.Equal(t, 1, ka.Frequency)
	})

	t.Run("case insensitive", func(t *testing.T) {
		ka := AnalyzeKeyword(cardsContent, "  TRAVEL ", nil)

		assert.Equal(t, "TRAVEL", ka.Keyword)
		assert.Equal(t, 3, ka.Frequency)
	})

	t.Run("overlapping occurrences", func(t *testing.T) {
		ka := AnalyzeKeyword("go go go", "go go", nil)

		assert.Equal(t, []int{0, 1}, ka.Positions)
	})

	t.Run("empty keyword", func(t *testing.T) {
		ka := AnalyzeKeyword(cardsContent, "   ", nil)

		assert.Zero(t, ka.Frequency)
		assert.Zero(t, ka.Density)
		assert.NotNil(t, ka.Positions)
		assert.Empty(t, ka.Positions)
	})

	t.Run("empty content", func(t *testing.T) {
		ka := AnalyzeKeyword("", "miles", []string{"miles"})

		assert.Zero(t, ka.Frequency)
		assert.Nil(t, ka.IDF)
	})
}

func TestAnalyzeKeywordPunctuationOnly(t *testing.T) {
	for _, kw := range []string{"!!!", "?", " -- "} {
		t.Run(kw, func(t *testing.T) {
			ka := AnalyzeKeyword("Points -- miles -- hotels", kw, []string{"a -- b"})

			assert.Zero(t, ka.Frequency)
			assert.Zero(t, ka.Density)
			assert.Zero(t, ka.Prominence)
			assert.Equal(t, []int{}, ka.Positions)
			assert.Nil(t, ka.IDF)
		})
	}

	t.Run("punctuation inside a phrase is ignored", func(t *testing.T) {
		ka := AnalyzeKeyword("Points -- miles -- hotels", "miles !", nil)

		assert.Equal(t, []int{2}, ka.Positions)
	})
}

func TestAnalyzeKeywordCorpus(t *testing.T) {
	t.Run("no corpus leaves idf absent", func(t *testing.T) {
		ka := AnalyzeKeyword(cardsContent, "travel cards", nil)

		assert.Nil(t, ka.IDF)
		assert.Nil(t, ka.TFIDF)
	})

	t.Run("no matching document leaves idf absent", func(t *testing.T) {
		ka := AnalyzeKeyword(cardsContent, "travel cards", []string{"hotel points", "cheap flights"})

		assert.Nil(t, ka.IDF)
		assert.Nil(t, ka.TFIDF)
	})

	t.Run("idf and tf-idf", func(t *testing.T) {
		corpus := []string{"<p>Travel cards rock</p>", "hotel points", "cheap flights"}
		ka := AnalyzeKeyword(cardsContent, "travel cards", corpus)

		require.NotNil(t, ka.IDF)
		require.NotNil(t, ka.TFIDF)
		assert.InDelta(t, math.Log(3), *ka.IDF, 1e-12)
		assert.InDelta(t, 2.0/11.0*math.Log(3), *ka.TFIDF, 1e-12)
	})

	t.Run("every document matching gives zero idf", func(t *testing.T) {
		ka := AnalyzeKeyword(cardsContent, "travel", []string{"travel", "more travel"})

		require.NotNil(t, ka.IDF)
		assert.Zero(t, *ka.IDF)
	})
}

func TestProminence(t *testing.T) {
	html := "<title>Miles guide</title><h1>Miles</h1><h2>Earning miles</h2><p>miles are fun</p>"

	ka := AnalyzeKeyword(html, "miles", nil)

	// 25 + 20 + 15 + 10 for placement, then 10 + 7.5 + 5 + 3.75 for positions 0, 2, 4 and 5 of 8
	assert.Equal(t, []int{0, 2, 4, 5}, ka.Positions)
	assert.InDelta(t, 96.25, ka.Prominence, 1e-9)
}

func TestProminenceIsCapped(t *testing.T) {
	body := strings.Repeat("miles ", 40)
	html := "<title>miles</title><h1>miles</h1><h2>miles</h2><p>" + body + "</p>"

	ka := AnalyzeKeyword(html, "miles", nil)

	assert.Equal(t, 100.0, ka.Prominence)
}

func TestContextualRelevance(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"meaningful neighbours", "alpha bravo charlie delta echo miles foxtrot golf hotel india juliet", 100},
		{"stopwords and short words only", "the and miles to of", 0},
		{"mixed", "travel with miles", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := AnalyzeKeyword(tt.content, "miles", nil)
			assert.InDelta(t, tt.want, ka.ContextualRelevance, 1e-9)
		})
	}
}

func TestDensityIsScaleInvariant(t *testing.T) {
	text := "Earn miles on every trip. Miles add up when you book with the right card. "

	once := AnalyzeKeyword(text, "miles", nil)
	thrice := AnalyzeKeyword(strings.Repeat(text, 3), "miles", nil)

	assert.Equal(t, once.Frequency*3, thrice.Frequency)
	assert.InDelta(t, once.Density, thrice.Density, 1e-9)
	assert.Equal(t, DensityScore(once.Density), DensityScore(thrice.Density))
}

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/contentscore/analyzer"
)

func sampleResult() *analyzer.Result {
	return &analyzer.Result{
		Scores: analyzer.Scores{
			Overall:             72,
			ContentQuality:      30,
			KeywordOptimization: 22,
			TechnicalSEO:        12,
			UserExperience:      8,
			Breakdown: map[string]int{
				analyzer.ComponentReadability: 90,
				analyzer.ComponentTitle:       40,
			},
		},
		Recommendations: []analyzer.Recommendation{
			{
				Category:   analyzer.CategoryTechnical,
				Type:       analyzer.SeverityError,
				Priority:   analyzer.PriorityCritical,
				Title:      "Missing Meta Description",
				Suggestion: "Write a 150-160 character summary",
			},
			{
				Category: analyzer.CategoryContent,
				Type:     analyzer.SeveritySuggestion,
				Priority: analyzer.PriorityLow,
				Title:    "Add More Images",
			},
		},
		Metrics: analyzer.Metrics{
			Text:        analyzer.TextMetrics{WordCount: 1450},
			Readability: analyzer.ReadabilityScores{ReadingTimeMinutes: 7, FleschReadingEase: 64.2, TargetAudience: "8th-9th grade"},
		},
	}
}

func TestConsoleFormatter(t *testing.T) {
	tests := []struct {
		name            string
		verbose         bool
		result          *analyzer.Result
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:   "summary",
			result: sampleResult(),
			wantContains: []string{
				"posts/cards.md",
				"72/100",
				"Content quality",
				"30/35",
				"22/30",
				"12/20",
				"8/15",
				"1450 words, 7 min read, Flesch 64.2, 8th-9th grade",
				"Recommendations (2)",
				"critical Missing Meta Description",
				"Write a 150-160 character summary",
				"low      Add More Images",
			},
			wantNotContains: []string{"Breakdown"},
		},
		{
			name:         "verbose adds breakdown",
			verbose:      true,
			result:       sampleResult(),
			wantContains: []string{"Breakdown", analyzer.ComponentReadability, analyzer.ComponentTitle},
		},
		{
			name:         "no recommendations",
			result:       &analyzer.Result{},
			wantContains: []string{"0/100", "No recommendations"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewConsoleFormatter(&buf, tt.verbose).Format("posts/cards.md", tt.result))

			out := buf.String()
			assert.NotContains(t, out, "\x1b[", "no escape codes outside a terminal")
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.wantNotContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", 15)+strings.Repeat("░", 5), bar(30, 40))
	assert.Equal(t, strings.Repeat("█", 17)+strings.Repeat("░", 3), bar(30, analyzer.WeightContentQuality))
	assert.Equal(t, strings.Repeat("░", barWidth), bar(0, 10))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(12, 10))
	assert.Equal(t, strings.Repeat("░", barWidth), bar(5, 0))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format("posts/cards.md", sampleResult()))

	assert.Contains(t, buf.String(), "\n  \"file\"")

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "posts/cards.md", got.File)
	assert.Equal(t, sampleResult().Scores, got.Result.Scores)
}

func TestNew(t *testing.T) {
	f, err := New("", &bytes.Buffer{}, false)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleFormatter{}, f)

	f, err = New("json", &bytes.Buffer{}, false)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	_, err = New("markdown", &bytes.Buffer{}, false)
	assert.ErrorContains(t, err, "markdown")
}

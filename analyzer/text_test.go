package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"the", 1},
		{"a", 1},
		{"card", 1},
		{"travel", 2},
		{"make", 1},
		{"beautiful", 3},
		{"readability", 5},
		{"queue", 1},
		{"rhythm", 1},
		{"Hello!", 2},
		{"", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSyllables(tt.word))
		})
	}
}

func TestStripHTML(t *testing.T) {
	html := `<style>p { color: red }</style><h1>Miles</h1>
<script type="text/javascript">var x = "<p>hidden</p>";</script><p>Earn   <b>more</b></p>`

	assert.Equal(t, "Miles Earn more", StripHTML(html))
	assert.Equal(t, "", StripHTML("   "))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"paris", "rome", "london"}, tokens("Paris, ROME (London)!"))
	assert.Equal(t, []string{"it's", "", "done"}, tokens("it's -- done"))
	assert.Empty(t, tokens(""))
}

func TestExtractMetrics(t *testing.T) {
	t.Run("empty content", func(t *testing.T) {
		m := ExtractMetrics("")

		assert.Equal(t, 0, m.WordCount)
		assert.Equal(t, 1, m.SentenceCount)
		assert.Equal(t, 1, m.ParagraphCount)
		assert.Zero(t, m.AverageSentenceLength)
		assert.Zero(t, m.AverageSyllablesPerWord)
	})

	t.Run("plain text", func(t *testing.T) {
		m := ExtractMetrics("The cat sat. It was happy!\n\nA new paragraph starts here?")

		assert.Equal(t, 11, m.WordCount)
		assert.Equal(t, 3, m.SentenceCount)
		assert.Equal(t, 2, m.ParagraphCount)
		assert.InDelta(t, 11.0/3.0, m.AverageSentenceLength, 1e-9)
		// paragraph has three syllables under the vowel-group rule
		assert.Equal(t, 1, m.ComplexWordCount)
		assert.Equal(t, 14, m.SyllableCount)
	})

	t.Run("markup is not counted", func(t *testing.T) {
		m := ExtractMetrics(`<p class="intro">Two words.</p>`)

		assert.Equal(t, 2, m.WordCount)
		assert.Equal(t, len("Twowords."), m.CharacterCount)
	})

	t.Run("text without terminal punctuation is one sentence", func(t *testing.T) {
		m := ExtractMetrics("no punctuation at all")

		assert.Equal(t, 1, m.SentenceCount)
		assert.Equal(t, 4.0, m.AverageSentenceLength)
	})
}

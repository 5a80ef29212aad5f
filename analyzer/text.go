package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	sentenceEndRe = regexp.MustCompile(`[.!?]+`)
	blankLineRe   = regexp.MustCompile(`\n\s*\n`)
	vowelGroupRe  = regexp.MustCompile(`[aeiouy]+`)
	nonLetterRe   = regexp.MustCompile(`[^a-z]`)
	inlineSpaceRe = regexp.MustCompile(`[ \t\f\v]+`)
)

// removeMarkup drops script and style blocks and replaces every other tag
// with a single space. Line breaks are left alone.
func removeMarkup(content string) string {
	content = scriptBlockRe.ReplaceAllString(content, " ")
	content = styleBlockRe.ReplaceAllString(content, " ")
	return tagRe.ReplaceAllString(content, " ")
}

// StripHTML returns the visible text of content with whitespace collapsed.
func StripHTML(content string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(removeMarkup(content), " "))
}

// words splits stripped text on whitespace.
func words(text string) []string {
	return strings.Fields(text)
}

// tokens lowercases words and trims surrounding punctuation so that "Paris,"
// and "paris" compare equal. A token may end up empty; it is kept so that
// token positions line up with word positions.
func tokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	for i, f := range fields {
		fields[i] = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
	}
	return fields
}

// keywordTokens tokenizes a keyword, dropping tokens that were pure
// punctuation. An all-punctuation keyword yields no tokens.
func keywordTokens(keyword string) []string {
	var out []string
	for _, tok := range tokens(keyword) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func countSentences(text string) int {
	count := 0
	for _, fragment := range sentenceEndRe.Split(text, -1) {
		if strings.TrimSpace(fragment) != "" {
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

func countParagraphs(content string) int {
	text := inlineSpaceRe.ReplaceAllString(removeMarkup(content), " ")
	count := 0
	for _, block := range blankLineRe.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

// CountSyllables estimates the syllables in a word. It is a heuristic, not a
// dictionary lookup: words of up to three letters count as one syllable,
// longer words count their vowel groups minus a trailing silent "e".
func CountSyllables(word string) int {
	word = nonLetterRe.ReplaceAllString(strings.ToLower(word), "")
	if len(word) <= 3 {
		return 1
	}
	count := len(vowelGroupRe.FindAllString(word, -1))
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func countNonSpace(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

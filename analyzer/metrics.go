package analyzer

// ExtractMetrics derives token-level counts from content, which may contain
// HTML. Sentence and paragraph counts never drop below one so the averages
// downstream stay defined.
func ExtractMetrics(content string) TextMetrics {
	text := StripHTML(content)
	ws := words(text)

	m := TextMetrics{
		WordCount:      len(ws),
		SentenceCount:  countSentences(text),
		ParagraphCount: countParagraphs(content),
		CharacterCount: countNonSpace(text),
	}

	for _, w := range ws {
		syllables := CountSyllables(w)
		m.SyllableCount += syllables
		if syllables >= 3 {
			m.ComplexWordCount++
		}
	}

	m.AverageSentenceLength = float64(m.WordCount) / float64(m.SentenceCount)
	if m.WordCount > 0 {
		m.AverageSyllablesPerWord = float64(m.SyllableCount) / float64(m.WordCount)
	}
	return m
}

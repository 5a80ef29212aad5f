package analyzer

import (
	"fmt"
	"math"
)

// audienceLadder maps Flesch Reading Ease to a reader profile, highest first.
var audienceLadder = []struct {
	min   float64
	label string
}{
	{90, "Elementary school"},
	{80, "Middle school"},
	{70, "Junior high school"},
	{60, "High school"},
	{50, "Some college"},
	{30, "College graduate"},
}

const (
	audienceAcademic = "Academic/Professional"
	audienceUnknown  = "Not enough content"
)

// CalculateReadability extracts metrics from content and scores them.
func CalculateReadability(content string) ReadabilityScores {
	return ScoreReadability(ExtractMetrics(content))
}

// ScoreReadability applies the readability formulas to m. Flesch Reading
// Ease is clamped to [0, 100]; grade-level formulas are floored at zero.
func ScoreReadability(m TextMetrics) ReadabilityScores {
	if m.WordCount == 0 {
		return ReadabilityScores{
			TargetAudience:  audienceUnknown,
			Recommendations: []string{"Add content to evaluate readability"},
		}
	}

	words := float64(m.WordCount)
	sentences := float64(max(m.SentenceCount, 1))
	asl := m.AverageSentenceLength
	asw := m.AverageSyllablesPerWord

	s := ReadabilityScores{
		FleschReadingEase:         clamp(206.835-1.015*asl-84.6*asw, 0, 100),
		FleschKincaidGrade:        math.Max(0, 0.39*asl+11.8*asw-15.59),
		GunningFog:                0.4 * (asl + 100*float64(m.ComplexWordCount)/words),
		SMOG:                      1.043*math.Sqrt(float64(m.ComplexWordCount)*30/sentences) + 3.1291,
		AutomatedReadabilityIndex: math.Max(0, 4.71*(float64(m.CharacterCount)/words)+0.5*asl-21.43),
		ReadingTimeMinutes:        ReadingTime(m.WordCount),
	}

	l := float64(m.CharacterCount) / words * 100
	sl := sentences / words * 100
	s.ColemanLiau = math.Max(0, 0.0588*l-0.296*sl-15.8)

	s.TargetAudience = targetAudience(s.FleschReadingEase)
	s.Recommendations = readabilityAdvice(m, s)
	return s
}

// ReadingTime is the reading time in whole minutes, rounded up.
func ReadingTime(wordCount int) int {
	return int(math.Ceil(float64(wordCount) / WordsPerMinute))
}

func targetAudience(ease float64) string {
	for _, step := range audienceLadder {
		if ease >= step.min {
			return step.label
		}
	}
	return audienceAcademic
}

func readabilityAdvice(m TextMetrics, s ReadabilityScores) []string {
	advice := []string{}
	if s.FleschReadingEase < ReadabilityTarget {
		advice = append(advice, fmt.Sprintf(
			"Reading ease is %.1f; use shorter sentences and simpler words to reach %.0f or more", s.FleschReadingEase, ReadabilityTarget))
	}
	if s.FleschKincaidGrade > GradeLevelTarget {
		advice = append(advice, fmt.Sprintf(
			"Grade level is %.1f; aim for grade %.0f or lower so a general audience can follow", s.FleschKincaidGrade, GradeLevelTarget))
	}
	if m.AverageSentenceLength > LongSentenceWords {
		advice = append(advice, fmt.Sprintf(
			"Sentences average %.1f words; split sentences longer than %.0f words", m.AverageSentenceLength, LongSentenceWords))
	}
	complexShare := float64(m.ComplexWordCount) / float64(m.WordCount) * 100
	if complexShare > ComplexWordPercentMax || s.GunningFog > FogTarget {
		advice = append(advice, "Replace jargon and long words with plain alternatives")
	}
	if m.AverageSyllablesPerWord > SyllablesPerWordMax {
		advice = append(advice, "Prefer shorter words where a simpler one carries the same meaning")
	}
	return advice
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

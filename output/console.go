package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seo-optimizer/contentscore/analyzer"
)

const barWidth = 20

// categoryRow is one line of the category table with its maximum points
type categoryRow struct {
	name   string
	points int
	max    int
}

// ConsoleFormatter renders a scored article for a terminal
type ConsoleFormatter struct {
	w        io.Writer
	verbose  bool
	renderer *lipgloss.Renderer
}

// NewConsoleFormatter creates a ConsoleFormatter writing to w. Colors are
// only emitted when w is a terminal. verbose adds the component breakdown.
func NewConsoleFormatter(w io.Writer, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		w:        w,
		verbose:  verbose,
		renderer: lipgloss.NewRenderer(w),
	}
}

func (f *ConsoleFormatter) style(color string) lipgloss.Style {
	return f.renderer.NewStyle().Foreground(lipgloss.Color(color))
}

// scoreColor picks green, yellow or red for a 0-100 score
func scoreColor(pct float64) string {
	switch {
	case pct >= 80:
		return "10"
	case pct >= 50:
		return "3"
	default:
		return "9"
	}
}

func priorityColor(p analyzer.Priority) string {
	switch p {
	case analyzer.PriorityCritical:
		return "9"
	case analyzer.PriorityHigh:
		return "208"
	case analyzer.PriorityMedium:
		return "3"
	default:
		return "7"
	}
}

// Format writes the report for one article. name is usually the file path.
func (f *ConsoleFormatter) Format(name string, result *analyzer.Result) error {
	bold := f.renderer.NewStyle().Bold(true)
	dim := f.style("8")

	var b strings.Builder
	overall := result.Scores.Overall
	fmt.Fprintf(&b, "%s  %s\n\n",
		bold.Render(name),
		f.style(scoreColor(float64(overall))).Bold(true).Render(fmt.Sprintf("%d/100", overall)))

	rows := []categoryRow{
		{"Content quality", result.Scores.ContentQuality, analyzer.WeightContentQuality},
		{"Keyword optimization", result.Scores.KeywordOptimization, analyzer.WeightKeywordOptimization},
		{"Technical SEO", result.Scores.TechnicalSEO, analyzer.WeightTechnicalSEO},
		{"User experience", result.Scores.UserExperience, analyzer.WeightUserExperience},
	}
	for _, row := range rows {
		pct := float64(row.points) / float64(row.max) * 100
		fmt.Fprintf(&b, "  %-22s %s %2d/%d\n",
			row.name,
			f.style(scoreColor(pct)).Render(bar(row.points, row.max)),
			row.points, row.max)
	}

	if f.verbose && len(result.Scores.Breakdown) > 0 {
		b.WriteString("\n" + bold.Render("Breakdown") + "\n")
		names := make([]string, 0, len(result.Scores.Breakdown))
		for n := range result.Scores.Breakdown {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			score := result.Scores.Breakdown[n]
			fmt.Fprintf(&b, "  %-22s %s\n", n, f.style(scoreColor(float64(score))).Render(fmt.Sprintf("%3d", score)))
		}
	}

	text := result.Metrics.Text
	read := result.Metrics.Readability
	fmt.Fprintf(&b, "\n%s\n", dim.Render(fmt.Sprintf("%d words, %d min read, Flesch %.1f, %s",
		text.WordCount, read.ReadingTimeMinutes, read.FleschReadingEase, read.TargetAudience)))

	if len(result.Recommendations) == 0 {
		b.WriteString("\n" + f.style("10").Render("✓ No recommendations") + "\n")
	} else {
		fmt.Fprintf(&b, "\n%s\n", bold.Render(fmt.Sprintf("Recommendations (%d)", len(result.Recommendations))))
		for _, rec := range result.Recommendations {
			tag := f.style(priorityColor(rec.Priority)).Render(fmt.Sprintf("%-8s", rec.Priority))
			fmt.Fprintf(&b, "  %s %s\n", tag, rec.Title)
			if rec.Suggestion != "" {
				fmt.Fprintf(&b, "           %s\n", dim.Render(rec.Suggestion))
			}
		}
	}

	_, err := io.WriteString(f.w, b.String())
	return err
}

// bar draws a fixed-width progress bar for points out of total
func bar(points, total int) string {
	if total <= 0 {
		return strings.Repeat("░", barWidth)
	}
	filled := min(max(points*barWidth/total, 0), barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

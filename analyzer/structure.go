package analyzer

import (
	"regexp"
	"strings"
)

// Structure analysis counts opening tags with regular expressions rather
// than building a DOM. Unclosed or misnested tags are counted the same way
// they appear in the markup.
var (
	headingRe   = regexp.MustCompile(`(?i)<h([1-6])(?:\s[^>]*)?>`)
	orderedRe   = regexp.MustCompile(`(?i)<ol(?:\s[^>]*)?>`)
	unorderedRe = regexp.MustCompile(`(?i)<ul(?:\s[^>]*)?>`)
	paragraphRe = regexp.MustCompile(`(?i)<p(?:\s[^>]*)?>`)
	imageRe     = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	imageAltRe  = regexp.MustCompile(`(?i)\salt\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
	linkRe      = regexp.MustCompile(`(?i)<a\s[^>]*?href\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
	externalRe  = regexp.MustCompile(`(?i)^\s*https?://`)
	landmarkRe  = regexp.MustCompile(`(?i)<(?:article|section|nav|aside|header|footer|main)\b`)
)

// AnalyzeStructure counts headings, lists, paragraphs, images and links in
// html and reports whether any landmark element is present.
func AnalyzeStructure(html string) ContentStructure {
	var s ContentStructure

	for _, m := range headingRe.FindAllStringSubmatch(html, -1) {
		switch m[1] {
		case "1":
			s.Headings.H1++
		case "2":
			s.Headings.H2++
		case "3":
			s.Headings.H3++
		case "4":
			s.Headings.H4++
		case "5":
			s.Headings.H5++
		case "6":
			s.Headings.H6++
		}
	}

	s.OrderedLists = len(orderedRe.FindAllStringIndex(html, -1))
	s.UnorderedLists = len(unorderedRe.FindAllStringIndex(html, -1))
	s.Paragraphs = len(paragraphRe.FindAllStringIndex(html, -1))

	for _, img := range imageRe.FindAllString(html, -1) {
		s.Images++
		if alt := imageAltRe.FindStringSubmatch(img); alt != nil && strings.TrimSpace(firstGroup(alt)) != "" {
			s.ImagesWithAlt++
		}
	}

	for _, m := range linkRe.FindAllStringSubmatch(html, -1) {
		if externalRe.MatchString(firstGroup(m)) {
			s.ExternalLinks++
		} else {
			s.InternalLinks++
		}
	}

	s.HasSemanticStructure = landmarkRe.MatchString(html)
	return s
}

// firstGroup returns the first non-empty capture group of a submatch.
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

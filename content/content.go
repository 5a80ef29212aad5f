package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/seo-optimizer/contentscore/analyzer"
)

// Document is a draft ready to be scored
type Document struct {
	Path string
	// HTML is the body handed to the engine. Markdown is rendered first.
	HTML     string
	Metadata analyzer.Metadata
}

// FrontMatter holds the article settings a draft may declare at its top
type FrontMatter struct {
	Title             string   `yaml:"title"`
	Description       string   `yaml:"description"`
	Slug              string   `yaml:"slug"`
	Keyword           string   `yaml:"keyword"`
	SecondaryKeywords []string `yaml:"secondary_keywords"`
	HeroImage         string   `yaml:"hero_image"`
	HeroAlt           string   `yaml:"hero_alt"`
}

// Metadata converts the front matter to engine metadata
func (fm FrontMatter) Metadata() analyzer.Metadata {
	return analyzer.Metadata{
		Title:             fm.Title,
		MetaDescription:   fm.Description,
		Slug:              fm.Slug,
		FocusKeyword:      fm.Keyword,
		SecondaryKeywords: fm.SecondaryKeywords,
		HeroImageURL:      fm.HeroImage,
		HeroImageAlt:      fm.HeroAlt,
	}
}

var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// IsMarkdown reports whether path has a Markdown extension
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Load reads a draft from disk
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse builds a document from source. Front matter is read from any file
// type; Markdown bodies are rendered to HTML.
func Parse(path string, source []byte) (*Document, error) {
	prefix, body := StripFrontMatter(source)

	doc := &Document{Path: path}
	if prefix != nil {
		var fm FrontMatter
		if err := yaml.Unmarshal(frontMatterYAML(prefix), &fm); err != nil {
			return nil, fmt.Errorf("error parsing front matter in %s: %w", path, err)
		}
		doc.Metadata = fm.Metadata()
	}

	if IsMarkdown(path) {
		rendered, err := RenderMarkdown(body)
		if err != nil {
			return nil, fmt.Errorf("error rendering %s: %w", path, err)
		}
		doc.HTML = rendered
	} else {
		doc.HTML = string(body)
	}
	return doc, nil
}

// StripFrontMatter removes YAML front matter delimited by "---\n" from the
// beginning of source. It returns the front matter block (including
// delimiters) and the remaining content. Without front matter, prefix is
// nil and content equals source.
func StripFrontMatter(source []byte) (prefix, content []byte) {
	source = bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	delim := []byte("---\n")
	if !bytes.HasPrefix(source, delim) {
		return nil, source
	}
	rest := source[len(delim):]
	idx := bytes.Index(rest, delim)
	if idx < 0 {
		return nil, source
	}
	end := len(delim) + idx + len(delim)
	return source[:end], source[end:]
}

func frontMatterYAML(prefix []byte) []byte {
	inner := bytes.TrimPrefix(prefix, []byte("---\n"))
	return bytes.TrimSuffix(inner, []byte("---\n"))
}

// RenderMarkdown converts Markdown to HTML. Top-level blocks are separated
// by blank lines so paragraph counting sees one block per paragraph. Raw
// HTML in the source is passed through.
func RenderMarkdown(source []byte) (string, error) {
	root := markdown.Parser().Parse(text.NewReader(source))

	var blocks []string
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		var buf bytes.Buffer
		if err := markdown.Renderer().Render(&buf, source, node); err != nil {
			return "", err
		}
		if block := strings.TrimSpace(buf.String()); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// LoadCorpus loads every file matching a doublestar glob (such as
// "posts/**/*.md"), sorted by path, and returns their HTML bodies.
func LoadCorpus(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid corpus pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("error expanding corpus pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	corpus := make([]string, 0, len(matches))
	for _, path := range matches {
		doc, err := Load(path)
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, doc.HTML)
	}
	return corpus, nil
}

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/seo-optimizer/contentscore/analyzer"
)

// Report is the JSON document written for one article
type Report struct {
	File   string           `json:"file"`
	Result *analyzer.Result `json:"result"`
}

// JSONFormatter writes indented JSON reports
type JSONFormatter struct {
	enc *json.Encoder
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONFormatter{enc: enc}
}

func (f *JSONFormatter) Format(name string, result *analyzer.Result) error {
	return f.enc.Encode(Report{File: name, Result: result})
}

// Formatter renders a scored article
type Formatter interface {
	Format(name string, result *analyzer.Result) error
}

// New returns the formatter for format ("console" or "json")
func New(format string, w io.Writer, verbose bool) (Formatter, error) {
	switch format {
	case "", "console":
		return NewConsoleFormatter(w, verbose), nil
	case "json":
		return NewJSONFormatter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q (use console or json)", format)
}

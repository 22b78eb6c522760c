// Package output serializes command results to a writer in the format chosen
// by the root command's --format flag.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	case "":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use yaml or json)", s)
	}
}

// Printer writes values in one format.
type Printer struct {
	w      io.Writer
	format Format
	pretty bool
}

// NewPrinter creates a printer. A nil writer defaults to stdout.
func NewPrinter(w io.Writer, format Format, pretty bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w, format: format, pretty: pretty}
}

// Print serializes v in the printer's format.
func (p *Printer) Print(v interface{}) error {
	switch p.format {
	case FormatJSON:
		return p.printJSON(v)
	case FormatYAML:
		return p.printYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", p.format)
	}
}

func (p *Printer) printJSON(v interface{}) error {
	enc := json.NewEncoder(p.w)
	if p.pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func (p *Printer) printYAML(v interface{}) error {
	enc := yaml.NewEncoder(p.w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

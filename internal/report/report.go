package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ppiankov/gendiv/internal/model"
)

// Format selects how a report is rendered
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatMarkdown, FormatHTML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Renderer writes diversity and signature reports in one format
type Renderer struct {
	format Format
}

// NewRenderer creates a new renderer; an empty format means text
func NewRenderer(format Format) *Renderer {
	if format == "" {
		format = FormatText
	}
	return &Renderer{format: format}
}

// RenderDiversity writes a diversity report
func (r *Renderer) RenderDiversity(w io.Writer, rep *model.DiversityReport) error {
	switch r.format {
	case FormatText:
		return diversityText(w, rep)
	case FormatJSON:
		return renderJSON(w, rep)
	case FormatMarkdown:
		return diversityMarkdown(w, rep)
	case FormatHTML:
		return diversityHTML(w, rep)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// RenderSignatures writes a signature report
func (r *Renderer) RenderSignatures(w io.Writer, rep *model.SignatureReport) error {
	switch r.format {
	case FormatText:
		return signaturesText(w, rep)
	case FormatJSON:
		return renderJSON(w, rep)
	case FormatMarkdown:
		return signaturesMarkdown(w, rep)
	case FormatHTML:
		return signaturesHTML(w, rep)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func renderJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

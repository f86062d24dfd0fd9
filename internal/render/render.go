// Package render serializes an assembled Document into its delivery
// format. The format is a deployment choice; the document itself is
// format-agnostic.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/orastria/book-generator/internal/types"
	"github.com/orastria/book-generator/internal/zodiac"
)

// Format selects the output serialization.
type Format string

// Supported output formats.
const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a configured format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	case "":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown book format %q", name)
	}
}

// ContentType returns the MIME type for uploaded objects of this format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "application/pdf"
	}
}

// Extension returns the file extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	default:
		return "pdf"
	}
}

// Render serializes the document. Only the PDF path needs the context
// (headless Chrome); the text formats are pure.
func Render(ctx context.Context, doc *types.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return renderJSON(doc)
	case FormatMarkdown:
		return renderMarkdown(doc)
	case FormatPDF:
		return renderPDF(ctx, doc)
	default:
		return nil, fmt.Errorf("unknown book format %q", format)
	}
}

func renderJSON(doc *types.Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func renderMarkdown(doc *types.Document) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("# Your Cosmic Blueprint\n\n")
	fmt.Fprintf(&sb, "## %s\n\n", doc.Intake.Name)
	fmt.Fprintf(&sb, "%s · %s %s · %s\n\n",
		doc.Intake.BirthDate, doc.Intake.BirthTime, doc.Intake.BirthTimePeriod, doc.Intake.BirthPlace)
	fmt.Fprintf(&sb, "%s Sun · %s Moon · %s Rising\n\n",
		doc.Intake.SunSign, doc.Intake.MoonSign, doc.Intake.RisingSign)

	for _, section := range doc.Sections {
		if section.Percentage > 0 {
			fmt.Fprintf(&sb, "## %s — %d%%\n\n", section.Title, section.Percentage)
		} else {
			fmt.Fprintf(&sb, "## %s %s\n\n", sectionGlyph(section), section.Title)
		}
		sb.WriteString(strings.TrimSpace(section.Body))
		sb.WriteString("\n\n")
	}

	sb.WriteString("*With cosmic blessings, Orastria*\n")
	return []byte(sb.String()), nil
}

// sectionGlyph decorates the big-three headings with their zodiac glyph.
func sectionGlyph(section types.Section) string {
	switch section.Key {
	case types.SectionSunSign, types.SectionMoonSign, types.SectionRisingSign:
		for _, field := range strings.Fields(section.Title) {
			if zodiac.Valid(field) {
				return zodiac.Symbol(field)
			}
		}
	}
	return "✦"
}

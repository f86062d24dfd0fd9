// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintIntake outputs a human-readable summary of the normalized intake.
func (p *Printer) PrintIntake(in *types.Intake) {
	if in == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", in.Name))
	sb.WriteString(fmt.Sprintf("Born:     %s, %s %s\n", in.BirthDate, in.BirthTime, in.BirthTimePeriod))
	sb.WriteString(fmt.Sprintf("Place:    %s\n", in.BirthPlace))
	sb.WriteString("\n")
	sb.WriteString("Chart:\n")
	sb.WriteString(fmt.Sprintf("  • Sun     %s\n", in.SunSign))
	sb.WriteString(fmt.Sprintf("  • Moon    %s\n", in.MoonSign))
	sb.WriteString(fmt.Sprintf("  • Rising  %s\n", in.RisingSign))
	if in.Venus != "" {
		sb.WriteString(fmt.Sprintf("  • Venus   %s\n", in.Venus))
	}
	if in.Mars != "" {
		sb.WriteString(fmt.Sprintf("  • Mars    %s\n", in.Mars))
	}

	p.printBox("NORMALIZED INTAKE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNumerology outputs the computed numerology profile.
func (p *Printer) PrintNumerology(num numerology.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Life Path:   %d", num.LifePath))
	if numerology.IsMasterNumber(num.LifePath) {
		sb.WriteString("  (master number)")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Expression:  %d", num.Expression))
	if numerology.IsMasterNumber(num.Expression) {
		sb.WriteString("  (master number)")
	}

	p.printBox("NUMEROLOGY", sb.String())
}

// PrintSections outputs generated sections in book order with a body
// preview per section.
func (p *Printer) PrintSections(sections []types.Section) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d sections:\n\n", len(sections)))

	count := min(len(sections), maxItemsToShow)
	for i := 0; i < count; i++ {
		section := sections[i]
		sb.WriteString(fmt.Sprintf("• %s", section.Title))
		if section.Percentage > 0 {
			sb.WriteString(fmt.Sprintf(" (%d%%)", section.Percentage))
		}
		sb.WriteString("\n")
		body := section.Body
		if len(body) > 50 {
			body = body[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", body))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(sections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more sections", len(sections)-maxItemsToShow))
	}

	p.printBox("GENERATED SECTIONS", sb.String())
}

// PrintResult outputs where the finished book ended up.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResult(filename, url string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:  %s\n", filename))
	if url != "" {
		sb.WriteString(fmt.Sprintf("URL:   %s", url))
	} else {
		sb.WriteString("URL:   (not published)")
	}

	p.printBox("✅ BOOK READY", sb.String())
}

package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/orastria/book-generator/internal/types"
	"github.com/orastria/book-generator/internal/zodiac"
)

// Book print design: navy cover, gold accents, cream pages.
const bookTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  :root {
    --navy: #1a1f3c;
    --gold: #c9a961;
    --cream: #f8f5f0;
    --soft-gold: #d4b87a;
  }
  @page { size: letter; margin: 0.75in; }
  body {
    font-family: Georgia, 'Times New Roman', serif;
    color: var(--navy);
    background: var(--cream);
    line-height: 1.55;
  }
  .cover {
    text-align: center;
    padding: 3in 0.5in;
    background: var(--navy);
    color: var(--cream);
    border: 2px solid var(--gold);
    page-break-after: always;
  }
  .cover h1 {
    color: var(--gold);
    font-size: 34pt;
    letter-spacing: 0.15em;
    margin-bottom: 0.4in;
  }
  .cover .name { font-size: 24pt; margin-bottom: 0.2in; }
  .cover .birth { color: var(--soft-gold); font-size: 11pt; }
  .cover .signs { color: var(--gold); font-size: 16pt; margin-top: 0.3in; }
  .section { page-break-before: always; }
  .section h2 {
    color: var(--gold);
    border-bottom: 1px solid var(--gold);
    padding-bottom: 6px;
    font-size: 18pt;
  }
  .section .glyph { font-size: 26pt; color: var(--gold); }
  .section .body { white-space: pre-wrap; font-size: 11pt; }
  .meter {
    height: 10px;
    background: #ecf0f1;
    border-radius: 5px;
    margin: 8px 0 16px;
  }
  .meter .fill { height: 100%; border-radius: 5px; }
  .closing-brand {
    color: var(--gold);
    font-size: 20pt;
    letter-spacing: 0.2em;
    margin-top: 0.4in;
  }
</style>
</head>
<body>
  <div class="cover">
    <h1>YOUR COSMIC<br>BLUEPRINT</h1>
    <div class="name">{{.Doc.Intake.Name}}</div>
    <div class="birth">{{.Doc.Intake.BirthDate}} &bull; {{.Doc.Intake.BirthTime}} {{.Doc.Intake.BirthTimePeriod}}</div>
    <div class="birth">{{.Doc.Intake.BirthPlace}}</div>
    <div class="signs">{{.SunSymbol}} {{.Doc.Intake.SunSign}} &nbsp; {{.MoonSymbol}} {{.Doc.Intake.MoonSign}} &nbsp; {{.RisingSymbol}} {{.Doc.Intake.RisingSign}}</div>
  </div>
{{range .Sections}}
  <div class="section">
    <h2><span class="glyph">{{.Glyph}}</span> {{.Title}}</h2>
{{if .HasMeter}}    <div class="meter"><div class="fill" style="width: {{.Percentage}}%; background: {{.MeterColor}};"></div></div>
{{end}}    <div class="body">{{.Body}}</div>
  </div>
{{end}}
  <div class="closing-brand">ORASTRIA</div>
</body>
</html>
`

var bookTmpl = template.Must(template.New("book").Parse(bookTemplate))

type sectionView struct {
	Title      string
	Body       string
	Glyph      string
	HasMeter   bool
	Percentage int
	MeterColor template.CSS
}

type bookView struct {
	Doc          *types.Document
	SunSymbol    string
	MoonSymbol   string
	RisingSymbol string
	Sections     []sectionView
}

// renderHTML produces the self-contained HTML document that the PDF path
// prints.
func renderHTML(doc *types.Document) (string, error) {
	view := bookView{
		Doc:          doc,
		SunSymbol:    zodiac.Symbol(doc.Intake.SunSign),
		MoonSymbol:   zodiac.Symbol(doc.Intake.MoonSign),
		RisingSymbol: zodiac.Symbol(doc.Intake.RisingSign),
	}
	for _, section := range doc.Sections {
		view.Sections = append(view.Sections, sectionView{
			Title:      section.Title,
			Body:       section.Body,
			Glyph:      sectionGlyph(section),
			HasMeter:   section.Percentage > 0,
			Percentage: section.Percentage,
			MeterColor: meterColor(section.Percentage),
		})
	}

	var buf bytes.Buffer
	if err := bookTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("rendering book HTML: %w", err)
	}
	return buf.String(), nil
}

// meterColor maps a compatibility percentage to its bar color.
func meterColor(percentage int) template.CSS {
	switch {
	case percentage >= 80:
		return "#2ecc71"
	case percentage >= 65:
		return "#f1c40f"
	case percentage >= 50:
		return "#e67e22"
	default:
		return "#e74c3c"
	}
}

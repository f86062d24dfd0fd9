package render

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/types"
)

func testDocument() *types.Document {
	return &types.Document{
		BookID: "abc12345",
		Intake: types.Intake{
			Name:            "Alex Rivera",
			BirthDate:       "1990-07-15",
			BirthTime:       "08:30",
			BirthTimePeriod: "AM",
			BirthPlace:      "Lisbon, Portugal",
			SunSign:         "Cancer",
			MoonSign:        "Pisces",
			RisingSign:      "Virgo",
		},
		Numerology: numerology.Result{LifePath: 5, Expression: 7},
		Sections: []types.Section{
			{Key: types.SectionIntroduction, Title: "Introduction", Body: "Welcome to your blueprint."},
			{Key: types.SectionSunSign, Title: "Your Sun in Cancer", Body: "Sun essay."},
			{Key: types.CompatibilityKey("Aries"), Title: "Cancer & Aries", Body: "A spirited pairing.", Percentage: 82},
			{Key: types.SectionClosing, Title: "Closing Thoughts", Body: "Farewell."},
		},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Provider:    "replicate",
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Format
		wantError bool
	}{
		{name: "pdf", input: "pdf", want: FormatPDF},
		{name: "markdown", input: "markdown", want: FormatMarkdown},
		{name: "md alias", input: "md", want: FormatMarkdown},
		{name: "json uppercase", input: "JSON", want: FormatJSON},
		{name: "empty defaults to pdf", input: "", want: FormatPDF},
		{name: "unknown", input: "epub", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "pdf", FormatPDF.Extension())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "md", FormatMarkdown.Extension())
}

func TestRenderJSONRoundTrips(t *testing.T) {
	doc := testDocument()

	raw, err := Render(context.Background(), doc, FormatJSON)
	require.NoError(t, err)

	var decoded types.Document
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, doc.BookID, decoded.BookID)
	assert.Len(t, decoded.Sections, len(doc.Sections))
	assert.Equal(t, 82, decoded.Sections[2].Percentage)
}

func TestRenderMarkdown(t *testing.T) {
	raw, err := Render(context.Background(), testDocument(), FormatMarkdown)
	require.NoError(t, err)
	md := string(raw)

	assert.Contains(t, md, "# Your Cosmic Blueprint")
	assert.Contains(t, md, "## Alex Rivera")
	assert.Contains(t, md, "Cancer Sun · Pisces Moon · Virgo Rising")
	assert.Contains(t, md, "## Cancer & Aries — 82%")
	assert.Contains(t, md, "## ♋ Your Sun in Cancer")
	assert.Contains(t, md, "Welcome to your blueprint.")
}

func TestRenderHTML(t *testing.T) {
	html, err := renderHTML(testDocument())
	require.NoError(t, err)

	assert.Contains(t, html, "Alex Rivera")
	assert.Contains(t, html, "YOUR COSMIC")
	assert.Contains(t, html, "width: 82%")
	assert.Contains(t, html, "#2ecc71", "82% gets the green band")
	assert.Contains(t, html, "♋")
}

func TestMeterColorBands(t *testing.T) {
	assert.Equal(t, "#2ecc71", string(meterColor(80)))
	assert.Equal(t, "#f1c40f", string(meterColor(70)))
	assert.Equal(t, "#e67e22", string(meterColor(55)))
	assert.Equal(t, "#e74c3c", string(meterColor(30)))
}

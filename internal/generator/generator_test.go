package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orastria/book-generator/internal/llm"
	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/types"
	"github.com/orastria/book-generator/internal/zodiac"
)

// fakeClient produces canned responses and can be told to fail prompts
// containing a marker string.
type fakeClient struct {
	failOn     string
	jsonBroken bool
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.GenerateOptions) (string, error) {
	if f.failOn != "" && strings.Contains(prompt, f.failOn) {
		return "", errors.New("upstream failure")
	}
	return "Generated body text.", nil
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.GenerateOptions) (string, error) {
	if f.failOn != "" && strings.Contains(prompt, f.failOn) {
		return "", errors.New("upstream failure")
	}
	if f.jsonBroken {
		return "{not json", nil
	}

	if strings.Contains(prompt, "compatibility") {
		entries := make(map[string]compatibilityEntry)
		for _, sign := range zodiac.Order {
			entries[sign] = compatibilityEntry{
				Text:       fmt.Sprintf("Reading for %s.", sign),
				Percentage: 70,
			}
		}
		raw, err := json.Marshal(entries)
		return string(raw), err
	}

	entries := make(map[string]string)
	for _, month := range zodiac.Months {
		entries[month] = fmt.Sprintf("Forecast for %s.", month)
	}
	raw, err := json.Marshal(entries)
	return string(raw), err
}

func (f *fakeClient) Close() error { return nil }

func testIntake() *types.Intake {
	return &types.Intake{
		Name:            "Alex Rivera",
		BirthDate:       "1990-07-15",
		BirthTime:       "08:30",
		BirthTimePeriod: "AM",
		BirthPlace:      "Lisbon, Portugal",
		SunSign:         "Cancer",
		MoonSign:        "Pisces",
		RisingSign:      "Virgo",
		Outlook:         "Optimist",
	}
}

func TestGenerateProducesAllSections(t *testing.T) {
	gen := New(&fakeClient{}, Options{MaxConcurrent: 3, ForecastYear: 2026})

	sections, err := gen.Generate(context.Background(), testIntake(), numerology.Result{LifePath: 5, Expression: 7})
	require.NoError(t, err)

	// 12 scalar + 12 compatibility + 12 monthly
	assert.Len(t, sections, 36)

	compatCount, monthlyCount, forecastCount := 0, 0, 0
	for key := range sections {
		switch {
		case strings.HasPrefix(key, "compatibility/"):
			compatCount++
		case strings.HasPrefix(key, "monthly/"):
			monthlyCount++
		case key == types.SectionForecast:
			forecastCount++
		}
	}
	assert.Equal(t, 12, compatCount, "one compatibility entry per zodiac sign")
	assert.Equal(t, 12, monthlyCount, "one forecast per month")
	assert.Equal(t, 1, forecastCount, "exactly one yearly forecast")

	sun := sections[types.SectionSunSign]
	assert.Equal(t, "Your Sun in Cancer", sun.Title)
	assert.NotEmpty(t, sun.Body)

	aries := sections[types.CompatibilityKey("Aries")]
	assert.Equal(t, "Cancer & Aries", aries.Title)
	assert.Equal(t, 70, aries.Percentage)

	january := sections[types.MonthlyKey("January")]
	assert.Equal(t, "January 2026", january.Title)
}

func TestGenerateFailsWholeOnSectionFailure(t *testing.T) {
	gen := New(&fakeClient{failOn: "tarot"}, Options{MaxConcurrent: 2, ForecastYear: 2026})

	sections, err := gen.Generate(context.Background(), testIntake(), numerology.Result{LifePath: 5})
	require.Error(t, err)
	assert.Nil(t, sections)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, types.SectionTarot, genErr.Section)
}

func TestGenerateFailsOnUnparseableBatch(t *testing.T) {
	gen := New(&fakeClient{jsonBroken: true}, Options{MaxConcurrent: 2, ForecastYear: 2026})

	_, err := gen.Generate(context.Background(), testIntake(), numerology.Result{LifePath: 5})
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, []string{"compatibility", "monthly"}, genErr.Section)
}

func TestValidateAgainstSchema(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		schema    string
		wantError bool
	}{
		{
			name:     "valid compatibility entry",
			document: `{"Aries": {"text": "Good match.", "percentage": 82}}`,
			schema:   compatibilitySchema,
		},
		{
			name:      "percentage out of range",
			document:  `{"Aries": {"text": "Good match.", "percentage": 150}}`,
			schema:    compatibilitySchema,
			wantError: true,
		},
		{
			name:      "missing text",
			document:  `{"Aries": {"percentage": 82}}`,
			schema:    compatibilitySchema,
			wantError: true,
		},
		{
			name:     "valid monthly entry",
			document: `{"January": "A month of growth."}`,
			schema:   monthlySchema,
		},
		{
			name:      "empty monthly body",
			document:  `{"January": ""}`,
			schema:    monthlySchema,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAgainstSchema(tt.document, tt.schema)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildContextInterpolatesIntake(t *testing.T) {
	block := buildContext(testIntake(), numerology.Result{LifePath: 5, Expression: 7})

	assert.Contains(t, block, "Alex Rivera")
	assert.Contains(t, block, "Cancer (Water)")
	assert.Contains(t, block, "Pisces (Water)")
	assert.Contains(t, block, "Virgo (Earth)")
	assert.Contains(t, block, "Life Path 5")
	assert.Contains(t, block, "Venus: Unknown")
	assert.NotContains(t, block, "{{.")
}

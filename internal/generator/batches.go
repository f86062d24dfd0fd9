package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/orastria/book-generator/internal/llm"
	"github.com/orastria/book-generator/internal/prompts"
	"github.com/orastria/book-generator/internal/types"
)

// batchAttempts bounds how often a structurally invalid batch response is
// re-requested. The llm client already retries transport failures; this
// guards against well-formed calls returning unparseable JSON.
const batchAttempts = 2

// compatibilitySchema validates the batched compatibility response:
// sign name -> { text, percentage }.
const compatibilitySchema = `{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {
		"type": "object",
		"required": ["text", "percentage"],
		"properties": {
			"text": {"type": "string", "minLength": 1},
			"percentage": {"type": "integer", "minimum": 0, "maximum": 100}
		},
		"additionalProperties": false
	}
}`

// monthlySchema validates the batched monthly response: month -> text.
const monthlySchema = `{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {"type": "string", "minLength": 1}
}`

// compatibilityEntry matches one sign's value in the batch response.
type compatibilityEntry struct {
	Text       string `json:"text"`
	Percentage int    `json:"percentage"`
}

// generateCompatibilityBatch requests compatibility readings for a batch
// of signs in one JSON call and returns one section per sign.
func (g *Generator) generateCompatibilityBatch(ctx context.Context, in *types.Intake, contextBlock string, signs []string) ([]types.Section, error) {
	template := prompts.MustGet(prompts.BatchesFile, "compatibility")
	prompt := prompts.Format(template, map[string]string{
		"SunSign": in.SunSign,
		"Signs":   strings.Join(signs, ", "),
	}) + "\n\nContext:\n" + contextBlock

	var entries map[string]compatibilityEntry
	err := g.requestBatch(ctx, prompt, compatibilitySchema, &entries)
	if err != nil {
		return nil, err
	}

	sections := make([]types.Section, 0, len(signs))
	for _, sign := range signs {
		entry, ok := entries[sign]
		if !ok {
			return nil, fmt.Errorf("response is missing sign %q", sign)
		}
		sections = append(sections, types.Section{
			Key:        types.CompatibilityKey(sign),
			Title:      in.SunSign + " & " + sign,
			Body:       entry.Text,
			Percentage: entry.Percentage,
		})
	}
	return sections, nil
}

// generateMonthlyBatch requests forecasts for a batch of months in one
// JSON call and returns one section per month.
func (g *Generator) generateMonthlyBatch(ctx context.Context, contextBlock string, months []string) ([]types.Section, error) {
	template := prompts.MustGet(prompts.BatchesFile, "monthly")
	prompt := prompts.Format(template, map[string]string{
		"ForecastYear": strconv.Itoa(g.opts.ForecastYear),
		"Months":       strings.Join(months, ", "),
	}) + "\n\nContext:\n" + contextBlock

	var entries map[string]string
	err := g.requestBatch(ctx, prompt, monthlySchema, &entries)
	if err != nil {
		return nil, err
	}

	sections := make([]types.Section, 0, len(months))
	for _, month := range months {
		text, ok := entries[month]
		if !ok {
			return nil, fmt.Errorf("response is missing month %q", month)
		}
		sections = append(sections, types.Section{
			Key:   types.MonthlyKey(month),
			Title: fmt.Sprintf("%s %d", month, g.opts.ForecastYear),
			Body:  text,
		})
	}
	return sections, nil
}

// requestBatch calls the LLM for a JSON document, validates it against
// the schema and decodes it into out. Invalid documents are re-requested
// a bounded number of times.
func (g *Generator) requestBatch(ctx context.Context, prompt, schema string, out any) error {
	var lastErr error
	for attempt := 0; attempt < batchAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		raw, err := g.client.GenerateJSON(ctx, prompt, llm.GenerateOptions{MaxTokens: batchMaxTokens})
		if err != nil {
			return err
		}

		if err := validateAgainstSchema(raw, schema); err != nil {
			lastErr = err
			continue
		}
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			lastErr = fmt.Errorf("decoding batch response: %w", err)
			continue
		}
		return nil
	}
	return fmt.Errorf("batch response invalid after %d attempts: %w", batchAttempts, lastErr)
}

// validateAgainstSchema checks a raw JSON document against an embedded
// JSON schema.
func validateAgainstSchema(document, schema string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(issues, "; "))
	}
	return nil
}

// Package generator turns a normalized intake into the full set of book
// sections by issuing one LLM prompt per section. Section tasks are
// independent; they run concurrently under a bounded limit and any
// section that exhausts its retries fails the whole generation.
package generator

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orastria/book-generator/internal/llm"
	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/prompts"
	"github.com/orastria/book-generator/internal/types"
	"github.com/orastria/book-generator/internal/zodiac"
)

// Per-call token caps sized to the section word counts in the prompts.
const (
	sectionMaxTokens = 1500
	batchMaxTokens   = 2500
)

// batchSize is how many signs/months are requested per batched JSON call.
const batchSize = 6

// Options configures a Generator.
type Options struct {
	// MaxConcurrent bounds how many generation calls are in flight at
	// once, to respect provider rate limits.
	MaxConcurrent int
	// ForecastYear is the year the yearly/monthly forecasts cover.
	// Zero means next calendar year.
	ForecastYear int
	// OnSection, when set, is called after each section completes.
	OnSection func(key string)
}

// Generator produces section bodies through an LLM client.
type Generator struct {
	client llm.Client
	opts   Options
}

// New creates a Generator over the given client.
func New(client llm.Client, opts Options) *Generator {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if opts.ForecastYear == 0 {
		opts.ForecastYear = time.Now().Year() + 1
	}
	return &Generator{client: client, opts: opts}
}

// scalarSections lists the single-call sections in their prompt-file
// order together with their display titles.
func scalarSections(in *types.Intake, num numerology.Result, forecastYear int) []struct {
	key   string
	title string
} {
	return []struct {
		key   string
		title string
	}{
		{types.SectionIntroduction, "Introduction"},
		{types.SectionSunSign, "Your Sun in " + in.SunSign},
		{types.SectionMoonSign, "Your Moon in " + in.MoonSign},
		{types.SectionRisingSign, "Your " + in.RisingSign + " Rising"},
		{types.SectionPersonality, "Your Inner World"},
		{types.SectionLove, "Love & Relationships"},
		{types.SectionCareer, "Career & Purpose"},
		{types.SectionForecast, fmt.Sprintf("Your %d Forecast", forecastYear)},
		{types.SectionNumerology, fmt.Sprintf("Life Path %d", num.LifePath)},
		{types.SectionTarot, "Tarot Guidance"},
		{types.SectionCrystals, "Crystals & Rituals"},
		{types.SectionClosing, "Closing Thoughts"},
	}
}

// Generate produces every book section keyed by section key. On any
// section failure the context for the remaining tasks is cancelled and
// the first error is returned.
func (g *Generator) Generate(ctx context.Context, in *types.Intake, num numerology.Result) (map[string]types.Section, error) {
	contextBlock := buildContext(in, num)
	style := prompts.MustGet(prompts.SectionsFile, "style")

	results := make(map[string]types.Section)
	var mu sync.Mutex

	store := func(sections ...types.Section) {
		mu.Lock()
		defer mu.Unlock()
		for _, section := range sections {
			results[section.Key] = section
			if g.opts.OnSection != nil {
				g.opts.OnSection(section.Key)
			}
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.opts.MaxConcurrent)

	for _, section := range scalarSections(in, num, g.opts.ForecastYear) {
		group.Go(func() error {
			body, err := g.generateScalar(groupCtx, section.key, in, num, contextBlock, style)
			if err != nil {
				return &GenerationError{Section: section.key, Cause: err}
			}
			store(types.Section{Key: section.key, Title: section.title, Body: body})
			return nil
		})
	}

	for batchStart := 0; batchStart < len(zodiac.Order); batchStart += batchSize {
		signs := zodiac.Order[batchStart : batchStart+batchSize]
		group.Go(func() error {
			sections, err := g.generateCompatibilityBatch(groupCtx, in, contextBlock, signs)
			if err != nil {
				return &GenerationError{Section: "compatibility", Cause: err}
			}
			store(sections...)
			return nil
		})
	}

	for batchStart := 0; batchStart < len(zodiac.Months); batchStart += batchSize {
		months := zodiac.Months[batchStart : batchStart+batchSize]
		group.Go(func() error {
			sections, err := g.generateMonthlyBatch(groupCtx, contextBlock, months)
			if err != nil {
				return &GenerationError{Section: "monthly", Cause: err}
			}
			store(sections...)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// generateScalar issues the single prompt for one scalar section.
func (g *Generator) generateScalar(ctx context.Context, key string, in *types.Intake, num numerology.Result, contextBlock, style string) (string, error) {
	template, err := prompts.Get(prompts.SectionsFile, key)
	if err != nil {
		return "", err
	}

	brief := prompts.Format(template, map[string]string{
		"SunSign":      in.SunSign,
		"MoonSign":     in.MoonSign,
		"RisingSign":   in.RisingSign,
		"LifePath":     strconv.Itoa(num.LifePath),
		"Expression":   strconv.Itoa(num.Expression),
		"ForecastYear": strconv.Itoa(g.opts.ForecastYear),
	})

	prompt := brief + "\n\nContext:\n" + contextBlock + "\n\n" + style
	return g.client.GenerateContent(ctx, prompt, llm.GenerateOptions{MaxTokens: sectionMaxTokens})
}

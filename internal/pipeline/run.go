// Package pipeline provides the high-level orchestration for one book
// generation request: numerology, section generation, assembly,
// rendering and publication.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orastria/book-generator/internal/book"
	"github.com/orastria/book-generator/internal/config"
	"github.com/orastria/book-generator/internal/generator"
	"github.com/orastria/book-generator/internal/llm"
	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/render"
	"github.com/orastria/book-generator/internal/storage"
	"github.com/orastria/book-generator/internal/types"
)

// ProgressEvent represents a progress update during a pipeline run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	// Intake must already be normalized and validated.
	Intake *types.Intake
	Config *config.Config

	// Client overrides the config-built LLM client (tests, CLI reuse).
	Client llm.Client
	// Publisher overrides the config-built B2 publisher. When the run is
	// local-only (CLI --output), leave Config publishing off and set
	// SkipPublish.
	Publisher   storage.Publisher
	SkipPublish bool

	ForecastYear int
	OnProgress   ProgressCallback
}

// Result is the outcome of one successful run.
type Result struct {
	BookID   string
	Filename string
	URL      string
	Format   render.Format
	Content  []byte
	Document *types.Document
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}

// Run executes the full pipeline for one normalized intake. On any
// failure nothing is published; the error carries the failing stage's
// typed error for the HTTP layer to map.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: config is required")
	}
	if opts.Intake == nil {
		return nil, fmt.Errorf("pipeline: intake is required")
	}

	format, err := render.ParseFormat(cfg.BookFormat)
	if err != nil {
		return nil, err
	}

	emitProgress(&opts, "numerology", "computing numerology")
	num, err := numerology.Calculate(opts.Intake.BirthDate, opts.Intake.Name)
	if err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client, err = llm.NewClient(ctx, llmConfig(cfg))
		if err != nil {
			return nil, err
		}
		defer func() { _ = client.Close() }()
	}

	emitProgress(&opts, "generate", fmt.Sprintf("generating sections for %s", opts.Intake.Name))
	gen := generator.New(client, generator.Options{
		MaxConcurrent: cfg.MaxConcurrentSections,
		ForecastYear:  opts.ForecastYear,
		OnSection: func(key string) {
			emitProgress(&opts, "section", key)
		},
	})
	sections, err := gen.Generate(ctx, opts.Intake, num)
	if err != nil {
		return nil, err
	}

	bookID := uuid.New().String()[:8]
	emitProgress(&opts, "assemble", "assembling document")
	doc, err := book.Assemble(bookID, opts.Intake, num, sections, cfg.Provider)
	if err != nil {
		return nil, err
	}

	emitProgress(&opts, "render", string(format))
	content, err := render.Render(ctx, doc, format)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BookID:   bookID,
		Filename: storage.ObjectKey(opts.Intake.Name, bookID, format.Extension()),
		Format:   format,
		Content:  content,
		Document: doc,
	}

	if opts.SkipPublish {
		return result, nil
	}

	publisher := opts.Publisher
	if publisher == nil {
		publisher, err = storage.NewB2Publisher(ctx, storage.B2Config{
			KeyID:    cfg.B2KeyID,
			AppKey:   cfg.B2AppKey,
			Bucket:   cfg.B2Bucket,
			Endpoint: cfg.B2Endpoint,
			Region:   cfg.B2Region,
		})
		if err != nil {
			return nil, err
		}
	}

	emitProgress(&opts, "publish", result.Filename)
	url, err := publisher.Publish(ctx, result.Filename, content, format.ContentType())
	if err != nil {
		return nil, err
	}
	result.URL = url

	return result, nil
}

// llmConfig maps process configuration onto the LLM call policy.
func llmConfig(cfg *config.Config) *llm.Config {
	llmCfg := llm.DefaultConfig()
	llmCfg.Provider = llm.Provider(cfg.Provider)
	llmCfg.ReplicateToken = cfg.ReplicateToken
	llmCfg.ReplicateModel = cfg.ReplicateModel
	llmCfg.GeminiAPIKey = cfg.GeminiAPIKey
	llmCfg.GeminiModel = cfg.GeminiModel
	if cfg.LLMTimeout > 0 {
		llmCfg.Timeout = cfg.LLMTimeout
	}
	llmCfg.MaxRetries = cfg.LLMMaxRetries
	return llmCfg
}

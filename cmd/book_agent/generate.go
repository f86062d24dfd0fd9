package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orastria/book-generator/internal/config"
	"github.com/orastria/book-generator/internal/intake"
	"github.com/orastria/book-generator/internal/observability"
	"github.com/orastria/book-generator/internal/pipeline"
	"github.com/orastria/book-generator/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one book from a quiz payload file",
	Long: `Generate a personalized book from a JSON quiz payload and either
publish it to object storage or write it to a local file.

The payload file accepts both request shapes: the structured form with
user_data and chart_data objects, and the flat form posted by form
builders.`,
	RunE: runGenerate,
}

var (
	generateInput   string
	generateOutput  string
	generateFormat  string
	generateYear    int
	generateVerbose bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Path to quiz payload JSON file (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the book to a local file instead of uploading")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Book format: pdf, markdown or json (overrides BOOK_FORMAT)")
	generateCmd.Flags().IntVar(&generateYear, "year", 0, "Forecast year (defaults to next calendar year)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed progress information")

	_ = generateCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.FromEnv()
	if cmd.Flags().Changed("format") {
		cfg.BookFormat = generateFormat
	}

	local := generateOutput != ""
	if local {
		if err := cfg.ValidateLocal(); err != nil {
			return err
		}
	} else if err := cfg.Validate(); err != nil {
		return err
	}

	in, err := loadPayload(generateInput)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if generateVerbose {
		printer.PrintIntake(in)
	}

	opts := pipeline.RunOptions{
		Intake:       in,
		Config:       cfg,
		SkipPublish:  local,
		ForecastYear: generateYear,
	}
	if generateVerbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Printf("  [%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if local {
		if err := os.WriteFile(generateOutput, result.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", generateOutput, err)
		}
		printer.PrintResult(generateOutput, "")
		return nil
	}

	printer.PrintResult(result.Filename, result.URL)
	return nil
}

// loadPayload reads a quiz payload file in either request shape and
// normalizes it.
func loadPayload(path string) (*types.Intake, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}

	if _, ok := keys["user_data"]; ok {
		var req types.GenerateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("parsing payload: %w", err)
		}
		return intake.FromStructured(&req)
	}

	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	return intake.FromFlat(flat)
}

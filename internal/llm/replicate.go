package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/replicate/replicate-go"
)

// ReplicateClient implements Client for Claude models hosted on Replicate.
// A generation is a prediction: create it, wait for a terminal status,
// join the streamed output chunks.
type ReplicateClient struct {
	client     *replicate.Client
	modelOwner string
	modelName  string
}

// NewReplicateClient creates a new Replicate-backed client
func NewReplicateClient(config *Config) (*ReplicateClient, error) {
	if config.ReplicateToken == "" {
		return nil, fmt.Errorf("replicate API token is required")
	}

	owner, name, ok := strings.Cut(config.ReplicateModel, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid replicate model %q, expected owner/name", config.ReplicateModel)
	}

	client, err := replicate.NewClient(replicate.WithToken(config.ReplicateToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create replicate client: %w", err)
	}

	return &ReplicateClient{
		client:     client,
		modelOwner: owner,
		modelName:  name,
	}, nil
}

// GenerateContent generates free-form text for a prompt
func (c *ReplicateClient) GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	input := replicate.PredictionInput{
		"prompt": prompt,
	}
	if opts.MaxTokens > 0 {
		input["max_tokens"] = opts.MaxTokens
	}

	prediction, err := c.client.CreatePredictionWithModel(ctx, c.modelOwner, c.modelName, input, nil, false)
	if err != nil {
		return "", fmt.Errorf("failed to create prediction: %w", err)
	}

	if err := c.client.Wait(ctx, prediction); err != nil {
		return "", fmt.Errorf("failed waiting for prediction %s: %w", prediction.ID, err)
	}

	if prediction.Status != replicate.Succeeded {
		return "", fmt.Errorf("prediction %s ended with status %s: %v", prediction.ID, prediction.Status, prediction.Error)
	}

	text, err := joinPredictionOutput(prediction.Output)
	if err != nil {
		return "", fmt.Errorf("prediction %s: %w", prediction.ID, err)
	}
	return text, nil
}

// GenerateJSON generates a JSON document for a prompt
func (c *ReplicateClient) GenerateJSON(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	text, err := c.GenerateContent(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	return cleanJSONBlock(text), nil
}

// Close releases resources held by the client
func (c *ReplicateClient) Close() error {
	return nil
}

// joinPredictionOutput flattens a prediction output into one string.
// Claude predictions stream the text as a list of chunks.
func joinPredictionOutput(output any) (string, error) {
	switch value := output.(type) {
	case nil:
		return "", fmt.Errorf("no output in prediction")
	case string:
		return value, nil
	case []any:
		var sb strings.Builder
		for _, chunk := range value {
			text, ok := chunk.(string)
			if !ok {
				return "", fmt.Errorf("unexpected output chunk type %T", chunk)
			}
			sb.WriteString(text)
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("unexpected output type %T", output)
	}
}

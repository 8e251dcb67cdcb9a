package reasoner

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"domainbid/internal/config"
)

// Client produces completion text for a prompt pair. Implementations must be
// safe for concurrent use.
type Client interface {
	Reason(ctx context.Context, system, user string) (string, error)
}

// GeminiClient asks the Gemini API for strategy proposals.
type GeminiClient struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
}

func NewGeminiClient(ctx context.Context, cfg config.ReasonerConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("reasoner api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	maxTokens := int32(cfg.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &GeminiClient{
		client:          client,
		model:           model,
		temperature:     float32(cfg.Temperature),
		maxOutputTokens: maxTokens,
	}, nil
}

// Reason sends both prompts as a single text turn and returns the raw
// completion. The response MIME type keeps the model on plain JSON.
func (c *GeminiClient) Reason(ctx context.Context, system, user string) (string, error) {
	contents := genai.Text(system + "\n\n" + user)
	gc := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		MaxOutputTokens:  c.maxOutputTokens,
		ResponseMIMEType: "application/json",
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, gc)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", errors.New("no content generated")
	}
	return text, nil
}

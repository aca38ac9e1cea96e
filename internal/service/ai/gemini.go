package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator calls one Gemini model through the genai client.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini API client authenticated with apiKey.
// baseURL overrides the API endpoint when non-empty.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return client, nil
}

// NewGeminiGenerator binds client to model.
func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{client: client, model: model}
}

// Model implements Generator.
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		if isGeminiQuotaError(err) {
			return "", fmt.Errorf("gemini %s: %w: %w", g.model, ErrQuotaExhausted, err)
		}
		return "", fmt.Errorf("gemini %s: generate content: %w", g.model, err)
	}
	// Safety blocks and candidates without parts come back as empty text.
	text := ""
	if resp != nil {
		text = strings.TrimSpace(resp.Text())
	}
	if text == "" {
		return "", fmt.Errorf("gemini %s: %w", g.model, errEmptyResponse)
	}
	return text, nil
}

func isGeminiQuotaError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	return strings.Contains(err.Error(), "RESOURCE_EXHAUSTED")
}

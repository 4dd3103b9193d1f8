package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient generates text through the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func NewGeminiClient(ctx context.Context, apiKey, model, systemPrompt string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client failed: %w", err)
	}

	var cfg *genai.GenerateContentConfig
	if systemPrompt != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
	}
	return &GeminiClient{client: client, model: model, config: cfg}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return resp.Text(), nil
}

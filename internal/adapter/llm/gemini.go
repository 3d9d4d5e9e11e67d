package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini calls the Gemini API.
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a Gemini API client for apiKey.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

// CompleteModel sends prompt as a single text turn.
func (g *Gemini) CompleteModel(ctx context.Context, model, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return result.Text(), nil
}

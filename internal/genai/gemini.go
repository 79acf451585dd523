package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type geminiGenerator struct {
	client *genai.Client
	model  string
}

// newGeminiGenerator creates the Gemini-backed generator.
// Returns nil when apiKey is empty (provider disabled).
func newGeminiGenerator(ctx context.Context, apiKey, model string) (*geminiGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // provider disabled when no API key
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiGenerator{
		client: client,
		model:  model,
	}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, question, factContext string) (string, error) {
	if g == nil {
		return "", errors.New("gemini generator not configured")
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   500,
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(buildUserPrompt(question, factContext)),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return "", errors.New("empty generation response")
	}
	return answer, nil
}

func (g *geminiGenerator) Provider() Provider { return ProviderGemini }

func (g *geminiGenerator) IsEnabled() bool { return g != nil }

// Close is a no-op, the genai client needs no explicit cleanup.
func (g *geminiGenerator) Close() error { return nil }

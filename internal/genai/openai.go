package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type openaiGenerator struct {
	client openai.Client
	model  string
}

// newOpenAIGenerator creates the OpenAI-backed generator. An empty
// baseURL uses the default endpoint; a non-empty one points the client
// at an OpenAI-compatible service.
// Returns nil when apiKey is empty (provider disabled).
func newOpenAIGenerator(apiKey, model, baseURL string) *openaiGenerator {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &openaiGenerator{
		client: client,
		model:  model,
	}
}

func (g *openaiGenerator) Generate(ctx context.Context, question, factContext string) (string, error) {
	if g == nil {
		return "", errors.New("openai generator not configured")
	}

	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(question, factContext)),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(500),
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &APIError{Err: err, StatusCode: apiErr.StatusCode, Provider: ProviderOpenAI}
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("empty completion content")
	}
	return answer, nil
}

func (g *openaiGenerator) Provider() Provider { return ProviderOpenAI }

func (g *openaiGenerator) IsEnabled() bool { return g != nil }

func (g *openaiGenerator) Close() error { return nil }

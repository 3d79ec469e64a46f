// Package ai_processing forwards topic lists to an LLM and returns cleaned
// suggestion lines for the frontend topic picker.
package ai_processing

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Completer is the slice of the LLM API this package needs.
type Completer interface {
	Complete(ctx context.Context, model, apiKey, prompt string) (string, error)
}

// Client calls an OpenAI-compatible chat completion endpoint. The base URL is
// configurable so tests and gateway deployments can point it elsewhere.
type Client struct {
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

func (c *Client) Complete(ctx context.Context, model, apiKey, prompt string) (string, error) {
	cfg := openai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

package completion

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// chatCompleter mirrors the single go-openai method ChatClient depends on so
// tests can substitute a fake without a server.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatClient adapts an OpenAI-compatible chat endpoint to the Client
// interface. Shared generation constants apply; top-k and repetition penalty
// have no chat API equivalent and are omitted.
type ChatClient struct {
	Inner   chatCompleter
	ModelID string
}

func (c *ChatClient) Model() string { return c.ModelID }

func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.Inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.ModelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   MaxOutputTokens,
		Temperature: Temperature,
		TopP:        TopP,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", &EnvelopeError{Reason: "chat response has no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

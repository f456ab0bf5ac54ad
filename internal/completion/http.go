package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient speaks the hosted completion protocol: one POST carrying the
// prompt and the fixed generation configuration, answered by an output
// envelope holding a list of choices.
type HTTPClient struct {
	// Endpoint is the full URL of the completion endpoint, used as given.
	Endpoint string
	APIKey   string
	ModelID  string
	// HTTPClient overrides the default transport when non-nil.
	HTTPClient *http.Client
}

func (c *HTTPClient) Model() string { return c.ModelID }

type completionRequest struct {
	Model             string  `json:"model"`
	Prompt            string  `json:"prompt"`
	MaxTokens         int     `json:"max_tokens"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	TopK              int     `json:"top_k"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

// Choices stay raw because backends disagree on their shape: an object with
// a text field, or the generated text itself.
type completionResponse struct {
	Output *completionOutput `json:"output"`
}

type completionOutput struct {
	Choices []json.RawMessage `json:"choices"`
	Text    json.RawMessage   `json:"text"`
}

// Complete posts the prompt and extracts the generated text from the first
// choice. The error type signals whether another attempt could succeed:
// transport failures, StatusError and EnvelopeError are worth retrying,
// ContractError is not.
func (c *HTTPClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:             c.ModelID,
		Prompt:            prompt,
		MaxTokens:         MaxOutputTokens,
		Temperature:       Temperature,
		TopP:              TopP,
		TopK:              TopK,
		RepetitionPenalty: RepetitionPenalty,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: snippet(body)}
	}
	return extractText(body)
}

// extractText navigates the envelope checking every expected field
// explicitly. A missing or mistyped envelope level is retryable; a choice
// that is present but cannot yield a string is not.
func extractText(body []byte) (string, error) {
	var env completionResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return "", &EnvelopeError{Reason: "undecodable body"}
	}
	if env.Output == nil {
		return "", &EnvelopeError{Reason: "missing output"}
	}
	if len(env.Output.Choices) == 0 {
		// Single-field variant some backends answer with.
		if len(env.Output.Text) > 0 {
			var s string
			if err := json.Unmarshal(env.Output.Text, &s); err == nil {
				return s, nil
			}
		}
		return "", &EnvelopeError{Reason: "output has no choices"}
	}
	return textFromChoice(env.Output.Choices[0])
}

func textFromChoice(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", &EnvelopeError{Reason: "undecodable choice"}
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case map[string]any:
		text, ok := t["text"]
		if !ok {
			return "", &ContractError{Reason: "choice has no text field"}
		}
		s, ok := text.(string)
		if !ok {
			return "", &ContractError{Reason: "choice text is not a string"}
		}
		return s, nil
	default:
		return "", &ContractError{Reason: "choice holds no extractable text"}
	}
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		s = s[:max]
	}
	return s
}

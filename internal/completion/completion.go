package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Generation parameters sent with every request. The tool produces exactly
// one kind of output, so these are fixed rather than per-call options.
const (
	MaxOutputTokens   = 1024
	Temperature       = 0.3
	TopP              = 0.8
	TopK              = 50
	RepetitionPenalty = 1.1
)

// API styles understood by NewClient.
const (
	APICompletion = "completion"
	APIChat       = "chat"
)

// Client is the minimal interface the summarizer needs to obtain model
// output for a prompt. It intentionally hides the endpoint style so that the
// raw completion protocol and OpenAI-compatible chat backends are
// interchangeable.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Config selects and configures a backend for NewClient.
type Config struct {
	// API chooses the endpoint style. Empty means APICompletion.
	API string
	// BaseURL is the completion endpoint itself for APICompletion, used
	// verbatim, or the API root for APIChat.
	BaseURL string
	APIKey  string
	Model   string
	// HTTPClient overrides the default transport when non-nil.
	HTTPClient *http.Client
}

// NewClient builds the Client described by cfg.
func NewClient(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("missing model name")
	}
	switch cfg.API {
	case "", APICompletion:
		if strings.TrimSpace(cfg.BaseURL) == "" {
			return nil, errors.New("missing completion endpoint URL")
		}
		return &HTTPClient{
			Endpoint:   cfg.BaseURL,
			APIKey:     cfg.APIKey,
			ModelID:    cfg.Model,
			HTTPClient: cfg.HTTPClient,
		}, nil
	case APIChat:
		transportCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			transportCfg.BaseURL = cfg.BaseURL
		}
		if cfg.HTTPClient != nil {
			transportCfg.HTTPClient = cfg.HTTPClient
		}
		return &ChatClient{
			Inner:   openai.NewClientWithConfig(transportCfg),
			ModelID: cfg.Model,
		}, nil
	default:
		return nil, ErrUnsupportedAPI{API: cfg.API}
	}
}

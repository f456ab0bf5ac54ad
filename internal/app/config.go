package app

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Output formats understood by the renderer.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Defaults shared between flag registration and config-file overlay.
const (
	DefaultFormat        = FormatText
	DefaultUserAgent     = "pagegist/1.0 (+https://github.com/pagegist/pagegist)"
	DefaultMaxInputChars = 12000
	DefaultFetchTimeout  = 30 * time.Second
)

// Config holds runtime configuration for the application.
type Config struct {
	// Input selection. Exactly one of URL, InputPath or Stdin.
	URL       string
	InputPath string
	Stdin     bool

	// Output
	OutputPath    string // empty or "-" writes to stdout
	OutputPDFPath string
	Format        string

	// Completion backend
	API     string
	BaseURL string
	Model   string
	APIKey  string

	// Summarization
	MaxRetries int

	// Fetching
	UserAgent     string
	FetchTimeout  time.Duration
	MaxInputChars int

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	Verbose bool
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	sources := 0
	if strings.TrimSpace(cfg.URL) != "" {
		sources++
	}
	if strings.TrimSpace(cfg.InputPath) != "" {
		sources++
	}
	if cfg.Stdin {
		sources++
	}
	if sources == 0 {
		return errors.New("config: a page URL, an input file or -stdin is required")
	}
	if sources > 1 {
		return errors.New("config: page URL, input file and -stdin are mutually exclusive")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return errors.New("config: llm.model is required (or set PAGEGIST_MODEL)")
	}
	switch cfg.Format {
	case "", FormatText, FormatMarkdown, FormatJSON:
	default:
		return fmt.Errorf("config: unknown format %q", cfg.Format)
	}
	if cfg.MaxRetries < 0 || cfg.MaxInputChars < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}

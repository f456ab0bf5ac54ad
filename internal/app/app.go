package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/pagegist/pagegist/internal/cache"
	"github.com/pagegist/pagegist/internal/completion"
	"github.com/pagegist/pagegist/internal/extract"
	"github.com/pagegist/pagegist/internal/fetch"
	"github.com/pagegist/pagegist/internal/summarizer"
)

// ErrNoContent reports that the requested source held no usable text. The
// CLI maps it to its own exit code so scripts can tell an empty page from
// an infrastructure failure.
var ErrNoContent = errors.New("no content found")

// pageLoader is the slice of fetch.Client the pipeline uses. Tests swap in
// a fake to run without a network.
type pageLoader interface {
	Get(ctx context.Context, rawURL string) (body []byte, contentType string, err error)
}

// App wires the page fetcher, the completion backend and the renderer.
type App struct {
	cfg    Config
	client completion.Client
	cache  *cache.SummaryCache

	fetcher pageLoader
	stdin   io.Reader
	stdout  io.Writer
}

// New builds an App from cfg. Cache maintenance requested via flags runs
// here so a corrupt or stale cache never affects the run itself.
func New(cfg Config) (*App, error) {
	client, err := completion.NewClient(completion.Config{
		API:        cfg.API,
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		HTTPClient: newHTTPClient(2 * time.Minute),
	})
	if err != nil {
		return nil, err
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	a := &App{
		cfg:    cfg,
		client: client,
		fetcher: &fetch.Client{
			HTTPClient: newHTTPClient(timeout),
			UserAgent:  cfg.UserAgent,
			Timeout:    timeout,
		},
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		a.cache = &cache.SummaryCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	return a, nil
}

// Run executes the pipeline end to end: load the source text, summarize it
// into five points, and render the result. Any stage error aborts the run;
// there is no partial output.
func (a *App) Run(ctx context.Context) error {
	// 1) Load text from the configured source.
	doc, source, err := a.loadContent(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(doc.Text) == "" {
		log.Warn().Str("source", source).Msg("no usable text in source")
		return ErrNoContent
	}

	// 2) Cap the prompt size before it reaches the model.
	text := truncateRunes(doc.Text, a.maxInputChars())
	log.Info().
		Str("source", source).
		Int("chars", utf8.RuneCountInString(text)).
		Str("model", a.client.Model()).
		Msg("summarizing")

	// 3) Summarize with the retry loop.
	s := &summarizer.Summarizer{
		Client:     a.client,
		MaxRetries: a.cfg.MaxRetries,
		Cache:      a.cache,
	}
	points, err := s.Summarize(ctx, text)
	if err != nil {
		return err
	}

	// 4) Render.
	sum := Summary{
		Title:       doc.Title,
		Source:      source,
		Model:       a.client.Model(),
		GeneratedAt: time.Now().UTC(),
		Points:      points,
	}
	if err := a.writeSummary(sum); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if a.cfg.OutputPDFPath != "" {
		if err := writeSummaryPDF(sum, a.cfg.OutputPDFPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPDFPath).Msg("wrote pdf")
	}
	return nil
}

// loadContent resolves the single configured input source into text plus a
// label naming where it came from. URL input goes through fetch and extract;
// file and stdin input is taken verbatim.
func (a *App) loadContent(ctx context.Context) (extract.Document, string, error) {
	switch {
	case strings.TrimSpace(a.cfg.URL) != "":
		pageURL := strings.TrimSpace(a.cfg.URL)
		body, _, err := a.fetcher.Get(ctx, pageURL)
		if err != nil {
			return extract.Document{}, "", fmt.Errorf("fetch %s: %w", pageURL, err)
		}
		doc := extract.FromHTML(body)
		return doc, pageURL, nil
	case a.cfg.Stdin:
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return extract.Document{}, "", fmt.Errorf("read stdin: %w", err)
		}
		return extract.Document{Text: string(b)}, "stdin", nil
	default:
		b, err := os.ReadFile(a.cfg.InputPath)
		if err != nil {
			return extract.Document{}, "", fmt.Errorf("read input: %w", err)
		}
		return extract.Document{Text: string(b)}, a.cfg.InputPath, nil
	}
}

func (a *App) maxInputChars() int {
	if a.cfg.MaxInputChars > 0 {
		return a.cfg.MaxInputChars
	}
	return DefaultMaxInputChars
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pagegist/pagegist/internal/app"
	"github.com/pagegist/pagegist/internal/summarizer"
)

// Build information populated via -ldflags at build time.
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

func main() {
	// .env is optional and never overrides the real environment.
	_ = godotenv.Load()

	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ec, err := app.LoadEnv()
	if err != nil {
		log.Error().Err(err).Msg("parse environment")
		os.Exit(1)
	}

	// Environment supplies flag defaults so explicit flags always win.
	envAPI := ec.API
	if envAPI == "" {
		envAPI = "completion"
	}
	envFormat := ec.Format
	if envFormat == "" {
		envFormat = app.DefaultFormat
	}
	envUA := ec.UserAgent
	if envUA == "" {
		envUA = app.DefaultUserAgent
	}
	envRetries := summarizer.DefaultMaxRetries
	if ec.Retries != nil {
		envRetries = *ec.Retries
	}

	var (
		pageURL      string
		inputPath    string
		useStdin     bool
		outputPath   string
		pdfPath      string
		format       string
		llmAPI       string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		retries      int
		userAgent    string
		fetchTimeout time.Duration
		maxInput     int
		cacheDir     string
		cacheMaxAge  time.Duration
		cacheClear   bool
		cacheStrict  bool
		configPath   string
		verbose      bool
		showVersion  bool
	)

	flag.StringVar(&pageURL, "url", "", "Page URL to fetch and summarize")
	flag.StringVar(&inputPath, "input", "", "Path to a plain-text file to summarize")
	flag.BoolVar(&useStdin, "stdin", false, "Read the text to summarize from stdin")
	flag.StringVar(&outputPath, "output", "", "Output path; empty or '-' writes to stdout")
	flag.StringVar(&pdfPath, "output.pdf", "", "Also write the summary as a PDF to this path")
	flag.StringVar(&format, "format", envFormat, "Output format: text, markdown or json")
	flag.StringVar(&llmAPI, "llm.api", envAPI, "Backend API style: completion or chat")
	flag.StringVar(&llmBaseURL, "llm.base", ec.BaseURL, "Completion endpoint URL, or OpenAI-compatible base URL for chat")
	flag.StringVar(&llmModel, "llm.model", ec.Model, "Model name")
	flag.StringVar(&llmKey, "llm.key", ec.APIKey, "API key, sent as a bearer token")
	flag.IntVar(&retries, "retries", envRetries, "Retries after the first completion attempt")
	flag.StringVar(&userAgent, "ua", envUA, "User-Agent for page fetching")
	flag.DurationVar(&fetchTimeout, "timeout", app.DefaultFetchTimeout, "Page fetch timeout")
	flag.IntVar(&maxInput, "max.inputChars", app.DefaultMaxInputChars, "Maximum characters of source text handed to the model")
	flag.StringVar(&cacheDir, "cache.dir", ec.CacheDir, "Summary cache directory; empty disables caching")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.BoolVar(&cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.BoolVar(&verbose, "v", ec.Verbose, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(versionString())
		return
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		URL:              pageURL,
		InputPath:        inputPath,
		Stdin:            useStdin,
		OutputPath:       outputPath,
		OutputPDFPath:    pdfPath,
		Format:           format,
		API:              llmAPI,
		BaseURL:          llmBaseURL,
		Model:            llmModel,
		APIKey:           llmKey,
		MaxRetries:       retries,
		UserAgent:        userAgent,
		FetchTimeout:     fetchTimeout,
		MaxInputChars:    maxInput,
		CacheDir:         cacheDir,
		CacheMaxAge:      cacheMaxAge,
		CacheClear:       cacheClear,
		CacheStrictPerms: cacheStrict,
		Verbose:          verbose,
	}

	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when the source held no usable text, 1 for
		// any other failure.
		if errors.Is(err, app.ErrNoContent) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func versionString() string {
	s := "pagegist " + BuildVersion
	if BuildCommit != "unknown" && BuildCommit != "" {
		s += " (" + BuildCommit + ")"
	}
	if BuildDate != "unknown" && BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(context.Background())
}

package summarizer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/pagegist/pagegist/internal/cache"
	"github.com/pagegist/pagegist/internal/completion"
)

// Defaults for the retry loop. Attempts run strictly one after another with
// a fixed pause between them; hosted completion endpoints shed transient
// load within seconds, so there is no backoff growth and no jitter.
const (
	DefaultMaxRetries = 2
	DefaultRetryDelay = 2 * time.Second
)

// PointCount is the number of summary points a successful run returns.
const PointCount = 5

// minOutputChars rejects degenerate completions before point parsing.
const minOutputChars = 10

// pointRe matches a numbered summary line such as "1. fact" or "2) fact".
// Lines numbered any other way, for example "3 - fact", do not count.
var pointRe = regexp.MustCompile(`^\d+[.)]\s`)

const promptTemplate = `Summarize the following text in exactly %d concise factual points.
Each point must be a single short sentence of at most 20 words.
Number the points 1. through %d.
Do not add commentary before or after the list.

Text:
%s

Summary:`

// Summarizer turns extracted page text into a fixed-length list of factual
// points by prompting a completion backend and validating what comes back.
type Summarizer struct {
	Client completion.Client
	// MaxRetries is the number of attempts allowed after the first one.
	// Negative counts as zero.
	MaxRetries int
	// Delay is the pause between attempts. Zero or negative means
	// DefaultRetryDelay.
	Delay time.Duration
	// Cache, when non-nil, is consulted before the first attempt and
	// updated after a success.
	Cache *cache.SummaryCache

	// sleep intercepts the inter-attempt pause in tests. Nil means
	// time.Sleep.
	sleep func(time.Duration)
}

// Summarize produces exactly PointCount summary points for text. It retries
// failed attempts up to MaxRetries times, except when the backend answer
// shows the endpoint speaks a different dialect (completion.ContractError),
// which no retry can fix. The error from the last attempt is returned as is.
func (s *Summarizer) Summarize(ctx context.Context, text string) ([]string, error) {
	if s.Client == nil {
		return nil, errors.New("summarizer not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty input text")
	}

	prompt := BuildPrompt(text)

	if s.Cache != nil {
		key := cache.KeyFrom(s.Client.Model(), prompt)
		if points, ok, _ := s.Cache.Get(ctx, key); ok && len(points) == PointCount {
			log.Debug().Str("key", key).Msg("summary cache hit")
			return points, nil
		}
	}

	retries := s.MaxRetries
	if retries < 0 {
		retries = 0
	}
	delay := s.Delay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			log.Debug().Int("attempt", attempt+1).Err(lastErr).Msg("retrying summary")
			s.pause(delay)
		}
		points, err := s.attempt(ctx, prompt)
		if err == nil {
			if s.Cache != nil {
				_ = s.Cache.Save(ctx, cache.KeyFrom(s.Client.Model(), prompt), points)
			}
			return points, nil
		}
		var contract *completion.ContractError
		if errors.As(err, &contract) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *Summarizer) attempt(ctx context.Context, prompt string) ([]string, error) {
	raw, err := s.Client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) < minOutputChars {
		return nil, fmt.Errorf("completion too short to hold a summary: %q", trimmed)
	}
	points := ExtractPoints(trimmed)
	if len(points) < PointCount {
		return nil, fmt.Errorf("expected %d numbered points, found %d", PointCount, len(points))
	}
	return points[:PointCount], nil
}

// pause is a plain sleep. The loop never abandons a wait midway; attempts
// stay strictly sequential.
func (s *Summarizer) pause(d time.Duration) {
	if s.sleep != nil {
		s.sleep(d)
		return
	}
	time.Sleep(d)
}

// BuildPrompt renders the fixed summary prompt for text.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, PointCount, PointCount, text)
}

// ExtractPoints returns the numbered items found in completion output, in
// order, with the numbering prefix stripped and surrounding whitespace
// removed. Lines numbered differently than pointRe expects are ignored.
func ExtractPoints(out string) []string {
	var points []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		loc := pointRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		points = append(points, strings.TrimSpace(line[loc[1]:]))
	}
	return points
}

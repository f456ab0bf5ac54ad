package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Summary is the final result of a run, ready for rendering.
type Summary struct {
	Title       string    `json:"title,omitempty"`
	Source      string    `json:"source"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generatedAt"`
	Points      []string  `json:"points"`
}

// writeSummary renders sum in the configured format and writes it to the
// configured destination. An empty or "-" output path means stdout.
func (a *App) writeSummary(sum Summary) error {
	var rendered string
	switch a.cfg.Format {
	case "", FormatText:
		rendered = renderText(sum)
	case FormatMarkdown:
		rendered = renderMarkdown(sum)
	case FormatJSON:
		b, err := json.MarshalIndent(sum, "", "  ")
		if err != nil {
			return err
		}
		rendered = string(b) + "\n"
	default:
		return fmt.Errorf("unknown format %q", a.cfg.Format)
	}

	dest := a.cfg.OutputPath
	if dest == "" || dest == "-" {
		_, err := io.WriteString(a.stdout, rendered)
		return err
	}
	return os.WriteFile(dest, []byte(rendered), 0o644)
}

func renderText(sum Summary) string {
	var b strings.Builder
	if sum.Title != "" {
		b.WriteString(sum.Title)
		b.WriteString("\n\n")
	}
	for i, p := range sum.Points {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return b.String()
}

func renderMarkdown(sum Summary) string {
	var b strings.Builder
	title := sum.Title
	if title == "" {
		title = "Summary"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if sum.Source != "" && sum.Source != "stdin" {
		fmt.Fprintf(&b, "Source: <%s>\n\n", sum.Source)
	}
	for i, p := range sum.Points {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return b.String()
}

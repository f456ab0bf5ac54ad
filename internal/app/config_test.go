package app

import (
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"url ok", Config{URL: "https://example.com", Model: "m"}, ""},
		{"file ok", Config{InputPath: "notes.txt", Model: "m"}, ""},
		{"stdin ok", Config{Stdin: true, Model: "m"}, ""},
		{"no source", Config{Model: "m"}, "is required"},
		{"two sources", Config{URL: "https://example.com", Stdin: true, Model: "m"}, "mutually exclusive"},
		{"missing model", Config{URL: "https://example.com"}, "llm.model is required"},
		{"bad format", Config{URL: "https://example.com", Model: "m", Format: "docx"}, "unknown format"},
		{"negative retries", Config{URL: "https://example.com", Model: "m", MaxRetries: -1}, "negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConfig(tc.cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

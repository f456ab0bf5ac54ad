package app

import (
	"os"
	"testing"
)

func TestLoadEnv_ReadsPagegistVariables(t *testing.T) {
	t.Setenv("PAGEGIST_MODEL", "test-model")
	t.Setenv("PAGEGIST_BASE_URL", "http://localhost:9999/v1/complete")
	t.Setenv("PAGEGIST_API_KEY", "sk-env")
	t.Setenv("PAGEGIST_RETRIES", "4")
	t.Setenv("PAGEGIST_VERBOSE", "true")

	ec, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if ec.Model != "test-model" {
		t.Fatalf("Model = %q, want %q", ec.Model, "test-model")
	}
	if ec.BaseURL != "http://localhost:9999/v1/complete" {
		t.Fatalf("BaseURL = %q", ec.BaseURL)
	}
	if ec.APIKey != "sk-env" {
		t.Fatalf("APIKey = %q", ec.APIKey)
	}
	if ec.Retries == nil || *ec.Retries != 4 {
		t.Fatalf("Retries = %v, want 4", ec.Retries)
	}
	if !ec.Verbose {
		t.Fatalf("Verbose = false, want true")
	}
}

func TestLoadEnv_UnsetRetriesStaysNil(t *testing.T) {
	// Setenv registers the restore, Unsetenv makes the variable truly absent.
	t.Setenv("PAGEGIST_RETRIES", "")
	os.Unsetenv("PAGEGIST_RETRIES")

	ec, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if ec.Retries != nil {
		t.Fatalf("Retries = %v, want nil when unset", *ec.Retries)
	}
}

func TestLoadEnv_BadRetriesReportsError(t *testing.T) {
	t.Setenv("PAGEGIST_RETRIES", "many")
	if _, err := LoadEnv(); err == nil {
		t.Fatalf("expected parse error for non-numeric PAGEGIST_RETRIES")
	}
}

package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestComplete_SendsFixedGeneration(t *testing.T) {
	var gotAuth, gotCT string
	var gotBody completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"output":{"choices":[{"text":"hello world"}]}}`))
	}))
	defer srv.Close()

	c := &HTTPClient{Endpoint: srv.URL, APIKey: "test-key", ModelID: "test-model"}
	out, err := c.Complete(context.Background(), "some prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello world" {
		t.Fatalf("unexpected text: %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotCT != "application/json" {
		t.Fatalf("unexpected content type: %q", gotCT)
	}
	if gotBody.Model != "test-model" || gotBody.Prompt != "some prompt" {
		t.Fatalf("unexpected model or prompt: %+v", gotBody)
	}
	if gotBody.MaxTokens != 1024 || gotBody.Temperature != 0.3 || gotBody.TopP != 0.8 {
		t.Fatalf("unexpected generation parameters: %+v", gotBody)
	}
	if gotBody.TopK != 50 || gotBody.RepetitionPenalty != 1.1 {
		t.Fatalf("unexpected sampling parameters: %+v", gotBody)
	}
}

func TestComplete_EndpointUsedVerbatim(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"output":{"choices":["ok"]}}`))
	}))
	defer srv.Close()

	c := &HTTPClient{Endpoint: srv.URL + "/v1/complete", APIKey: "k", ModelID: "m"}
	if _, err := c.Complete(context.Background(), "p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v1/complete" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
}

func TestComplete_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &HTTPClient{Endpoint: srv.URL, APIKey: "k", ModelID: "m"}
	_, err := c.Complete(context.Background(), "p")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusBadGateway {
		t.Fatalf("unexpected status code: %d", se.Code)
	}
}

func TestExtractText_Classification(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		want     string
		envelope bool
		contract bool
	}{
		{name: "object choice", body: `{"output":{"choices":[{"text":"ok text"}]}}`, want: "ok text"},
		{name: "bare string choice", body: `{"output":{"choices":["plain"]}}`, want: "plain"},
		{name: "single field text", body: `{"output":{"text":"solo"}}`, want: "solo"},
		{name: "choices win over text", body: `{"output":{"choices":["a"],"text":"b"}}`, want: "a"},
		{name: "not json", body: `<html>gateway</html>`, envelope: true},
		{name: "missing output", body: `{"result":"ok"}`, envelope: true},
		{name: "null output", body: `{"output":null}`, envelope: true},
		{name: "empty choices", body: `{"output":{"choices":[]}}`, envelope: true},
		{name: "choices absent", body: `{"output":{}}`, envelope: true},
		{name: "non string single field", body: `{"output":{"text":42}}`, envelope: true},
		{name: "numeric text", body: `{"output":{"choices":[{"text":42}]}}`, contract: true},
		{name: "choice without text", body: `{"output":{"choices":[{"token_count":3}]}}`, contract: true},
		{name: "numeric choice", body: `{"output":{"choices":[42]}}`, contract: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractText([]byte(tc.body))
			switch {
			case tc.envelope:
				var ee *EnvelopeError
				if !errors.As(err, &ee) {
					t.Fatalf("expected EnvelopeError, got %v", err)
				}
			case tc.contract:
				var ce *ContractError
				if !errors.As(err, &ce) {
					t.Fatalf("expected ContractError, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Fatalf("got %q, want %q", got, tc.want)
				}
			}
		})
	}
}

func TestExtractText_MissingOutputMessage(t *testing.T) {
	_, err := extractText([]byte(`{}`))
	if err == nil || !strings.Contains(err.Error(), "invalid response structure") {
		t.Fatalf("expected invalid response structure error, got %v", err)
	}
}

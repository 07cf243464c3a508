package imaginator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fairshare/internal/errors"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		if _, err := NewClient(ClientConfig{APIKey: key}, zerolog.Nop()); err == nil {
			t.Errorf("NewClient(%q) succeeded, want error", key)
		}
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(ClientConfig{APIKey: "test-key"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", c.model)
	}
	if c.timeout != 120*time.Second {
		t.Errorf("timeout = %v, want 120s", c.timeout)
	}
}

// chatStub serves a minimal OpenAI-compatible chat completion endpoint.
func chatStub(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestClient_Generate(t *testing.T) {
	srv := chatStub(t, "A quiet morning in Malmo.", http.StatusOK)
	defer srv.Close()

	c, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	text, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "A quiet morning in Malmo." {
		t.Errorf("text = %q", text)
	}
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	srv := chatStub(t, "", http.StatusInternalServerError)
	defer srv.Close()

	c, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Generate(context.Background(), "prompt")
	if !errors.Is(err, errors.ErrGenerationFailed) {
		t.Errorf("err = %v, want GENERATION_FAILED", err)
	}
}

func TestClient_Generate_EmptyContent(t *testing.T) {
	srv := chatStub(t, "   ", http.StatusOK)
	defer srv.Close()

	c, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Generate(context.Background(), "prompt")
	if !errors.Is(err, errors.ErrGenerationFailed) {
		t.Errorf("err = %v, want GENERATION_FAILED", err)
	}
}

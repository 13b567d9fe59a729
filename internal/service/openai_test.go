package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"motorchat/internal/config"
)

func openAIAgainst(t *testing.T, handler http.HandlerFunc) *OpenAIGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenAIGenerator(&config.AIConfig{
		APIKey:      "test-key",
		APIBase:     srv.URL,
		Model:       "gpt-4o-mini",
		Temperature: 0.6,
		MaxTokens:   600,
		Timeout:     5,
	})
}

func TestOpenAIGenerateSuccess(t *testing.T) {
	gen := openAIAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "Temos boas opções."}}]}`))
	})

	got, err := gen.Generate(context.Background(), []ChatMessage{{Role: RoleUser, Content: "oi"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Temos boas opções." {
		t.Errorf("reply = %q", got)
	}
}

func TestOpenAIGenerateErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error": {"message": "slow down"}}`, ErrRateLimited},
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrAuthFailed},
		{"forbidden", http.StatusForbidden, `{}`, ErrAuthFailed},
		{"server error", http.StatusInternalServerError, `boom`, ErrMalformed},
		{"empty choices", http.StatusOK, `{"choices": []}`, ErrMalformed},
		{"empty content", http.StatusOK, `{"choices": [{"message": {"content": ""}}]}`, ErrMalformed},
		{"not json", http.StatusOK, `<html>`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := openAIAgainst(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := gen.Generate(context.Background(), []ChatMessage{{Role: RoleUser, Content: "oi"}})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpenAIGenerateConnectionFailure(t *testing.T) {
	gen := NewOpenAIGenerator(&config.AIConfig{
		APIKey:  "test-key",
		APIBase: "http://127.0.0.1:1", // nothing listens here
		Model:   "gpt-4o-mini",
		Timeout: 1,
	})

	_, err := gen.Generate(context.Background(), []ChatMessage{{Role: RoleUser, Content: "oi"}})
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("err = %v, want ErrConnectionFailed", err)
	}
}

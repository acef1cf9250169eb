package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petal-labs/perle/core"
)

func TestDoChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q, want /v1/messages", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}

		var body anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Model != "claude-sonnet-4-5" {
			t.Errorf("model = %q", body.Model)
		}

		json.NewEncoder(w).Encode(anthropicResponse{
			ID:         "msg_123",
			Model:      "claude-sonnet-4-5",
			Content:    []anthropicResponseContent{{Type: "text", Text: "Hello there."}},
			StopReason: "end_turn",
			Usage:      anthropicUsage{InputTokens: 3, OutputTokens: 4},
		})
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	resp, err := p.Chat(context.Background(), &core.ChatRequest{
		Model:    ModelClaudeSonnet45,
		Messages: []core.Message{{Role: core.RoleUser, Content: "Hello"}},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.ID != "msg_123" || resp.Output != "Hello there." {
		t.Errorf("resp = %+v", resp)
	}
	if resp.FinishReason != core.FinishStop {
		t.Errorf("FinishReason = %q, want stop", resp.FinishReason)
	}
}

func TestDoChatErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, core.ErrUnauthorized},
		{"overloaded", 529, core.ErrServer},
		{"rate limited", http.StatusTooManyRequests, core.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("request-id", "req_9")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"type":"error","error":{"type":"some_error","message":"nope"}}`))
			}))
			defer server.Close()

			_, err := New("k", WithBaseURL(server.URL)).Chat(context.Background(), &core.ChatRequest{
				Model:    ModelClaudeSonnet45,
				Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
			})
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("error = %v, want %v", err, tt.sentinel)
			}
			var pErr *core.ProviderError
			if !errors.As(err, &pErr) || pErr.RequestID != "req_9" {
				t.Errorf("ProviderError = %+v", pErr)
			}
		})
	}
}

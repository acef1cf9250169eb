package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petal-labs/perle/core"
)

func TestChatSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Path = %q, want /chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Authorization header incorrect")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["frequency_penalty"] != 0.1 {
			t.Errorf("frequency_penalty = %v, want 0.1", body["frequency_penalty"])
		}

		w.Header().Set("x-request-id", "req-abc123")
		json.NewEncoder(w).Encode(openAIResponse{
			ID:    "chatcmpl-123",
			Model: "gpt-4o-mini",
			Choices: []openAIChoice{{
				Message:      openAIRespMsg{Role: "assistant", Content: "Quasars are active galactic nuclei."},
				FinishReason: "stop",
			}},
			Usage: openAIUsage{PromptTokens: 10, CompletionTokens: 8, TotalTokens: 18},
		})
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	req := &core.ChatRequest{
		Model:    "gpt-4o-mini",
		Messages: []core.Message{{Role: core.RoleUser, Content: "What is a quasar?"}},
	}
	req.ApplySampling(p.Profile().Sampling)

	resp, err := p.Chat(context.Background(), req)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.ID != "chatcmpl-123" {
		t.Errorf("ID = %q, want %q", resp.ID, "chatcmpl-123")
	}
	if resp.Output != "Quasars are active galactic nuclei." {
		t.Errorf("Output = %q", resp.Output)
	}
	if resp.FinishReason != core.FinishStop {
		t.Errorf("FinishReason = %q, want stop", resp.FinishReason)
	}
	if resp.Usage.TotalTokens != 18 {
		t.Errorf("Usage.TotalTokens = %d, want 18", resp.Usage.TotalTokens)
	}
}

func TestChatErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error","code":"invalid_api_key"}}`, core.ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached","type":"requests"}}`, core.ErrRateLimited},
		{"server", http.StatusInternalServerError, `{}`, core.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("x-request-id", "req-err")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := New("k", WithBaseURL(server.URL))
			_, err := p.Chat(context.Background(), &core.ChatRequest{
				Model:    "gpt-4o",
				Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
			})
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Chat() error = %v, want %v", err, tt.sentinel)
			}
			var pErr *core.ProviderError
			if !errors.As(err, &pErr) {
				t.Fatal("expected *core.ProviderError")
			}
			if pErr.RequestID != "req-err" {
				t.Errorf("RequestID = %q, want req-err", pErr.RequestID)
			}
		})
	}
}

func TestChatDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	p := New("k", WithBaseURL(server.URL))
	_, err := p.Chat(context.Background(), &core.ChatRequest{
		Model:    "gpt-4o",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})
	if !errors.Is(err, core.ErrDecode) {
		t.Errorf("Chat() error = %v, want ErrDecode", err)
	}
}

func TestChatNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	p := New("k", WithBaseURL(url))
	_, err := p.Chat(context.Background(), &core.ChatRequest{
		Model:    "gpt-4o",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})
	if !errors.Is(err, core.ErrNetwork) {
		t.Errorf("Chat() error = %v, want ErrNetwork", err)
	}
}

func TestGenerateImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("Path = %q, want /images/generations", r.URL.Path)
		}
		var req openAIImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if req.Model != "dall-e-3" || req.Size != "1792x1024" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(openAIImageResponse{
			Created: 1700000000,
			Data:    []openAIImageData{{URL: "https://images.example.com/fox.png", RevisedPrompt: "a red fox in snow"}},
		})
	}))
	defer server.Close()

	p := New("k", WithBaseURL(server.URL))
	resp, err := p.GenerateImage(context.Background(), &core.ImageGenerateRequest{
		Prompt: "a red fox",
		Size:   core.ImageSizeLandscape,
	})
	if err != nil {
		t.Fatalf("GenerateImage() error = %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("len(Data) = %d, want 1", len(resp.Data))
	}
	if resp.Data[0].Link() != "https://images.example.com/fox.png" {
		t.Errorf("Link() = %q", resp.Data[0].Link())
	}
	if resp.Model != ModelDALLE3 {
		t.Errorf("Model = %q, want dall-e-3", resp.Model)
	}
}

package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockProvider is a test implementation of Provider.
type mockProvider struct {
	id          string
	timeout     time.Duration
	chatFunc    func(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	callCount   int
	lastRequest *ChatRequest
	mu          sync.Mutex
}

func (m *mockProvider) ID() string {
	return m.id
}

func (m *mockProvider) Models() []ModelInfo {
	return []ModelInfo{
		{ID: "mock-model", DisplayName: "Mock Model", Capabilities: []Feature{FeatureChat}},
	}
}

func (m *mockProvider) Supports(feature Feature) bool {
	return feature == FeatureChat
}

func (m *mockProvider) ResolveModel(id LLMModel) Resolution {
	return Resolution{Model: "mock-model", Fallback: id != "mock"}
}

func (m *mockProvider) Profile() Profile {
	return Profile{Sampling: Sampling{Temperature: 0.3}, MaxOutputTokens: 4096, Timeout: m.timeout}
}

func (m *mockProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	m.mu.Lock()
	m.callCount++
	m.lastRequest = req
	m.mu.Unlock()

	if m.chatFunc != nil {
		return m.chatFunc(ctx, req)
	}
	return &ChatResponse{
		ID:           "resp-1",
		Model:        req.Model,
		Output:       "Hello!",
		FinishReason: FinishStop,
		Usage:        TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

func TestClientDefaultsToProviderTimeout(t *testing.T) {
	c := NewClient(&mockProvider{id: "mock", timeout: 25 * time.Second})
	if c.Timeout() != 25*time.Second {
		t.Errorf("Timeout() = %v, want 25s", c.Timeout())
	}

	c = NewClient(&mockProvider{id: "mock", timeout: 25 * time.Second}, WithTimeout(time.Second))
	if c.Timeout() != time.Second {
		t.Errorf("Timeout() = %v, want 1s", c.Timeout())
	}
}

func TestChatBuilderBuildsRequest(t *testing.T) {
	p := &mockProvider{id: "mock", timeout: time.Second}
	c := NewClient(p)

	resp, err := c.Chat("mock-model").
		System("be brief").
		Assistant("earlier answer").
		UserWithImageURL("what is this?", "data:image/png;base64,AAAA").
		Sampling(Sampling{Temperature: 0.3, TopP: 0.9}).
		MaxTokens(2500).
		Grounding(true).
		GetResponse(context.Background())
	if err != nil {
		t.Fatalf("GetResponse() error = %v", err)
	}
	if resp.Output != "Hello!" {
		t.Errorf("Output = %q, want %q", resp.Output, "Hello!")
	}

	req := p.lastRequest
	if len(req.Messages) != 3 {
		t.Fatalf("len(Messages) = %d, want 3", len(req.Messages))
	}
	if req.Messages[0].Role != RoleSystem || req.Messages[1].Role != RoleAssistant {
		t.Errorf("roles = %v, %v", req.Messages[0].Role, req.Messages[1].Role)
	}
	if len(req.Messages[2].Parts) != 2 {
		t.Errorf("len(Parts) = %d, want 2", len(req.Messages[2].Parts))
	}
	if req.MaxTokens == nil || *req.MaxTokens != 2500 {
		t.Errorf("MaxTokens = %v, want 2500", req.MaxTokens)
	}
	if req.TopP == nil || *req.TopP != 0.9 {
		t.Errorf("TopP = %v, want 0.9", req.TopP)
	}
	if !req.Grounding {
		t.Error("Grounding = false, want true")
	}
}

func TestChatBuilderValidation(t *testing.T) {
	c := NewClient(&mockProvider{id: "mock", timeout: time.Second})

	if _, err := c.Chat("").User("hi").GetResponse(context.Background()); !errors.Is(err, ErrModelRequired) {
		t.Errorf("empty model error = %v, want ErrModelRequired", err)
	}
	if _, err := c.Chat("m").GetResponse(context.Background()); !errors.Is(err, ErrNoMessages) {
		t.Errorf("no messages error = %v, want ErrNoMessages", err)
	}
	if _, err := c.Chat("m").User("").GetResponse(context.Background()); !errors.Is(err, ErrNoMessages) {
		t.Errorf("empty message error = %v, want ErrNoMessages", err)
	}
}

func TestGetResponseTimesOutWithoutRetry(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	p := &mockProvider{
		id:      "mock",
		timeout: 30 * time.Millisecond,
		chatFunc: func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			<-release
			return nil, nil
		},
	}
	hook := &testTelemetryHook{}
	c := NewClient(p, WithTelemetry(hook))

	_, err := c.Chat("mock-model").User("hi").GetResponse(context.Background())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("GetResponse() error = %v, want ErrTimeout", err)
	}
	if p.calls() != 1 {
		t.Errorf("provider calls = %d, want 1", p.calls())
	}
	if len(hook.endEvents) != 1 || !errors.Is(hook.endEvents[0].Err, ErrTimeout) {
		t.Errorf("end events = %+v, want one timeout event", hook.endEvents)
	}
}

func TestGetResponseDoesNotRetryProviderErrors(t *testing.T) {
	p := &mockProvider{
		id:      "mock",
		timeout: time.Second,
		chatFunc: func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			return nil, &ProviderError{Provider: "mock", Status: 429, Err: ErrRateLimited}
		},
	}
	c := NewClient(p)

	_, err := c.Chat("mock-model").User("hi").GetResponse(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("GetResponse() error = %v, want ErrRateLimited", err)
	}
	if p.calls() != 1 {
		t.Errorf("provider calls = %d, want 1", p.calls())
	}
}

func TestRequestReturnsCopy(t *testing.T) {
	c := NewClient(&mockProvider{id: "mock", timeout: time.Second})
	b := c.Chat("m").User("one")
	req := b.Request()
	req.Messages[0].Content = "changed"

	if b.Request().Messages[0].Content != "one" {
		t.Error("Request() should return an independent copy of messages")
	}
}

package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{
		Provider:  "openai",
		Status:    401,
		RequestID: "req_123",
		Code:      "invalid_api_key",
		Message:   "Invalid API key provided",
	}

	msg := err.Error()
	for _, want := range []string{"openai", "401", "req_123", "invalid_api_key"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	noID := &ProviderError{Provider: "gemini", Status: 429, Code: "RESOURCE_EXHAUSTED", Message: "quota"}
	if strings.Contains(noID.Error(), "request_id") {
		t.Errorf("Error() = %q, should omit request_id when empty", noID.Error())
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	err := &ProviderError{Provider: "xai", Status: 429, Err: ErrRateLimited}
	if !errors.Is(err, ErrRateLimited) {
		t.Error("errors.Is(err, ErrRateLimited) = false, want true")
	}

	wrapped := fmt.Errorf("answer: %w", err)
	var pErr *ProviderError
	if !errors.As(wrapped, &pErr) {
		t.Fatal("errors.As should find ProviderError through wrapping")
	}
	if pErr.Provider != "xai" {
		t.Errorf("Provider = %q, want %q", pErr.Provider, "xai")
	}
}

func TestConfigErrorCode(t *testing.T) {
	err := &ConfigError{Key: "GOOGLE_API_KEY_FREE"}
	if err.Error() != "GOOGLE_API_KEY_FREE_MISSING" {
		t.Errorf("Error() = %q, want %q", err.Error(), "GOOGLE_API_KEY_FREE_MISSING")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"config", fmt.Errorf("select: %w", &ConfigError{Key: "XAI_API_KEY"}), "XAI_API_KEY_MISSING"},
		{"timeout", ErrTimeout, CodeTimeout},
		{"empty", ErrEmptyResponse, CodeEmptyResponse},
		{"safety", fmt.Errorf("gemini: %w", ErrSafetyBlocked), CodeSafetyBlocked},
		{"bad request", &ProviderError{Provider: "openai", Status: 400, Err: ErrBadRequest}, CodeBadRequest},
		{"provider", &ProviderError{Provider: "openai", Status: 500, Err: ErrServer}, CodeProviderError},
		{"other", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeoutErrorText(t *testing.T) {
	if ErrTimeout.Error() != "TIMEOUT" {
		t.Errorf("ErrTimeout = %q, want %q", ErrTimeout.Error(), "TIMEOUT")
	}
	if !strings.HasPrefix(ErrEmptyResponse.Error(), "AI model returned an empty response") {
		t.Errorf("ErrEmptyResponse = %q", ErrEmptyResponse.Error())
	}
}

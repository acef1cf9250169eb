package core

import (
	"errors"
	"fmt"
)

// ProviderError represents an error returned by a provider with full context.
type ProviderError struct {
	Provider  string
	Status    int
	RequestID string
	Code      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (status=%d, code=%s, request_id=%s)",
			e.Provider, e.Message, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("%s: %s (status=%d, code=%s)",
		e.Provider, e.Message, e.Status, e.Code)
}

// Unwrap returns the underlying error for error chaining.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrDecode       = errors.New("decode error")
	ErrNotSupported = errors.New("operation not supported")
)

// Answer-level failures. None of them are retried.
var (
	ErrTimeout       = errors.New("TIMEOUT")
	ErrEmptyResponse = errors.New("AI model returned an empty response. Please try again.")
	ErrSafetyBlocked = errors.New("Response was blocked by safety filters. Please try rephrasing your query.")
)

// Validation errors with actionable guidance.
var (
	ErrModelRequired = errors.New("model required: pass a model ID to Client.Chat(), e.g., client.Chat(\"gpt-4o-mini\")")
	ErrNoMessages    = errors.New("no messages: add at least one message using .System(), .User(), or .Assistant()")
)

// ConfigError reports a missing provider credential. It is raised before any
// network call is made.
type ConfigError struct {
	// Key is the environment variable that was expected, e.g. "OPENAI_API_KEY".
	Key string
}

func (e *ConfigError) Error() string {
	return e.Code()
}

// Code returns the caller-facing code, e.g. "OPENAI_API_KEY_MISSING".
func (e *ConfigError) Code() string {
	return e.Key + "_MISSING"
}

// Error codes a caller can branch on.
const (
	CodeTimeout       = "TIMEOUT"
	CodeEmptyResponse = "EMPTY_RESPONSE"
	CodeSafetyBlocked = "SAFETY_BLOCKED"
	CodeBadRequest    = "BAD_REQUEST"
	CodeProviderError = "PROVIDER_ERROR"
	CodeInternal      = "INTERNAL"
)

// ErrorCode maps err onto a stable caller-facing code.
func ErrorCode(err error) string {
	var cfgErr *ConfigError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cfgErr):
		return cfgErr.Code()
	case errors.Is(err, ErrTimeout):
		return CodeTimeout
	case errors.Is(err, ErrEmptyResponse):
		return CodeEmptyResponse
	case errors.Is(err, ErrSafetyBlocked):
		return CodeSafetyBlocked
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrModelRequired), errors.Is(err, ErrNoMessages):
		return CodeBadRequest
	}
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return CodeProviderError
	}
	return CodeInternal
}

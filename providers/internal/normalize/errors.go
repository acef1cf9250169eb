// Package normalize maps vendor error envelopes and stop reasons onto the
// core error sentinels and core.FinishReason.
package normalize

import (
	"encoding/json"
	"net/http"

	"github.com/petal-labs/perle/core"
)

// openAIStyleErrorResponse represents vendors that return
// {"error":{"message":"...","type":"...","code":"..."}} (OpenAI, xAI).
type openAIStyleErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// googleStyleErrorResponse represents
// {"error":{"code":400,"message":"...","status":"INVALID_ARGUMENT"}}.
type googleStyleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// anthropicStyleErrorResponse represents
// {"type":"error","error":{"type":"...","message":"..."}}.
type anthropicStyleErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIStyleProviderError normalizes vendors that use OpenAI-style error envelopes.
// xAI sends numeric or string codes, so the code is accepted as either.
func OpenAIStyleProviderError(provider string, status int, body []byte, requestID string) error {
	var errResp openAIStyleErrorResponse
	_ = json.Unmarshal(body, &errResp)

	code := ""
	if s, ok := errResp.Error.Code.(string); ok {
		code = s
	}
	if code == "" {
		code = errResp.Error.Type
	}

	return ProviderError(provider, status, requestID, code, errResp.Error.Message, SentinelForStatus(status))
}

// GoogleStyleProviderError normalizes Google API error envelopes. Google
// reports unknown models as 404, which is a request problem, not a missing
// resource the caller can create.
func GoogleStyleProviderError(provider string, status int, body []byte) error {
	var errResp googleStyleErrorResponse
	_ = json.Unmarshal(body, &errResp)

	code := errResp.Error.Status
	if code == "" {
		code = "unknown_error"
	}
	sentinel := SentinelForStatusWithOverrides(status, map[int]error{
		http.StatusNotFound: core.ErrBadRequest,
	})
	return ProviderError(provider, status, "", code, errResp.Error.Message, sentinel)
}

// AnthropicStyleProviderError normalizes Anthropic error envelopes.
func AnthropicStyleProviderError(provider string, status int, body []byte, requestID string) error {
	var errResp anthropicStyleErrorResponse
	_ = json.Unmarshal(body, &errResp)

	code := errResp.Error.Type
	if code == "" {
		code = "unknown_error"
	}
	sentinel := SentinelForStatusWithOverrides(status, map[int]error{
		http.StatusNotFound: core.ErrNotFound,
		529:                 core.ErrServer, // overloaded_error
	})
	return ProviderError(provider, status, requestID, code, errResp.Error.Message, sentinel)
}

// NetworkError wraps transport failures as provider-specific network errors.
func NetworkError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     "network_error",
		Message:  err.Error(),
		Err:      core.ErrNetwork,
	}
}

// DecodeError wraps decode/parsing failures as provider-specific decode errors.
func DecodeError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     "decode_error",
		Message:  err.Error(),
		Err:      core.ErrDecode,
	}
}

// InvalidInputError reports a request the adapter refused to send, such as a
// malformed image data URL.
func InvalidInputError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     "invalid_request",
		Message:  err.Error(),
		Err:      core.ErrBadRequest,
	}
}

// ProviderError constructs a normalized ProviderError.
// If message is empty, HTTP status text is used.
// If sentinel is nil, default status-based mapping is applied.
func ProviderError(provider string, status int, requestID, code, message string, sentinel error) error {
	if message == "" {
		message = http.StatusText(status)
	}
	if sentinel == nil {
		sentinel = SentinelForStatus(status)
	}
	return &core.ProviderError{
		Provider:  provider,
		Status:    status,
		RequestID: requestID,
		Code:      code,
		Message:   message,
		Err:       sentinel,
	}
}

// SentinelForStatus maps an HTTP status code to a core sentinel error.
func SentinelForStatus(status int) error {
	return SentinelForStatusWithOverrides(status, nil)
}

// SentinelForStatusWithOverrides maps an HTTP status code to a core sentinel error,
// then applies any exact status overrides from the provided map.
func SentinelForStatusWithOverrides(status int, overrides map[int]error) error {
	if override, ok := overrides[status]; ok && override != nil {
		return override
	}

	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return core.ErrBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return core.ErrUnauthorized
	case status == http.StatusNotFound:
		return core.ErrNotFound
	case status == http.StatusTooManyRequests:
		return core.ErrRateLimited
	default:
		return core.ErrServer
	}
}

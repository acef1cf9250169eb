package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitProvider   = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error

	// reported is set once the error was written to stderr.
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCodeFor classifies an engine error.
func exitCodeFor(err error) int {
	var cfgErr *core.ConfigError
	switch {
	case errors.As(err, &cfgErr),
		errors.Is(err, core.ErrBadRequest),
		errors.Is(err, core.ErrModelRequired),
		errors.Is(err, core.ErrNoMessages):
		return ExitValidation
	case errors.Is(err, core.ErrNetwork), errors.Is(err, core.ErrTimeout):
		return ExitNetwork
	default:
		return ExitProvider
	}
}

type errorOutput struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// handleAnswerError reports err on stderr and wraps it with its exit code.
func (a *App) handleAnswerError(err error) error {
	detail := errorDetail{Code: core.ErrorCode(err), Message: err.Error()}
	var provErr *core.ProviderError
	if errors.As(err, &provErr) {
		detail.Provider = provErr.Provider
		detail.RequestID = provErr.RequestID
	}

	if a.jsonOutput {
		enc := json.NewEncoder(a.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(errorOutput{Error: detail})
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		if detail.RequestID != "" {
			fmt.Fprintf(a.stderr, "  Provider: %s, Request ID: %s\n", detail.Provider, detail.RequestID)
		}
		var cfgErr *core.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(a.stderr, "  Set %s in the environment or run 'perle keys set %s'.\n", cfgErr.Key, keyProviderHint(cfgErr.Key))
		}
	}

	return &exitError{code: exitCodeFor(err), err: err, reported: true}
}

// keyProviderHint names the provider argument of perle keys set for a variable.
func keyProviderHint(envVar string) string {
	switch envVar {
	case answer.EnvOpenAI:
		return "openai"
	case answer.EnvXAI:
		return "xai"
	case answer.EnvAnthropic:
		return "anthropic"
	case answer.EnvGoogleFree:
		return "gemini --free"
	default:
		return "gemini"
	}
}

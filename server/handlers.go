package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/core"
)

// AnswerRequest is the body of POST /v1/answer.
type AnswerRequest struct {
	Query             string                  `json:"query"`
	Mode              answer.Mode             `json:"mode,omitempty"`
	Model             core.LLMModel           `json:"model,omitempty"`
	Premium           bool                    `json:"premium,omitempty"`
	History           []answer.HistoryMessage `json:"history,omitempty"`
	ChatMode          answer.ChatMode         `json:"chatMode,omitempty"`
	FriendName        string                  `json:"friendName,omitempty"`
	FriendDescription string                  `json:"friendDescription,omitempty"`
	SpaceTitle        string                  `json:"spaceTitle,omitempty"`
	SpaceDescription  string                  `json:"spaceDescription,omitempty"`
	Image             string                  `json:"image,omitempty"`
}

// toEngine validates the body and converts it to an engine request.
func (a AnswerRequest) toEngine() (answer.Request, error) {
	if strings.TrimSpace(a.Query) == "" {
		return answer.Request{}, answer.ErrEmptyQuery
	}
	if a.Mode == "" {
		a.Mode = answer.ModeAsk
	}
	if !a.Mode.Valid() {
		return answer.Request{}, fmt.Errorf("%w: unknown mode %q", core.ErrBadRequest, a.Mode)
	}
	if a.ChatMode == "" {
		a.ChatMode = answer.ChatNormal
	}
	if !a.ChatMode.Valid() {
		return answer.Request{}, fmt.Errorf("%w: unknown chat mode %q", core.ErrBadRequest, a.ChatMode)
	}
	if a.Image != "" {
		if _, err := core.ParseDataURL(a.Image); err != nil {
			return answer.Request{}, fmt.Errorf("%w: image: %v", core.ErrBadRequest, err)
		}
	}
	for i, m := range a.History {
		if m.Role != answer.HistoryUser && m.Role != answer.HistoryAssistant {
			return answer.Request{}, fmt.Errorf("%w: history[%d]: unknown role %q", core.ErrBadRequest, i, m.Role)
		}
	}

	return answer.Request{
		Query:             a.Query,
		Mode:              a.Mode,
		Model:             a.Model,
		Premium:           a.Premium,
		History:           a.History,
		ChatMode:          a.ChatMode,
		FriendName:        a.FriendName,
		FriendDescription: a.FriendDescription,
		SpaceTitle:        a.SpaceTitle,
		SpaceDescription:  a.SpaceDescription,
		ImageDataURL:      a.Image,
	}, nil
}

// ModelInfo describes one catalog entry in GET /v1/models.
type ModelInfo struct {
	ID       core.LLMModel `json:"id"`
	Provider string        `json:"provider"`
	Default  bool          `json:"default,omitempty"`
}

// ModelsResponse is the body of GET /v1/models.
type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// ErrorBody is the error envelope of every non-2xx response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the stable code a client branches on.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) answerHandler(w http.ResponseWriter, r *http.Request) {
	var body AnswerRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		s.writeError(w, r, fmt.Errorf("%w: %v", core.ErrBadRequest, err))
		return
	}

	req, err := body.toEngine()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.engine.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) modelsHandler(w http.ResponseWriter, r *http.Request) {
	resp := ModelsResponse{Models: make([]ModelInfo, 0, len(core.Catalog))}
	for _, m := range core.Catalog {
		route := answer.Resolve(m, true)
		resp.Models = append(resp.Models, ModelInfo{
			ID:       m,
			Provider: route.Provider,
			Default:  m == answer.DefaultModel,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// StatusFor maps an engine error onto an HTTP status.
func StatusFor(err error) int {
	var cfgErr *core.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrSafetyBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrBadRequest), errors.Is(err, core.ErrModelRequired), errors.Is(err, core.ErrNoMessages):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrEmptyResponse):
		return http.StatusBadGateway
	}
	var pErr *core.ProviderError
	if errors.As(err, &pErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes the error envelope. Provider and internal
// failures are reported to the client by code only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := core.ErrorCode(err)

	log := zerolog.Ctx(r.Context())
	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Str("code", code).Int("status", status).Msg("request failed")

	msg := err.Error()
	if code == core.CodeProviderError || code == core.CodeInternal {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

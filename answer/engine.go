// Package answer turns a user query into a structured, citable answer.
//
// An [Engine] classifies the query, optionally augments the prompt with live
// web results, routes the call to one of the completion adapters under a
// timeout, validates and formats the reply and, in the normal chat mode,
// attaches a generated image:
//
//	engine := answer.New(answer.EnvSource,
//	    answer.WithSearch(search.NewService(search.NewDuckDuckGo(""))),
//	    answer.WithLogger(log))
//	res, err := engine.Generate(ctx, answer.Request{
//	    Query: "what's the latest flagship phone",
//	    Mode:  answer.ModeAsk,
//	    Model: core.ModelGPT4o,
//	})
//
// Each call makes at most one completion attempt. Errors are returned as
// produced by core so callers can branch with core.ErrorCode.
package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/imagegen"
	"github.com/petal-labs/perle/providers"
	"github.com/petal-labs/perle/search"

	// Adapters register themselves with the providers registry.
	_ "github.com/petal-labs/perle/providers/anthropic"
	_ "github.com/petal-labs/perle/providers/gemini"
	_ "github.com/petal-labs/perle/providers/openai"
	_ "github.com/petal-labs/perle/providers/xai"
)

// HistoryLimit is how many trailing history messages reach the provider.
const HistoryLimit = 10

// DefaultSearchTimeout bounds the web search step.
const DefaultSearchTimeout = 10 * time.Second

// DefaultImageTimeout bounds the image generation step.
const DefaultImageTimeout = 30 * time.Second

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = fmt.Errorf("%w: query is empty", core.ErrBadRequest)

// Searcher is the web search collaborator.
type Searcher interface {
	RequiresCurrentInfo(query string) bool
	Search(ctx context.Context, query string, limit int) ([]search.Result, error)
	FormatForContext(results []search.Result) string
}

// ImageService is the image generation collaborator.
type ImageService interface {
	ShouldGenerate(query string) bool
	ExtractPrompt(query, answer string) (string, bool)
	Generate(ctx context.Context, prompt string) (*imagegen.Image, error)
}

// ProviderFactory builds an adapter by registry name.
type ProviderFactory func(name, apiKey string, s providers.Settings) (core.Provider, error)

// Request is the input of one Generate call.
type Request struct {
	Query   string
	Mode    Mode
	Model   core.LLMModel
	Premium bool

	// History is read, never modified. Only the last HistoryLimit entries are sent.
	History []HistoryMessage

	ChatMode          ChatMode
	FriendName        string
	FriendDescription string
	SpaceTitle        string
	SpaceDescription  string

	// ImageDataURL is an optional data:<mime>;base64,<payload> attachment.
	ImageDataURL string
}

// Engine runs the answer pipeline. Engine holds no per-request state and is
// safe for concurrent use.
type Engine struct {
	creds         Credentials
	searcher      Searcher
	images        ImageService
	logger        zerolog.Logger
	telemetry     core.TelemetryHook
	observer      Observer
	settings      map[string]providers.Settings
	newProvider   ProviderFactory
	searchLimit   int
	searchTimeout time.Duration
	imageTimeout  time.Duration
	now           func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSearch enables live web augmentation.
func WithSearch(s Searcher) Option {
	return func(e *Engine) {
		e.searcher = s
	}
}

// WithImages enables image augmentation in the normal chat mode.
func WithImages(s ImageService) Option {
	return func(e *Engine) {
		e.images = s
	}
}

// WithLogger sets the engine logger. A logger attached to the request
// context with zerolog's WithContext takes precedence.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTelemetry sets the hook passed to every completion client.
func WithTelemetry(h core.TelemetryHook) Option {
	return func(e *Engine) {
		if h != nil {
			e.telemetry = h
		}
	}
}

// WithObserver sets the per-answer observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithProviderSettings overrides adapter settings for one provider name.
func WithProviderSettings(name string, s providers.Settings) Option {
	return func(e *Engine) {
		e.settings[name] = s
	}
}

// WithProviderFactory replaces the registry lookup used to build adapters.
func WithProviderFactory(f ProviderFactory) Option {
	return func(e *Engine) {
		if f != nil {
			e.newProvider = f
		}
	}
}

// WithSearchLimit sets how many web hits are requested.
func WithSearchLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.searchLimit = n
		}
	}
}

// WithSearchTimeout sets the deadline of the web search step.
func WithSearchTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.searchTimeout = d
		}
	}
}

// WithImageTimeout sets the deadline of the image generation step.
func WithImageTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.imageTimeout = d
		}
	}
}

// WithClock sets the time source used for prompts and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Engine resolving keys through creds.
func New(creds Credentials, opts ...Option) *Engine {
	e := &Engine{
		creds:         creds,
		logger:        zerolog.Nop(),
		telemetry:     core.NoopTelemetryHook{},
		observer:      NoopObserver{},
		settings:      make(map[string]providers.Settings),
		newProvider:   providers.CreateWith,
		searchLimit:   search.DefaultLimit,
		searchTimeout: DefaultSearchTimeout,
		imageTimeout:  DefaultImageTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// loggerFor prefers a logger carried by ctx.
func (e *Engine) loggerFor(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return e.logger
}

// Generate produces the answer for req.
func (e *Engine) Generate(ctx context.Context, req Request) (*Result, error) {
	ev := AnswerEvent{Mode: req.Mode, ChatMode: req.ChatMode, Start: e.now()}
	res, err := e.generate(ctx, req, &ev)
	ev.End = e.now()
	ev.Err = err
	if res != nil {
		ev.Sources = len(res.Sources)
		ev.Images = len(res.Images)
	}
	e.observer.OnAnswer(ev)
	return res, err
}

func (e *Engine) generate(ctx context.Context, req Request, ev *AnswerEvent) (*Result, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	chat := req.ChatMode
	if chat == "" {
		chat = ChatNormal
		ev.ChatMode = chat
	}

	log := e.loggerFor(ctx).With().
		Str("mode", string(req.Mode)).
		Str("chat_mode", string(chat)).
		Logger()

	if IsSelfReferential(query) {
		ev.Shortcut = true
		log.Debug().Msg("self-referential query, returning canned answer")
		return e.selfDescription(query, req.Mode), nil
	}

	route := Resolve(req.Model, req.Premium)
	if route.Fallback {
		log.Warn().Str("requested", string(req.Model)).Str("model", string(route.Model)).
			Msg("unknown model, using default")
	}

	apiKey, err := e.creds.APIKey(route.Provider, req.Premium)
	if err != nil {
		return nil, err
	}
	provider, err := e.newProvider(route.Provider, apiKey, e.settings[route.Provider])
	if err != nil {
		return nil, err
	}

	resolved := provider.ResolveModel(route.Model)
	ev.Provider = provider.ID()
	ev.Model = resolved.Model
	log = log.With().Str("provider", provider.ID()).Str("model", string(resolved.Model)).Logger()
	switch {
	case resolved.Deprecated:
		log.Warn().Str("requested", string(route.Model)).Msg("model is deprecated, using replacement")
	case resolved.Fallback:
		log.Warn().Str("requested", string(route.Model)).Msg("model not in provider table, using fallback")
	}

	sources := []Source{}
	system := BuildSystemPrompt(PromptContext{
		ChatMode:          chat,
		FriendName:        req.FriendName,
		FriendDescription: req.FriendDescription,
		SpaceTitle:        req.SpaceTitle,
		SpaceDescription:  req.SpaceDescription,
	}, e.now())

	if e.searcher != nil && e.searcher.RequiresCurrentInfo(query) {
		ev.Searched = true
		hits, err := e.runSearch(ctx, query)
		if err != nil {
			ev.SearchFailed = true
			log.Warn().Err(err).Msg("web search failed, answering without live results")
		} else if len(hits) > 0 {
			sources = ExtractSources(hits, WebSourceTag, e.searchLimit)
			system += "\n\n" + e.searcher.FormatForContext(hits[:len(sources)])
		}
	}

	profile := provider.Profile()
	b := core.NewClient(provider, core.WithTelemetry(e.telemetry)).
		Chat(resolved.Model).
		System(system)
	for _, m := range recentHistory(req.History) {
		if m.Role == HistoryAssistant {
			b.Assistant(m.Content)
		} else {
			b.User(m.Content)
		}
	}
	prompt := UserPrompt(query, req.Mode, chat)
	if req.ImageDataURL != "" {
		b.UserWithImageURL(prompt, req.ImageDataURL)
	} else {
		b.User(prompt)
	}
	b.Sampling(profile.Sampling).
		MaxTokens(TokenBudget(req.Mode, profile.MaxOutputTokens)).
		Grounding(resolved.Grounded && req.Premium && provider.Supports(core.FeatureGrounding))

	start := e.now()
	resp, err := b.GetResponse(ctx)
	if err != nil {
		log.Error().Err(err).Dur("duration", e.now().Sub(start)).Msg("completion failed")
		return nil, err
	}

	text, err := Validate(resp, log)
	if err != nil {
		return nil, err
	}
	ev.Truncated = resp.FinishReason == core.FinishLength

	if len(resp.Citations) > 0 {
		sources = append(sources, CitationSources(resp.Citations)...)
	}

	result := &Result{
		Sources:   sources,
		Chunks:    ChunkAnswer(text, sources),
		Query:     query,
		Mode:      req.Mode,
		Timestamp: e.now().UnixMilli(),
	}

	if chat == ChatNormal {
		e.attachImage(ctx, log, query, result)
	}

	log.Info().Dur("duration", e.now().Sub(start)).Int("sources", len(result.Sources)).Msg("answer generated")
	return result, nil
}

// runSearch queries the searcher under its own deadline.
func (e *Engine) runSearch(ctx context.Context, query string) ([]search.Result, error) {
	return core.Guard(ctx, e.searchTimeout, func(ctx context.Context) ([]search.Result, error) {
		return e.searcher.Search(ctx, query, e.searchLimit)
	})
}

// attachImage adds a generated image when the query asks for one. Failures
// and timeouts leave the result untouched.
func (e *Engine) attachImage(ctx context.Context, log zerolog.Logger, query string, result *Result) {
	if e.images == nil || !e.images.ShouldGenerate(query) {
		return
	}
	prompt, ok := e.images.ExtractPrompt(query, result.Chunks[0].Text)
	if !ok {
		return
	}
	img, err := core.Guard(ctx, e.imageTimeout, func(ctx context.Context) (*imagegen.Image, error) {
		return e.images.Generate(ctx, prompt)
	})
	if err != nil || img == nil {
		log.Debug().Err(err).Msg("image generation skipped")
		return
	}
	result.Images = append(result.Images, Image{
		URL:    img.URL,
		Prompt: img.Prompt,
		Width:  img.Width,
		Height: img.Height,
	})
}

// selfDescription is the canned answer to questions about the assistant.
func (e *Engine) selfDescription(query string, mode Mode) *Result {
	sources := []Source{perleSource}
	return &Result{
		Sources:   sources,
		Chunks:    ChunkAnswer(perleAnswer, sources),
		Query:     query,
		Mode:      mode,
		Timestamp: e.now().UnixMilli(),
	}
}

// recentHistory returns a copy of the last HistoryLimit non-empty messages.
func recentHistory(h []HistoryMessage) []HistoryMessage {
	if len(h) > HistoryLimit {
		h = h[len(h)-HistoryLimit:]
	}
	out := make([]HistoryMessage, 0, len(h))
	for _, m := range h {
		if strings.TrimSpace(m.Content) != "" {
			out = append(out, m)
		}
	}
	return out
}

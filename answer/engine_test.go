package answer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/imagegen"
	"github.com/petal-labs/perle/providers"
	"github.com/petal-labs/perle/search"
)

// fakeProvider records requests and replays a canned response.
type fakeProvider struct {
	id      string
	resp    *core.ChatResponse
	err     error
	delay   time.Duration
	timeout time.Duration
	grounds bool

	mu       sync.Mutex
	requests []core.ChatRequest
}

func (p *fakeProvider) ID() string { return p.id }

func (p *fakeProvider) Models() []core.ModelInfo { return nil }

func (p *fakeProvider) Supports(f core.Feature) bool {
	return f == core.FeatureChat || (p.grounds && f == core.FeatureGrounding)
}

func (p *fakeProvider) ResolveModel(m core.LLMModel) core.Resolution {
	return core.Resolution{Model: core.ModelID("vendor-" + string(m)), Grounded: p.grounds}
}

func (p *fakeProvider) Profile() core.Profile {
	return core.Profile{
		Sampling:        core.Sampling{Temperature: 0.3, TopP: 0.9},
		MaxOutputTokens: 8192,
		Timeout:         p.timeout,
	}
}

func (p *fakeProvider) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, *req)
	p.mu.Unlock()
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.resp, p.err
}

func (p *fakeProvider) calls() []core.ChatRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]core.ChatRequest(nil), p.requests...)
}

type stubSearcher struct {
	current bool
	hits    []search.Result
	err     error
	limits  []int
}

func (s *stubSearcher) RequiresCurrentInfo(string) bool { return s.current }

func (s *stubSearcher) Search(_ context.Context, _ string, limit int) ([]search.Result, error) {
	s.limits = append(s.limits, limit)
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

func (s *stubSearcher) FormatForContext(results []search.Result) string {
	return fmt.Sprintf("SEARCH BLOCK %d", len(results))
}

type stubImages struct {
	img *imagegen.Image
	err error
}

func (s *stubImages) ShouldGenerate(q string) bool { return strings.Contains(q, "picture") }

func (s *stubImages) ExtractPrompt(string, string) (string, bool) { return "a red fox", true }

func (s *stubImages) Generate(context.Context, string) (*imagegen.Image, error) {
	return s.img, s.err
}

// stallingSearcher holds every search until delay passes or ctx ends.
type stallingSearcher struct {
	delay time.Duration
}

func (s stallingSearcher) RequiresCurrentInfo(string) bool { return true }

func (s stallingSearcher) Search(ctx context.Context, _ string, _ int) ([]search.Result, error) {
	select {
	case <-time.After(s.delay):
		return []search.Result{{Title: "late", URL: "https://late.example"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s stallingSearcher) FormatForContext([]search.Result) string { return "" }

// hangingImages never produces an image before ctx ends.
type hangingImages struct {
	*stubImages
}

func (hangingImages) Generate(ctx context.Context, _ string) (*imagegen.Image, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type recordingObserver struct {
	events []AnswerEvent
}

func (o *recordingObserver) OnAnswer(e AnswerEvent) { o.events = append(o.events, e) }

func allKeys() LookupSource {
	return mapLookup(map[string]string{
		EnvOpenAI:     "k",
		EnvXAI:        "k",
		EnvAnthropic:  "k",
		EnvGoogle:     "k",
		EnvGoogleFree: "k",
	})
}

func okResponse(text string) *core.ChatResponse {
	return &core.ChatResponse{Output: text, FinishReason: core.FinishStop}
}

// newTestEngine wires p behind a factory that records the provider names it was asked for.
func newTestEngine(p *fakeProvider, built *[]string, opts ...Option) *Engine {
	factory := func(name, _ string, _ providers.Settings) (core.Provider, error) {
		if built != nil {
			*built = append(*built, name)
		}
		if p.id == "" {
			p.id = name
		}
		return p, nil
	}
	opts = append([]Option{WithProviderFactory(factory)}, opts...)
	return New(allKeys(), opts...)
}

func TestGenerateBasic(t *testing.T) {
	p := &fakeProvider{resp: okResponse("## Title\nA **quasar** is bright.")}
	e := newTestEngine(p, nil, WithClock(func() time.Time { return time.UnixMilli(1700000000000) }))

	res, err := e.Generate(t.Context(), Request{
		Query:   "  what is a quasar ",
		Mode:    ModeResearch,
		Model:   core.ModelGPT4o,
		Premium: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "what is a quasar", res.Query)
	assert.Equal(t, ModeResearch, res.Mode)
	assert.Equal(t, int64(1700000000000), res.Timestamp)
	assert.Empty(t, res.Sources)
	require.Len(t, res.Chunks, 1)
	assert.Equal(t, "Title\nA quasar is bright.", res.Chunks[0].Text)
	assert.NotNil(t, res.Chunks[0].CitationIDs)
	assert.Empty(t, res.Images)

	calls := p.calls()
	require.Len(t, calls, 1)
	req := calls[0]
	assert.Equal(t, core.ModelID("vendor-gpt-4o"), req.Model)
	require.NotNil(t, req.MaxTokens)
	assert.Equal(t, 4000, *req.MaxTokens)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.3, *req.Temperature, 1e-6)
	assert.False(t, req.Grounding)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, core.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, "[Mode: Research] what is a quasar", req.Messages[1].Content)
}

func TestGenerateEmptyQuery(t *testing.T) {
	var built []string
	e := newTestEngine(&fakeProvider{}, &built)

	_, err := e.Generate(t.Context(), Request{Query: "   "})
	require.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, core.CodeBadRequest, core.ErrorCode(err))
	assert.Empty(t, built)
}

func TestGenerateSelfReferenceShortcut(t *testing.T) {
	for _, m := range core.Catalog {
		p := &fakeProvider{resp: okResponse("unused")}
		var built []string
		e := newTestEngine(p, &built)

		res, err := e.Generate(t.Context(), Request{Query: "Who are you?", Mode: ModeAsk, Model: m, Premium: true})
		require.NoError(t, err, "model %s", m)

		assert.Empty(t, built, "model %s built a provider", m)
		assert.Empty(t, p.calls(), "model %s called the provider", m)
		require.Len(t, res.Sources, 1)
		assert.Equal(t, "perle-1", res.Sources[0].ID)
		assert.Equal(t, []string{"perle-1"}, res.Chunks[0].CitationIDs)
		assert.Contains(t, res.Chunks[0].Text, "Perle")
	}
}

func TestGenerateMissingCredential(t *testing.T) {
	var built []string
	p := &fakeProvider{resp: okResponse("x")}
	e := New(mapLookup(nil), WithProviderFactory(func(name, _ string, _ providers.Settings) (core.Provider, error) {
		built = append(built, name)
		return p, nil
	}))

	_, err := e.Generate(t.Context(), Request{Query: "hello there", Model: core.ModelGPT4o, Premium: false})
	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "GOOGLE_API_KEY_FREE_MISSING", core.ErrorCode(err))
	assert.Empty(t, built)

	_, err = e.Generate(t.Context(), Request{Query: "hello there", Model: core.ModelGrok4, Premium: true})
	assert.Equal(t, "XAI_API_KEY_MISSING", core.ErrorCode(err))
	assert.Empty(t, p.calls())
}

func TestGenerateRoutesFreeUsersToDefault(t *testing.T) {
	var built []string
	p := &fakeProvider{resp: okResponse("ok")}
	e := newTestEngine(p, &built)

	_, err := e.Generate(t.Context(), Request{Query: "explain tides", Model: core.ModelClaude45})
	require.NoError(t, err)
	assert.Equal(t, []string{providers.Gemini}, built)
	assert.Equal(t, core.ModelID("vendor-gemini-lite"), p.calls()[0].Model)
}

func TestGenerateWithSearch(t *testing.T) {
	hits := make([]search.Result, 0, 20)
	for i := 1; i <= 20; i++ {
		hits = append(hits, search.Result{
			Title:   fmt.Sprintf("Hit %d", i),
			URL:     fmt.Sprintf("https://www.example.com/%d", i),
			Content: "content",
		})
	}
	s := &stubSearcher{current: true, hits: hits}
	p := &fakeProvider{resp: okResponse("latest news")}
	e := newTestEngine(p, nil, WithSearch(s), WithSearchLimit(5))

	res, err := e.Generate(t.Context(), Request{Query: "latest news today", Model: core.ModelGPT4o, Premium: true})
	require.NoError(t, err)

	require.Len(t, s.limits, 1)
	assert.Equal(t, 5, s.limits[0])
	require.Len(t, res.Sources, 5)
	for i, src := range res.Sources {
		assert.Equal(t, fmt.Sprintf("web-%d", i+1), src.ID)
		assert.Equal(t, "example.com", src.Domain)
	}
	assert.Equal(t, []string{"web-1", "web-2"}, res.Chunks[0].CitationIDs)

	system := p.calls()[0].Messages[0].Content
	assert.True(t, strings.HasSuffix(system, "SEARCH BLOCK 5"), system)
}

func TestGenerateSearchFailureContinues(t *testing.T) {
	s := &stubSearcher{current: true, err: errors.New("boom")}
	p := &fakeProvider{resp: okResponse("answer without search")}
	obs := &recordingObserver{}
	e := newTestEngine(p, nil, WithSearch(s), WithObserver(obs))

	res, err := e.Generate(t.Context(), Request{Query: "latest news today", Model: core.ModelGPT4o, Premium: true})
	require.NoError(t, err)
	assert.Empty(t, res.Sources)
	assert.Len(t, p.calls(), 1)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Searched)
	assert.True(t, obs.events[0].SearchFailed)
}

func TestGenerateSearchTimeoutContinues(t *testing.T) {
	p := &fakeProvider{resp: okResponse("answer without search")}
	obs := &recordingObserver{}
	e := newTestEngine(p, nil,
		WithSearch(stallingSearcher{delay: time.Second}),
		WithSearchTimeout(50*time.Millisecond),
		WithObserver(obs),
	)

	start := time.Now()
	res, err := e.Generate(t.Context(), Request{Query: "latest news today", Model: core.ModelGPT4o, Premium: true})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, 500*time.Millisecond)
	assert.Empty(t, res.Sources)
	assert.Equal(t, "answer without search", res.Chunks[0].Text)
	assert.Len(t, p.calls(), 1)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].SearchFailed)
}

func TestGenerateSearchSkippedWhenNotCurrent(t *testing.T) {
	s := &stubSearcher{current: false}
	e := newTestEngine(&fakeProvider{resp: okResponse("ok")}, nil, WithSearch(s))

	_, err := e.Generate(t.Context(), Request{Query: "what is gravity", Model: core.ModelGPT4o, Premium: true})
	require.NoError(t, err)
	assert.Empty(t, s.limits)
}

func TestGenerateCitationsBecomeSources(t *testing.T) {
	p := &fakeProvider{grounds: true, resp: &core.ChatResponse{
		Output:       "grounded",
		FinishReason: core.FinishStop,
		Citations: []core.Citation{
			{Title: "A", URL: "https://a.example"},
			{Title: "A again", URL: "https://a.example"},
			{Title: "B", URL: "https://b.example"},
		},
	}}
	e := newTestEngine(p, nil)

	res, err := e.Generate(t.Context(), Request{Query: "explain it", Model: core.ModelGemini20, Premium: true})
	require.NoError(t, err)
	assert.True(t, p.calls()[0].Grounding)

	require.Len(t, res.Sources, 2)
	assert.Equal(t, "source-1", res.Sources[0].ID)
	assert.Equal(t, "source-2", res.Sources[1].ID)

	ids := make(map[string]bool)
	for _, s := range res.Sources {
		ids[s.ID] = true
	}
	for _, c := range res.Chunks {
		for _, id := range c.CitationIDs {
			assert.True(t, ids[id], "citation %q has no source", id)
		}
	}
}

func TestGenerateTruncationWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	p := &fakeProvider{resp: &core.ChatResponse{Output: "partial", FinishReason: core.FinishLength}}
	obs := &recordingObserver{}
	e := newTestEngine(p, nil, WithLogger(zerolog.New(&buf)), WithObserver(obs))

	res, err := e.Generate(t.Context(), Request{Query: "write an essay", Model: core.ModelGPT4o, Premium: true})
	require.NoError(t, err)
	assert.Equal(t, "partial", res.Chunks[0].Text)
	assert.Equal(t, 1, strings.Count(buf.String(), "response truncated at token limit"))
	assert.True(t, obs.events[0].Truncated)
}

func TestGenerateValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		resp *core.ChatResponse
		want error
	}{
		{"blank", &core.ChatResponse{Output: "  \n", FinishReason: core.FinishStop}, core.ErrEmptyResponse},
		{"safety", &core.ChatResponse{Output: "x", FinishReason: core.FinishSafety}, core.ErrSafetyBlocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(&fakeProvider{resp: tc.resp}, nil)
			_, err := e.Generate(t.Context(), Request{Query: "hi friend", Model: core.ModelGPT4o, Premium: true})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerateProviderErrorPassesThrough(t *testing.T) {
	perr := &core.ProviderError{Provider: "openai", Status: 429, Err: core.ErrRateLimited}
	p := &fakeProvider{err: perr}
	e := newTestEngine(p, nil)

	_, err := e.Generate(t.Context(), Request{Query: "hello there", Model: core.ModelGPT4o, Premium: true})
	assert.Same(t, perr, err)
	assert.Len(t, p.calls(), 1)
}

func TestGenerateTimeout(t *testing.T) {
	p := &fakeProvider{resp: okResponse("late"), delay: time.Second, timeout: 20 * time.Millisecond}
	e := newTestEngine(p, nil)

	start := time.Now()
	_, err := e.Generate(t.Context(), Request{Query: "slow question", Model: core.ModelGPT4o, Premium: true})
	require.ErrorIs(t, err, core.ErrTimeout)
	assert.Equal(t, core.CodeTimeout, core.ErrorCode(err))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestGenerateHistory(t *testing.T) {
	history := make([]HistoryMessage, 0, 14)
	for i := 0; i < 14; i++ {
		role := HistoryUser
		if i%2 == 1 {
			role = HistoryAssistant
		}
		history = append(history, HistoryMessage{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}
	snapshot := append([]HistoryMessage(nil), history...)

	p := &fakeProvider{resp: okResponse("ok")}
	e := newTestEngine(p, nil)
	_, err := e.Generate(t.Context(), Request{Query: "and now?", Model: core.ModelGPT4o, Premium: true, History: history})
	require.NoError(t, err)

	assert.Equal(t, snapshot, history)

	msgs := p.calls()[0].Messages
	require.Len(t, msgs, 1+HistoryLimit+1)
	assert.Equal(t, "turn 4", msgs[1].Content)
	assert.Equal(t, core.RoleUser, msgs[1].Role)
	assert.Equal(t, core.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "turn 13", msgs[HistoryLimit].Content)
}

func TestGeneratePersonaSendsQueryVerbatim(t *testing.T) {
	p := &fakeProvider{resp: okResponse("hey!")}
	e := newTestEngine(p, nil, WithImages(&stubImages{img: &imagegen.Image{URL: "u"}}))

	res, err := e.Generate(t.Context(), Request{
		Query:             "draw me a picture of a fox",
		Mode:              ModeCompare,
		Model:             core.ModelGPT4o,
		Premium:           true,
		ChatMode:          ChatFriend,
		FriendName:        "Sam",
		FriendDescription: "a cheerful companion",
	})
	require.NoError(t, err)

	msgs := p.calls()[0].Messages
	assert.Equal(t, "draw me a picture of a fox", msgs[len(msgs)-1].Content)
	assert.True(t, strings.HasPrefix(msgs[0].Content, "You are Sam, a cheerful companion."))
	assert.Empty(t, res.Images, "images are only attached in normal mode")
}

func TestGenerateImageAttachment(t *testing.T) {
	img := &imagegen.Image{URL: "https://img.example/fox.png", Prompt: "a red fox", Width: 1024, Height: 1024}
	e := newTestEngine(&fakeProvider{resp: okResponse("foxes")}, nil, WithImages(&stubImages{img: img}))

	res, err := e.Generate(t.Context(), Request{Query: "show me a picture of a fox", Model: core.ModelGPT4o, Premium: true})
	require.NoError(t, err)
	require.Len(t, res.Images, 1)
	assert.Equal(t, Image{URL: img.URL, Prompt: "a red fox", Width: 1024, Height: 1024}, res.Images[0])

	e = newTestEngine(&fakeProvider{resp: okResponse("foxes")}, nil, WithImages(&stubImages{err: imagegen.ErrNoImage}))
	res, err = e.Generate(t.Context(), Request{Query: "show me a picture of a fox", Model: core.ModelGPT4o, Premium: true})
	require.NoError(t, err)
	assert.Empty(t, res.Images)
}

func TestGenerateImageTimeoutKeepsAnswer(t *testing.T) {
	e := newTestEngine(&fakeProvider{resp: okResponse("foxes")}, nil,
		WithImages(hangingImages{&stubImages{}}),
		WithImageTimeout(50*time.Millisecond),
	)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	res, err := e.Generate(ctx, Request{Query: "show me a picture of a fox", Model: core.ModelGPT4o, Premium: true})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, time.Second)
	assert.Empty(t, res.Images)
	assert.Equal(t, "foxes", res.Chunks[0].Text)
}

func TestGenerateImageAttachmentOnRequest(t *testing.T) {
	p := &fakeProvider{resp: okResponse("a cat")}
	e := newTestEngine(p, nil)

	_, err := e.Generate(t.Context(), Request{
		Query:        "what is in this photo",
		Model:        core.ModelGPT4o,
		Premium:      true,
		ImageDataURL: "data:image/png;base64,aGVsbG8=",
	})
	require.NoError(t, err)

	msgs := p.calls()[0].Messages
	last := msgs[len(msgs)-1]
	require.Len(t, last.Parts, 2)
	assert.Equal(t, core.InputImage{ImageURL: "data:image/png;base64,aGVsbG8="}, last.Parts[1])
}

func TestGenerateObserverEvent(t *testing.T) {
	obs := &recordingObserver{}
	e := newTestEngine(&fakeProvider{resp: okResponse("ok")}, nil, WithObserver(obs))

	_, err := e.Generate(t.Context(), Request{Query: "hello there", Mode: ModeAsk, Model: core.ModelGPT4o, Premium: true})
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	ev := obs.events[0]
	assert.Equal(t, providers.OpenAI, ev.Provider)
	assert.Equal(t, core.ModelID("vendor-gpt-4o"), ev.Model)
	assert.Equal(t, ChatNormal, ev.ChatMode)
	assert.False(t, ev.Shortcut)
	assert.NoError(t, ev.Err)
	assert.GreaterOrEqual(t, ev.Duration(), time.Duration(0))
}

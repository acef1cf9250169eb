// Package imagegen decides when an answer deserves an illustration and
// produces one through an image-capable provider.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/petal-labs/perle/core"
)

// ErrNoImage is returned when every configured backend failed or returned nothing.
var ErrNoImage = errors.New("imagegen: no image generated")

// Image is a generated picture ready to attach to an answer.
type Image struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var imageKeywords = []string{
	"image", "picture", "photo", "show me", "visualize", "illustration",
	"diagram", "chart", "graph", "drawing", "sketch", "render",
	"design", "create", "generate", "make", "draw", "paint",
}

// ShouldGenerate reports whether query asks for something visual.
func ShouldGenerate(query string) bool {
	q := strings.ToLower(query)
	for _, k := range imageKeywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

var promptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:show me|generate|create|make|draw)(?:\s+(?:a|an|the))?\s+(?:image|picture|photo)?\s*(?:of)?\s+(.+)`),
	regexp.MustCompile(`(?i)(?:image|picture|photo)(?:\s+of)?\s+(.+)`),
	regexp.MustCompile(`(?i)visualize\s+(.+)`),
}

var (
	leadingFiller = regexp.MustCompile(`(?i)^(what|how|show me|can you|please|generate|create|make|draw|give me)\s+`)
	trailingMark  = regexp.MustCompile(`\?$`)
)

// ExtractPrompt derives an image prompt from the query. The answer text is
// accepted for callers that want to enrich the prompt but is not used yet.
func ExtractPrompt(query, answer string) (string, bool) {
	for _, p := range promptPatterns {
		if m := p.FindStringSubmatch(query); m != nil && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1]), true
		}
	}

	if !ShouldGenerate(query) {
		return "", false
	}
	prompt := leadingFiller.ReplaceAllString(query, "")
	prompt = strings.TrimSpace(trailingMark.ReplaceAllString(prompt, ""))
	return prompt, prompt != ""
}

// Generator produces images through a primary backend and falls back to the
// second one when the first fails or returns nothing.
type Generator struct {
	backends []core.ImageGenerator
	size     core.ImageSize
	logger   zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithSize sets the requested image size.
func WithSize(s core.ImageSize) Option {
	return func(g *Generator) {
		if s.IsValid() {
			g.size = s
		}
	}
}

// New returns a Generator trying primary, then fallback. Either may be nil.
func New(primary, fallback core.ImageGenerator, opts ...Option) *Generator {
	g := &Generator{size: core.ImageSizeSquare, logger: zerolog.Nop()}
	for _, b := range []core.ImageGenerator{primary, fallback} {
		if b != nil {
			g.backends = append(g.backends, b)
		}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ShouldGenerate reports whether query asks for something visual.
func (g *Generator) ShouldGenerate(query string) bool {
	return ShouldGenerate(query)
}

// ExtractPrompt derives an image prompt from query and answer.
func (g *Generator) ExtractPrompt(query, answer string) (string, bool) {
	return ExtractPrompt(query, answer)
}

// Generate returns the first image any backend produces.
func (g *Generator) Generate(ctx context.Context, prompt string) (*Image, error) {
	var errs []error
	for i, b := range g.backends {
		img, err := g.generateWith(ctx, b, prompt)
		if err == nil {
			return img, nil
		}
		errs = append(errs, err)
		if i < len(g.backends)-1 {
			g.logger.Warn().Err(err).Msg("primary image backend failed, trying fallback")
		}
	}
	return nil, errors.Join(append([]error{ErrNoImage}, errs...)...)
}

func (g *Generator) generateWith(ctx context.Context, b core.ImageGenerator, prompt string) (*Image, error) {
	resp, err := b.GenerateImage(ctx, &core.ImageGenerateRequest{Prompt: prompt, N: 1, Size: g.size})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || resp.Data[0].Link() == "" {
		return nil, fmt.Errorf("imagegen: %s returned no data", resp.Model)
	}

	w, h := dimensions(g.size)
	return &Image{URL: resp.Data[0].Link(), Prompt: prompt, Width: w, Height: h}, nil
}

func dimensions(s core.ImageSize) (int, int) {
	var w, h int
	if _, err := fmt.Sscanf(string(s), "%dx%d", &w, &h); err != nil {
		return 1024, 1024
	}
	return w, h
}

package answer

import (
	"regexp"
	"strings"
)

// SelfRefKind names the family of a self-referential question.
type SelfRefKind string

const (
	SelfRefIdentity SelfRefKind = "identity"
	SelfRefOrigin   SelfRefKind = "origin"
	SelfRefPurpose  SelfRefKind = "purpose"
	SelfRefVendor   SelfRefKind = "vendor"
)

type selfRefRule struct {
	kind    SelfRefKind
	pattern *regexp.Regexp
}

// selfRefRules are evaluated in order against the lowercased, trimmed query.
var selfRefRules = []selfRefRule{
	{SelfRefPurpose, regexp.MustCompile(`what\s+(is|are)\s+your\s+(name|purpose|goal|mission)`)},
	{SelfRefIdentity, regexp.MustCompile(`who\s+(are|were|is|was)\s+you`)},
	{SelfRefIdentity, regexp.MustCompile(`what\s+(are|were|is|was)\s+you`)},
	{SelfRefOrigin, regexp.MustCompile(`when\s+(did|do|were|are)\s+you\s+(start|begin|created|founded)`)},
	{SelfRefOrigin, regexp.MustCompile(`where\s+(are|were|did|do)\s+you\s+(come|from|start)`)},
	{SelfRefOrigin, regexp.MustCompile(`how\s+(old|long)\s+(are|were|is|was)\s+you`)},
	{SelfRefIdentity, regexp.MustCompile(`tell\s+me\s+(about|who)\s+you`)},
	{SelfRefOrigin, regexp.MustCompile(`who\s+(created|made|built|founded)\s+you`)},
	{SelfRefVendor, regexp.MustCompile(`what\s+(model|ai|system)\s+(are|do)\s+you`)},
	{SelfRefVendor, regexp.MustCompile(`are\s+you\s+(chatgpt|gpt|claude|gemini|grok|openai|anthropic|google)`)},
	{SelfRefVendor, regexp.MustCompile(`you\s+(are|were)\s+(chatgpt|gpt|claude|gemini|grok|openai|anthropic|google)`)},
}

// ClassifySelfReference returns the kind of the first rule the query matches.
func ClassifySelfReference(query string) (SelfRefKind, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, r := range selfRefRules {
		if r.pattern.MatchString(q) {
			return r.kind, true
		}
	}
	return "", false
}

// IsSelfReferential reports whether the query asks about the assistant itself.
func IsSelfReferential(query string) bool {
	_, ok := ClassifySelfReference(query)
	return ok
}

// perleAnswer is the canned reply to self-referential queries.
const perleAnswer = `I am Perle, an advanced AI-powered answer engine designed to provide accurate, well-cited information across a wide range of topics. Perle was founded in 2025 with the mission to make knowledge more accessible and trustworthy through intelligent search and analysis.

Perle combines artificial intelligence with comprehensive information retrieval to deliver answers that are not just accurate, but also transparent about their sources. You can explore topics through several modes: direct questions, in-depth research, summarization and comparative analysis.

Every answer includes references to the sources used, so you can verify information and dive deeper into the topics that interest you.`

// perleSource is the single source cited by the canned reply.
var perleSource = Source{
	ID:      "perle-1",
	Title:   "About Perle",
	URL:     "https://perle.ai",
	Domain:  "perle.ai",
	Year:    2025,
	Snippet: "Perle is an AI-powered answer engine founded in 2025, designed to provide accurate, well-cited information.",
}

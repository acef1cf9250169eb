package answer

import (
	"regexp"
	"strings"
)

// Markdown rewrites applied in order by StripMarkdown.
var markdownRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},
	{regexp.MustCompile(`\*([^*]+)\*`), "$1"},
	{regexp.MustCompile(`__([^_]+)__`), "$1"},
	{regexp.MustCompile(`_([^_]+)_`), "$1"},
	{regexp.MustCompile("```[\\s\\S]*?```"), ""},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// StripMarkdown removes headers, emphasis, code and link markup from text.
func StripMarkdown(text string) string {
	for _, r := range markdownRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return strings.TrimSpace(text)
}

// answerConfidence is the fixed confidence of a formatted chunk.
const answerConfidence = 0.9

// maxChunkCitations is how many sources a chunk cites.
const maxChunkCitations = 2

// ChunkAnswer formats text as a single chunk citing the first two sources.
// It always returns exactly one chunk, even for empty text.
func ChunkAnswer(text string, sources []Source) []Chunk {
	n := min(len(sources), maxChunkCitations)
	ids := make([]string, 0, n)
	for _, s := range sources[:n] {
		ids = append(ids, s.ID)
	}
	return []Chunk{{
		Text:        StripMarkdown(text),
		CitationIDs: ids,
		Confidence:  answerConfidence,
	}}
}

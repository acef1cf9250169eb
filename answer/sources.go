package answer

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/search"
)

// WebSourceTag prefixes ids of sources built from web search hits.
const WebSourceTag = "web"

// snippetLimit is the number of characters kept before the ellipsis.
const snippetLimit = 200

// ExtractSources converts search hits into sources with ids "<tag>-<n>",
// keeping at most limit hits in their original order.
func ExtractSources(hits []search.Result, tag string, limit int) []Source {
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Source, 0, len(hits))
	for i, h := range hits {
		out = append(out, Source{
			ID:      fmt.Sprintf("%s-%d", tag, i+1),
			Title:   h.Title,
			URL:     h.URL,
			Domain:  Domain(h.URL),
			Snippet: Snippet(h.Content),
		})
	}
	return out
}

// CitationSources converts provider grounding citations into sources with ids
// "source-<n>". Repeated URLs are dropped.
func CitationSources(cits []core.Citation) []Source {
	seen := make(map[string]bool, len(cits))
	var out []Source
	for _, c := range cits {
		if c.URL == "" || seen[c.URL] {
			continue
		}
		seen[c.URL] = true
		out = append(out, Source{
			ID:      fmt.Sprintf("source-%d", len(out)+1),
			Title:   c.Title,
			URL:     c.URL,
			Domain:  Domain(c.URL),
			Snippet: Snippet(c.Snippet),
		})
	}
	return out
}

// Domain returns the host of rawURL without a leading "www.".
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Snippet truncates s to 200 characters, appending "..." when cut.
func Snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetLimit {
		return s
	}
	r := []rune(s)
	return string(r[:snippetLimit]) + "..."
}

package answer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/search"
)

func TestExtractSources(t *testing.T) {
	hits := []search.Result{
		{Title: "A", URL: "https://www.example.com/a", Content: "short"},
		{Title: "B", URL: "https://news.example.org/b", Content: strings.Repeat("x", 250)},
		{Title: "C", URL: "https://www.example.com/c", Content: "same domain again"},
	}

	got := ExtractSources(hits, WebSourceTag, 15)
	require.Len(t, got, 3)

	assert.Equal(t, "web-1", got[0].ID)
	assert.Equal(t, "example.com", got[0].Domain)
	assert.Equal(t, "short", got[0].Snippet)

	assert.Equal(t, "web-2", got[1].ID)
	assert.Equal(t, "news.example.org", got[1].Domain)
	assert.Equal(t, strings.Repeat("x", 200)+"...", got[1].Snippet)

	assert.Equal(t, "example.com", got[2].Domain, "domains are not deduplicated")

	assert.Len(t, ExtractSources(hits, "web", 2), 2)
	assert.Empty(t, ExtractSources(nil, "web", 15))
}

func TestSnippetIsRuneSafe(t *testing.T) {
	s := Snippet(strings.Repeat("é", 300))
	assert.True(t, utf8.ValidString(s))
	assert.Equal(t, 203, utf8.RuneCountInString(s))
	assert.LessOrEqual(t, utf8.RuneCountInString(Snippet(strings.Repeat("a", 200))), 203)
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "go.dev", Domain("https://www.go.dev/doc"))
	assert.Equal(t, "wwwexample.com", Domain("https://wwwexample.com"))
	assert.Equal(t, "", Domain("not a url"))
}

func TestCitationSources(t *testing.T) {
	got := CitationSources([]core.Citation{
		{Title: "A", URL: "https://a.example"},
		{Title: "B", URL: "https://www.b.example/x"},
		{Title: "A2", URL: "https://a.example"},
		{Title: "empty"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "source-1", got[0].ID)
	assert.Equal(t, "source-2", got[1].ID)
	assert.Equal(t, "b.example", got[1].Domain)
}

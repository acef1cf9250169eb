package search

import (
	"fmt"
	"strings"
	"time"
)

// FormatForContext renders results as a numbered block for the system prompt,
// dated now. It returns "" when there are no results.
func FormatForContext(results []Result, now time.Time) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	date := now.Format("2 January 2006")
	year := now.Year()

	fmt.Fprintf(&b, "CURRENT WEB SEARCH RESULTS (%s):\n\n", date)
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s\nSource: %s\n%s\n\n", i+1, r.Title, r.URL, r.Content)
	}

	fmt.Fprintf(&b, "INSTRUCTIONS:\n"+
		"1. Use the web search results above for current, accurate information as of %s.\n"+
		"2. Ignore information from earlier years when the question is about \"current\", \"latest\" or %d topics.\n"+
		"3. Be specific and definitive when the results contain the answer.\n"+
		"4. Cite results with their [number].",
		date, year)

	return b.String()
}

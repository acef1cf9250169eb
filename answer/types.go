package answer

import "time"

// Mode is the analytical style of an answer. It drives the token budget and
// the annotation on the user turn.
type Mode string

const (
	ModeAsk       Mode = "Ask"
	ModeResearch  Mode = "Research"
	ModeSummarize Mode = "Summarize"
	ModeCompare   Mode = "Compare"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeAsk, ModeResearch, ModeSummarize, ModeCompare:
		return true
	}
	return false
}

// ChatMode selects the persona and formatting rules of the system prompt.
type ChatMode string

const (
	ChatNormal       ChatMode = "normal"
	ChatFriend       ChatMode = "ai_friend"
	ChatPsychologist ChatMode = "ai_psychologist"
	ChatSpace        ChatMode = "space"
)

// Valid reports whether c is one of the known chat modes.
func (c ChatMode) Valid() bool {
	switch c {
	case ChatNormal, ChatFriend, ChatPsychologist, ChatSpace:
		return true
	}
	return false
}

// conversational reports whether the mode answers in free-form prose.
func (c ChatMode) conversational() bool {
	return c == ChatFriend || c == ChatPsychologist
}

// HistoryRole is the author of a prior conversation turn.
type HistoryRole string

const (
	HistoryUser      HistoryRole = "user"
	HistoryAssistant HistoryRole = "assistant"
)

// HistoryMessage is one prior turn supplied by the caller. The engine only
// reads history; it never writes it back.
type HistoryMessage struct {
	Role      HistoryRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp,omitzero"`
}

// Source is a citable reference attached to a result.
type Source struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Domain  string `json:"domain,omitempty"`
	Year    int    `json:"year,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// Chunk is a unit of answer text with the ids of the sources supporting it.
type Chunk struct {
	Text        string   `json:"text"`
	CitationIDs []string `json:"citationIds"`
	Confidence  float64  `json:"confidence"`
}

// Image is a generated illustration attached to a result.
type Image struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Result is the structured answer returned for one request.
type Result struct {
	Sources   []Source `json:"sources"`
	Chunks    []Chunk  `json:"chunks"`
	Query     string   `json:"query"`
	Mode      Mode     `json:"mode"`
	Timestamp int64    `json:"timestamp"` // epoch milliseconds
	Images    []Image  `json:"images,omitempty"`
}

package xai

// xaiRequest represents a request to the xAI chat completions API.
type xaiRequest struct {
	Model       string       `json:"model"`
	Messages    []xaiMessage `json:"messages"`
	Temperature *float32     `json:"temperature,omitempty"`
	TopP        *float32     `json:"top_p,omitempty"`
	MaxTokens   *int         `json:"max_tokens,omitempty"`
	Stream      bool         `json:"stream"`
}

// xaiMessage represents a message in the xAI format. Content is a string or
// a []xaiContentPart for image input.
type xaiMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// xaiContentPart is one element of a multimodal user message.
type xaiContentPart struct {
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	ImageURL *xaiImageURL `json:"image_url,omitempty"`
}

// xaiImageURL carries an https or data URL.
type xaiImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// xaiResponse represents a response from the xAI chat completions API.
type xaiResponse struct {
	ID      string      `json:"id"`
	Object  string      `json:"object"`
	Created int64       `json:"created"`
	Model   string      `json:"model"`
	Choices []xaiChoice `json:"choices"`
	Usage   xaiUsage    `json:"usage"`
}

// xaiChoice represents a single choice in an xAI response.
type xaiChoice struct {
	Index        int        `json:"index"`
	Message      xaiRespMsg `json:"message"`
	FinishReason string     `json:"finish_reason"`
}

// xaiRespMsg represents the assistant message in a response. Reasoning
// models also return reasoning_content, which is not part of the answer.
type xaiRespMsg struct {
	Role             string `json:"role"`
	Content          string `json:"content"`
	ReasoningContent string `json:"reasoning_content,omitempty"`
}

// xaiUsage represents token usage in an xAI response.
type xaiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

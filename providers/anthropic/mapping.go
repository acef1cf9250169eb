package anthropic

import (
	"strings"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/providers/internal/normalize"
)

// buildRequest creates an Anthropic API request from a core ChatRequest.
// max_tokens is mandatory on this API, so the ceiling is used when unset.
func buildRequest(req *core.ChatRequest) (*anthropicRequest, error) {
	system, messages, err := mapMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	maxTokens := maxOutputTokens
	if req.MaxTokens != nil && *req.MaxTokens < maxOutputTokens {
		maxTokens = *req.MaxTokens
	}

	return &anthropicRequest{
		Model:       string(req.Model),
		Messages:    messages,
		MaxTokens:   maxTokens,
		System:      system,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		TopK:        req.TopK,
	}, nil
}

// mapMessages extracts system messages into a single string and converts
// user/assistant messages to content blocks.
func mapMessages(msgs []core.Message) (string, []anthropicMessage, error) {
	var systemParts []string
	messages := make([]anthropicMessage, 0, len(msgs))

	for _, msg := range msgs {
		if msg.Role == core.RoleSystem {
			systemParts = append(systemParts, msg.Content)
			continue
		}

		blocks, err := mapBlocks(msg)
		if err != nil {
			return "", nil, err
		}
		messages = append(messages, anthropicMessage{Role: string(msg.Role), Content: blocks})
	}

	return strings.Join(systemParts, "\n\n"), messages, nil
}

// mapBlocks converts one message body. Data URLs become base64 image blocks;
// other image URLs are passed by reference.
func mapBlocks(msg core.Message) ([]anthropicContentBlock, error) {
	if len(msg.Parts) == 0 {
		return []anthropicContentBlock{{Type: "text", Text: msg.Content}}, nil
	}

	blocks := make([]anthropicContentBlock, 0, len(msg.Parts))
	for _, part := range msg.Parts {
		switch v := part.(type) {
		case core.InputText:
			blocks = append(blocks, anthropicContentBlock{Type: "text", Text: v.Text})
		case core.InputImage:
			src := &anthropicImageSource{Type: "url", URL: v.ImageURL}
			if strings.HasPrefix(v.ImageURL, "data:") {
				d, err := core.ParseDataURL(v.ImageURL)
				if err != nil {
					return nil, normalize.InvalidInputError("anthropic", err)
				}
				src = &anthropicImageSource{Type: "base64", MediaType: d.MimeType, Data: d.Data}
			}
			blocks = append(blocks, anthropicContentBlock{Type: "image", Source: src})
		}
	}
	return blocks, nil
}

// mapResponse converts an Anthropic response to a core ChatResponse.
func mapResponse(resp *anthropicResponse) *core.ChatResponse {
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &core.ChatResponse{
		ID:           resp.ID,
		Model:        core.ModelID(resp.Model),
		Output:       text.String(),
		FinishReason: normalize.AnthropicFinishReason(resp.StopReason),
		Usage: core.TokenUsage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}
}

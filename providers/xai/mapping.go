package xai

import (
	"strings"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/providers/internal/normalize"
)

// mapMessages converts core messages to xAI message format.
func mapMessages(msgs []core.Message) ([]xaiMessage, error) {
	result := make([]xaiMessage, 0, len(msgs))
	for _, msg := range msgs {
		if len(msg.Parts) == 0 {
			result = append(result, xaiMessage{Role: string(msg.Role), Content: msg.Content})
			continue
		}

		var parts []xaiContentPart
		for _, part := range msg.Parts {
			switch v := part.(type) {
			case core.InputText:
				parts = append(parts, xaiContentPart{Type: "text", Text: v.Text})
			case core.InputImage:
				if strings.HasPrefix(v.ImageURL, "data:") {
					if _, err := core.ParseDataURL(v.ImageURL); err != nil {
						return nil, normalize.InvalidInputError("xai", err)
					}
				}
				parts = append(parts, xaiContentPart{
					Type:     "image_url",
					ImageURL: &xaiImageURL{URL: v.ImageURL, Detail: "high"},
				})
			}
		}
		result = append(result, xaiMessage{Role: string(msg.Role), Content: parts})
	}
	return result, nil
}

// buildRequest creates an xAI API request from a core ChatRequest.
// Penalties and top_k are dropped; Grok does not accept them on all models.
func buildRequest(req *core.ChatRequest) (*xaiRequest, error) {
	msgs, err := mapMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	xReq := &xaiRequest{
		Model:       string(req.Model),
		Messages:    msgs,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}
	if xReq.MaxTokens != nil && *xReq.MaxTokens > maxOutputTokens {
		n := maxOutputTokens
		xReq.MaxTokens = &n
	}
	return xReq, nil
}

// mapResponse converts an xAI response to a core ChatResponse.
func mapResponse(resp *xaiResponse) *core.ChatResponse {
	result := &core.ChatResponse{
		ID:           resp.ID,
		Model:        core.ModelID(resp.Model),
		FinishReason: core.FinishStop,
		Usage: core.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		result.Output = choice.Message.Content
		result.FinishReason = normalize.OpenAIFinishReason(choice.FinishReason)
	}

	return result
}

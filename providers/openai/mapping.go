package openai

import (
	"strings"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/providers/internal/normalize"
)

// mapMessages converts core messages to OpenAI message format. Messages with
// parts become content arrays; image parts must be https or data URLs.
func mapMessages(msgs []core.Message) ([]openAIMessage, error) {
	result := make([]openAIMessage, len(msgs))
	for i, msg := range msgs {
		if len(msg.Parts) == 0 {
			result[i] = openAIMessage{Role: string(msg.Role), Content: msg.Content}
			continue
		}

		parts := make([]openAIContentPart, 0, len(msg.Parts))
		for _, part := range msg.Parts {
			switch v := part.(type) {
			case core.InputText:
				parts = append(parts, openAIContentPart{Type: "text", Text: v.Text})
			case core.InputImage:
				if err := checkImageURL(v.ImageURL); err != nil {
					return nil, normalize.InvalidInputError("openai", err)
				}
				parts = append(parts, openAIContentPart{Type: "image_url", ImageURL: &openAIImageURL{URL: v.ImageURL}})
			}
		}
		result[i] = openAIMessage{Role: string(msg.Role), Content: parts}
	}
	return result, nil
}

// checkImageURL validates data URLs; hosted URLs pass through.
func checkImageURL(u string) error {
	if strings.HasPrefix(u, "data:") {
		_, err := core.ParseDataURL(u)
		return err
	}
	return nil
}

// buildRequest creates an OpenAI API request from a core ChatRequest.
func buildRequest(req *core.ChatRequest) (*openAIRequest, error) {
	msgs, err := mapMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	oaiReq := &openAIRequest{
		Model:            string(req.Model),
		Messages:         msgs,
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
		MaxTokens:        req.MaxTokens,
	}

	if oaiReq.MaxTokens != nil && *oaiReq.MaxTokens > maxOutputTokens {
		n := maxOutputTokens
		oaiReq.MaxTokens = &n
	}

	return oaiReq, nil
}

// mapResponse converts an OpenAI response to a core ChatResponse.
// A refusal is reported as a safety stop with no output.
func mapResponse(resp *openAIResponse) *core.ChatResponse {
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
		if choice.Message.Refusal != "" && choice.Message.Content == "" {
			result.FinishReason = core.FinishSafety
		}
	}

	return result
}

// mapImageRequest converts a core image request for DALL-E 3.
func mapImageRequest(req *core.ImageGenerateRequest) *openAIImageRequest {
	model := req.Model
	if model == "" {
		model = ModelDALLE3
	}
	size := req.Size
	if !size.IsValid() {
		size = core.ImageSizeSquare
	}
	n := req.N
	if n == 0 {
		n = 1
	}
	return &openAIImageRequest{
		Model:          string(model),
		Prompt:         req.Prompt,
		N:              n,
		Size:           string(size),
		ResponseFormat: "url",
	}
}

// mapImageResponse converts an image API response to core format.
func mapImageResponse(model core.ModelID, resp *openAIImageResponse) *core.ImageResponse {
	out := &core.ImageResponse{Created: resp.Created, Model: model}
	for _, d := range resp.Data {
		out.Data = append(out.Data, core.ImageData{
			B64JSON:       d.B64JSON,
			MimeType:      "image/png",
			URL:           d.URL,
			RevisedPrompt: d.RevisedPrompt,
		})
	}
	return out
}

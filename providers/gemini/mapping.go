package gemini

import (
	"strings"
	"time"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/providers/internal/normalize"
)

// Gemini role constants.
const (
	roleUser  = "user"
	roleModel = "model"
)

// mapMessages splits system messages into the system instruction and converts
// the rest to Gemini contents. Assistant turns use the "model" role.
func mapMessages(msgs []core.Message) (*geminiContent, []geminiContent, error) {
	var systemParts []string
	contents := make([]geminiContent, 0, len(msgs))

	for _, msg := range msgs {
		if msg.Role == core.RoleSystem {
			systemParts = append(systemParts, msg.Content)
			continue
		}

		role := roleUser
		if msg.Role == core.RoleAssistant {
			role = roleModel
		}

		parts, err := mapParts(msg)
		if err != nil {
			return nil, nil, err
		}
		contents = append(contents, geminiContent{Role: role, Parts: parts})
	}

	var system *geminiContent
	if len(systemParts) > 0 {
		system = &geminiContent{
			Parts: []geminiPart{{Text: strings.Join(systemParts, "\n\n")}},
		}
	}
	return system, contents, nil
}

// mapParts converts one message body. Data URLs become inline data; other
// image URLs are passed by reference.
func mapParts(msg core.Message) ([]geminiPart, error) {
	if len(msg.Parts) == 0 {
		return []geminiPart{{Text: msg.Content}}, nil
	}

	parts := make([]geminiPart, 0, len(msg.Parts))
	for _, part := range msg.Parts {
		switch v := part.(type) {
		case core.InputText:
			parts = append(parts, geminiPart{Text: v.Text})
		case core.InputImage:
			if !strings.HasPrefix(v.ImageURL, "data:") {
				parts = append(parts, geminiPart{FileData: &geminiFileData{FileURI: v.ImageURL}})
				continue
			}
			d, err := core.ParseDataURL(v.ImageURL)
			if err != nil {
				return nil, normalize.InvalidInputError("gemini", err)
			}
			parts = append(parts, geminiPart{InlineData: &geminiInlineData{MimeType: d.MimeType, Data: d.Data}})
		}
	}
	return parts, nil
}

// buildRequest creates a Gemini API request from a core ChatRequest.
func buildRequest(req *core.ChatRequest) (*geminiRequest, error) {
	system, contents, err := mapMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	gemReq := &geminiRequest{
		Contents:          contents,
		SystemInstruction: system,
	}

	cfg := &geminiGenConfig{
		Temperature:     req.Temperature,
		TopP:            req.TopP,
		TopK:            req.TopK,
		MaxOutputTokens: req.MaxTokens,
	}
	if cfg.MaxOutputTokens != nil && *cfg.MaxOutputTokens > maxOutputTokens {
		n := maxOutputTokens
		cfg.MaxOutputTokens = &n
	}
	if cfg.Temperature != nil || cfg.TopP != nil || cfg.TopK != nil || cfg.MaxOutputTokens != nil {
		gemReq.GenerationConfig = cfg
	}

	if req.Grounding {
		gemReq.Tools = []geminiTool{{GoogleSearch: &struct{}{}}}
	}

	return gemReq, nil
}

// mapResponse converts a Gemini response to a core ChatResponse. A blocked
// prompt or a response without candidates is reported as a safety stop.
func mapResponse(resp *geminiResponse, model core.ModelID) *core.ChatResponse {
	result := &core.ChatResponse{
		ID:           resp.ResponseID,
		Model:        model,
		FinishReason: core.FinishStop,
	}
	if resp.ModelVersion != "" {
		result.Model = core.ModelID(resp.ModelVersion)
	}

	if resp.UsageMetadata != nil {
		result.Usage = core.TokenUsage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
		if result.Usage.TotalTokens == 0 {
			result.Usage.TotalTokens = result.Usage.PromptTokens + result.Usage.CompletionTokens
		}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		result.FinishReason = core.FinishSafety
		return result
	}
	if len(resp.Candidates) == 0 {
		return result
	}

	candidate := resp.Candidates[0]
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}
	result.Output = text.String()
	result.FinishReason = normalize.GeminiFinishReason(candidate.FinishReason)
	result.Citations = mapCitations(candidate.GroundingMetadata)

	return result
}

// mapCitations collects grounding web chunks, dropping repeated URLs.
func mapCitations(md *geminiGroundingMetadata) []core.Citation {
	if md == nil {
		return nil
	}
	seen := make(map[string]bool, len(md.GroundingChunks))
	var out []core.Citation
	for _, chunk := range md.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		out = append(out, core.Citation{Title: chunk.Web.Title, URL: chunk.Web.URI})
	}
	return out
}

// mapImageRequest converts a core image request for Imagen.
func mapImageRequest(req *core.ImageGenerateRequest) *imagenRequest {
	n := req.N
	if n == 0 {
		n = 1
	}
	return &imagenRequest{
		Instances: []imagenInstance{{Prompt: req.Prompt}},
		Parameters: imagenParameters{
			SampleCount: n,
			AspectRatio: req.Size.AspectRatio(),
		},
	}
}

// mapImageResponse converts Imagen predictions to core format.
func mapImageResponse(model core.ModelID, resp *imagenResponse) *core.ImageResponse {
	out := &core.ImageResponse{Created: time.Now().Unix(), Model: model}
	for _, p := range resp.Predictions {
		if p.BytesBase64Encoded == "" {
			continue
		}
		mime := p.MimeType
		if mime == "" {
			mime = "image/png"
		}
		out.Data = append(out.Data, core.ImageData{B64JSON: p.BytesBase64Encoded, MimeType: mime})
	}
	return out
}

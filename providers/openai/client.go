package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/petal-labs/perle/core"
)

const (
	chatCompletionsPath  = "/chat/completions"
	imageGenerationsPath = "/images/generations"
)

// doChat performs a non-streaming chat completion request.
func (p *OpenAI) doChat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	oaiReq, err := buildRequest(req)
	if err != nil {
		return nil, err
	}

	var oaiResp openAIResponse
	if err := p.post(ctx, chatCompletionsPath, oaiReq, &oaiResp); err != nil {
		return nil, err
	}

	return mapResponse(&oaiResp), nil
}

// GenerateImage generates images from a text prompt with DALL-E 3.
func (p *OpenAI) GenerateImage(ctx context.Context, req *core.ImageGenerateRequest) (*core.ImageResponse, error) {
	imgReq := mapImageRequest(req)

	var imgResp openAIImageResponse
	if err := p.post(ctx, imageGenerationsPath, imgReq, &imgResp); err != nil {
		return nil, err
	}

	return mapImageResponse(core.ModelID(imgReq.Model), &imgResp), nil
}

// post sends a JSON body and decodes a JSON reply, normalizing failures.
func (p *OpenAI) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return newDecodeError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return newNetworkError(err)
	}

	for key, values := range p.buildHeaders() {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := p.config.HTTPClient.Do(httpReq)
	if err != nil {
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newNetworkError(err)
	}

	if resp.StatusCode >= 400 {
		return normalizeError(resp.StatusCode, respBody, resp.Header.Get("x-request-id"))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return newDecodeError(err)
	}
	return nil
}

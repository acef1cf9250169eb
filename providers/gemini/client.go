package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/petal-labs/perle/core"
)

// doChat performs a non-streaming generateContent request.
func (p *Gemini) doChat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	gemReq, err := buildRequest(req)
	if err != nil {
		return nil, err
	}

	var gemResp geminiResponse
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.config.BaseURL, req.Model)
	if err := p.post(ctx, url, gemReq, &gemResp); err != nil {
		return nil, err
	}

	return mapResponse(&gemResp, req.Model), nil
}

// GenerateImage generates images from a text prompt with Imagen.
func (p *Gemini) GenerateImage(ctx context.Context, req *core.ImageGenerateRequest) (*core.ImageResponse, error) {
	model := req.Model
	if model == "" {
		model = ModelImagen3
	}

	var imgResp imagenResponse
	url := fmt.Sprintf("%s/v1beta/models/%s:predict", p.config.BaseURL, model)
	if err := p.post(ctx, url, mapImageRequest(req), &imgResp); err != nil {
		return nil, err
	}

	return mapImageResponse(model, &imgResp), nil
}

// post sends a JSON body and decodes a JSON reply, normalizing failures.
func (p *Gemini) post(ctx context.Context, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return newDecodeError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
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
		return normalizeError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return newDecodeError(err)
	}
	return nil
}

package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/petal-labs/perle/core"
)

const messagesPath = "/v1/messages"

// doChat performs a non-streaming Messages API request.
func (p *Anthropic) doChat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	antReq, err := buildRequest(req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(antReq)
	if err != nil {
		return nil, newDecodeError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, newNetworkError(err)
	}

	for key, values := range p.buildHeaders() {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := p.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp.StatusCode, respBody, resp.Header.Get("request-id"))
	}

	var antResp anthropicResponse
	if err := json.Unmarshal(respBody, &antResp); err != nil {
		return nil, newDecodeError(err)
	}

	return mapResponse(&antResp), nil
}

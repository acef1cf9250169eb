package xai

import (
	"errors"
	"testing"

	"github.com/petal-labs/perle/core"
)

func TestBuildRequestDropsPenalties(t *testing.T) {
	req := &core.ChatRequest{
		Model:    "grok-3",
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	}
	req.ApplySampling(core.Sampling{Temperature: 0.3, TopP: 0.9, FrequencyPenalty: 0.5, TopK: 40})

	xReq, err := buildRequest(req)
	if err != nil {
		t.Fatalf("buildRequest() error = %v", err)
	}
	if xReq.Temperature == nil || *xReq.Temperature != 0.3 {
		t.Errorf("Temperature = %v", xReq.Temperature)
	}
	if xReq.TopP == nil || *xReq.TopP != 0.9 {
		t.Errorf("TopP = %v", xReq.TopP)
	}
}

func TestBuildRequestImage(t *testing.T) {
	xReq, err := buildRequest(&core.ChatRequest{
		Model: "grok-4",
		Messages: []core.Message{{
			Role: core.RoleUser,
			Parts: []core.ContentPart{
				core.InputText{Text: "describe"},
				core.InputImage{ImageURL: "data:image/webp;base64,UklGRg=="},
			},
		}},
	})
	if err != nil {
		t.Fatalf("buildRequest() error = %v", err)
	}
	parts := xReq.Messages[0].Content.([]xaiContentPart)
	if len(parts) != 2 || parts[1].ImageURL == nil {
		t.Fatalf("parts = %+v", parts)
	}
	if parts[1].ImageURL.URL != "data:image/webp;base64,UklGRg==" {
		t.Errorf("image url = %q", parts[1].ImageURL.URL)
	}

	_, err = buildRequest(&core.ChatRequest{
		Model: "grok-4",
		Messages: []core.Message{{
			Role:  core.RoleUser,
			Parts: []core.ContentPart{core.InputImage{ImageURL: "data:;base64,"}},
		}},
	})
	if !errors.Is(err, core.ErrBadRequest) {
		t.Errorf("malformed image error = %v, want ErrBadRequest", err)
	}
}

func TestMapResponse(t *testing.T) {
	resp := mapResponse(&xaiResponse{
		ID:    "x-1",
		Model: "grok-3-mini",
		Choices: []xaiChoice{{
			Message:      xaiRespMsg{Content: "answer", ReasoningContent: "thinking..."},
			FinishReason: "length",
		}},
		Usage: xaiUsage{TotalTokens: 42},
	})

	if resp.Output != "answer" {
		t.Errorf("Output = %q, want %q", resp.Output, "answer")
	}
	if resp.FinishReason != core.FinishLength {
		t.Errorf("FinishReason = %q, want length", resp.FinishReason)
	}
	if resp.Usage.TotalTokens != 42 {
		t.Errorf("TotalTokens = %d, want 42", resp.Usage.TotalTokens)
	}
}

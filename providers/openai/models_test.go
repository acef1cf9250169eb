package openai

import (
	"testing"

	"github.com/petal-labs/perle/core"
)

func TestResolveModel(t *testing.T) {
	p := New("k")
	tests := []struct {
		in         core.LLMModel
		want       core.ModelID
		deprecated bool
		fallback   bool
	}{
		{core.ModelGPT5, ModelGPT4o, false, false},
		{core.ModelGPT4o, ModelGPT4o, false, false},
		{core.ModelGPT4oMini, ModelGPT4oMini, false, false},
		{core.ModelGPT4Turbo, ModelGPT4Turbo, false, false},
		{core.ModelGPT4, ModelGPT4oMini, true, false},
		{core.ModelGPT35Turbo, ModelGPT35Turbo, false, false},
		{core.ModelAuto, ModelGPT4oMini, false, false},
		{core.ModelLlama2, ModelGPT4oMini, false, true},
		{"gpt-99", ModelGPT4oMini, false, true},
	}

	for _, tt := range tests {
		got := p.ResolveModel(tt.in)
		if got.Model != tt.want {
			t.Errorf("ResolveModel(%q).Model = %q, want %q", tt.in, got.Model, tt.want)
		}
		if got.Deprecated != tt.deprecated || got.Fallback != tt.fallback {
			t.Errorf("ResolveModel(%q) = %+v", tt.in, got)
		}
	}
}

func TestResolvedModelsAreListed(t *testing.T) {
	p := New("k")
	for _, id := range core.Catalog {
		res := p.ResolveModel(id)
		if GetModelInfo(res.Model) == nil {
			t.Errorf("ResolveModel(%q) = %q, which is not in the model list", id, res.Model)
		}
	}
}

func TestModelsReturnsCopy(t *testing.T) {
	p := New("k")
	m := p.Models()
	m[0].DisplayName = "changed"
	if p.Models()[0].DisplayName == "changed" {
		t.Error("Models() should return a copy")
	}
	if !GetModelInfo(ModelDALLE3).HasCapability(core.FeatureImageGeneration) {
		t.Error("dall-e-3 missing FeatureImageGeneration")
	}
}

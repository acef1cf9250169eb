// Package openai provides the OpenAI completion and DALL-E adapter.
package openai

import "github.com/petal-labs/perle/core"

// Model constants for OpenAI models.
const (
	ModelGPT4o      core.ModelID = "gpt-4o"
	ModelGPT4oMini  core.ModelID = "gpt-4o-mini"
	ModelGPT4Turbo  core.ModelID = "gpt-4-turbo"
	ModelGPT35Turbo core.ModelID = "gpt-3.5-turbo"
	ModelDALLE3     core.ModelID = "dall-e-3"
)

// DefaultModel is used for "auto" and for ids the table does not know.
const DefaultModel = ModelGPT4oMini

// models is the static list of supported models.
var models = []core.ModelInfo{
	{
		ID:           ModelGPT4o,
		DisplayName:  "GPT-4o",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelGPT4oMini,
		DisplayName:  "GPT-4o mini",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelGPT4Turbo,
		DisplayName:  "GPT-4 Turbo",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelGPT35Turbo,
		DisplayName:  "GPT-3.5 Turbo",
		Capabilities: []core.Feature{core.FeatureChat},
	},
	{
		ID:           ModelDALLE3,
		DisplayName:  "DALL-E 3",
		Capabilities: []core.Feature{core.FeatureImageGeneration},
	},
}

// modelRegistry is a map for quick model lookup by ID.
var modelRegistry = buildModelRegistry()

// buildModelRegistry creates a map from model ID to ModelInfo.
func buildModelRegistry() map[core.ModelID]*core.ModelInfo {
	registry := make(map[core.ModelID]*core.ModelInfo, len(models))
	for i := range models {
		registry[models[i].ID] = &models[i]
	}
	return registry
}

// GetModelInfo returns the ModelInfo for a given model ID, or nil if not found.
func GetModelInfo(id core.ModelID) *core.ModelInfo {
	return modelRegistry[id]
}

// ResolveModel maps a catalog id onto an OpenAI model.
// gpt-5 is served by gpt-4o; gpt-4 was retired in favor of gpt-4o-mini.
func (p *OpenAI) ResolveModel(id core.LLMModel) core.Resolution {
	switch id {
	case core.ModelGPT5, core.ModelGPT4o:
		return core.Resolution{Model: ModelGPT4o}
	case core.ModelGPT4oMini:
		return core.Resolution{Model: ModelGPT4oMini}
	case core.ModelGPT4Turbo:
		return core.Resolution{Model: ModelGPT4Turbo}
	case core.ModelGPT4:
		return core.Resolution{Model: ModelGPT4oMini, Deprecated: true}
	case core.ModelGPT35Turbo:
		return core.Resolution{Model: ModelGPT35Turbo}
	case core.ModelAuto:
		return core.Resolution{Model: DefaultModel}
	default:
		return core.Resolution{Model: DefaultModel, Fallback: true}
	}
}

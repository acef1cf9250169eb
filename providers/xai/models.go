// Package xai provides the xAI Grok completion adapter.
package xai

import "github.com/petal-labs/perle/core"

// Model constants for xAI Grok models.
const (
	ModelGrok3        core.ModelID = "grok-3"
	ModelGrok3Mini    core.ModelID = "grok-3-mini"
	ModelGrok4        core.ModelID = "grok-4"
	ModelGrokCodeFast core.ModelID = "grok-code-fast-1"
)

// DefaultModel is used for "auto" and for ids the table does not know.
const DefaultModel = ModelGrok3

// models is the static list of supported models.
var models = []core.ModelInfo{
	{
		ID:           ModelGrok3,
		DisplayName:  "Grok 3",
		Capabilities: []core.Feature{core.FeatureChat},
	},
	{
		ID:           ModelGrok3Mini,
		DisplayName:  "Grok 3 Mini",
		Capabilities: []core.Feature{core.FeatureChat},
	},
	{
		ID:           ModelGrok4,
		DisplayName:  "Grok 4",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelGrokCodeFast,
		DisplayName:  "Grok Code Fast",
		Capabilities: []core.Feature{core.FeatureChat},
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

// ResolveModel maps a catalog id onto a Grok model. The heavy and fast
// grok-4 variants are served by grok-3; grok-beta is retired.
func (p *Xai) ResolveModel(id core.LLMModel) core.Resolution {
	switch id {
	case core.ModelGrok3, core.ModelGrok4Heavy, core.ModelGrok4Fast:
		return core.Resolution{Model: ModelGrok3}
	case core.ModelGrok3Mini:
		return core.Resolution{Model: ModelGrok3Mini}
	case core.ModelGrok4:
		return core.Resolution{Model: ModelGrok4}
	case core.ModelGrokCode:
		return core.Resolution{Model: ModelGrokCodeFast}
	case core.ModelGrokBeta:
		return core.Resolution{Model: ModelGrok3, Deprecated: true}
	case core.ModelAuto:
		return core.Resolution{Model: DefaultModel}
	default:
		return core.Resolution{Model: DefaultModel, Fallback: true}
	}
}

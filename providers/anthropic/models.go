// Package anthropic provides the Anthropic Claude completion adapter.
package anthropic

import "github.com/petal-labs/perle/core"

// Model constants for Anthropic models.
const (
	ModelClaudeSonnet45 core.ModelID = "claude-sonnet-4-5"
	ModelClaude3Opus    core.ModelID = "claude-3-opus-latest"
	ModelClaude37Sonnet core.ModelID = "claude-3-7-sonnet-latest"
	ModelClaude35Haiku  core.ModelID = "claude-3-5-haiku-latest"
)

// DefaultModel is used for "auto".
const DefaultModel = ModelClaudeSonnet45

// FallbackModel is used for ids the table does not know.
const FallbackModel = ModelClaude35Haiku

// models is the static list of supported models.
var models = []core.ModelInfo{
	{
		ID:           ModelClaudeSonnet45,
		DisplayName:  "Claude Sonnet 4.5",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelClaude3Opus,
		DisplayName:  "Claude 3 Opus",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelClaude37Sonnet,
		DisplayName:  "Claude 3.7 Sonnet",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelClaude35Haiku,
		DisplayName:  "Claude 3.5 Haiku",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
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

// ResolveModel maps a catalog id onto a Claude model. The retired Claude 3
// Sonnet is served by 3.7 Sonnet.
func (p *Anthropic) ResolveModel(id core.LLMModel) core.Resolution {
	switch id {
	case core.ModelClaude45, core.ModelAuto:
		return core.Resolution{Model: DefaultModel}
	case core.ModelClaude3Opus:
		return core.Resolution{Model: ModelClaude3Opus}
	case core.ModelClaude3Son:
		return core.Resolution{Model: ModelClaude37Sonnet, Deprecated: true}
	case core.ModelClaude3Hai:
		return core.Resolution{Model: ModelClaude35Haiku}
	default:
		return core.Resolution{Model: FallbackModel, Fallback: true}
	}
}

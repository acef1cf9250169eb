// Package gemini provides the Google Gemini completion and Imagen adapter.
package gemini

import "github.com/petal-labs/perle/core"

// Model constants for Gemini models.
const (
	ModelGemini20Flash core.ModelID = "gemini-2.0-flash"
	ModelGeminiFlash   core.ModelID = "gemini-flash-latest"
	ModelGemini15Pro   core.ModelID = "gemini-1.5-pro"
	ModelImagen3       core.ModelID = "imagen-3.0-generate-001"
)

// DefaultModel is used for "auto", "gemini-lite" and ids the table does not know.
const DefaultModel = ModelGeminiFlash

// models is the static list of supported models.
var models = []core.ModelInfo{
	{
		ID:           ModelGemini20Flash,
		DisplayName:  "Gemini 2.0 Flash",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision, core.FeatureGrounding},
	},
	{
		ID:           ModelGeminiFlash,
		DisplayName:  "Gemini Flash (latest)",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelGemini15Pro,
		DisplayName:  "Gemini 1.5 Pro",
		Capabilities: []core.Feature{core.FeatureChat, core.FeatureVision},
	},
	{
		ID:           ModelImagen3,
		DisplayName:  "Imagen 3",
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

// ResolveModel maps a catalog id onto a Gemini model. gemini-2.0-latest is the
// premium tier and the only one that runs with search grounding.
func (p *Gemini) ResolveModel(id core.LLMModel) core.Resolution {
	switch id {
	case core.ModelGemini20:
		return core.Resolution{Model: ModelGemini20Flash, Grounded: true}
	case core.ModelGeminiLite, core.ModelAuto:
		return core.Resolution{Model: DefaultModel}
	case core.ModelGeminiPro, core.ModelGeminiPV:
		return core.Resolution{Model: ModelGemini15Pro, Deprecated: true}
	default:
		return core.Resolution{Model: DefaultModel, Fallback: true}
	}
}

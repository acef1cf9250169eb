package answer

import (
	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/providers"
)

// DefaultModel is the catalog id used for "auto", free users and ids no
// family claims.
const DefaultModel = core.ModelGeminiLite

// families maps every catalog id onto the adapter that serves it.
var families = map[core.LLMModel]string{
	core.ModelGPT5:        providers.OpenAI,
	core.ModelGPT4o:       providers.OpenAI,
	core.ModelGPT4oMini:   providers.OpenAI,
	core.ModelGPT4Turbo:   providers.OpenAI,
	core.ModelGPT4:        providers.OpenAI,
	core.ModelGPT35Turbo:  providers.OpenAI,
	core.ModelGemini20:    providers.Gemini,
	core.ModelGeminiLite:  providers.Gemini,
	core.ModelGeminiPro:   providers.Gemini,
	core.ModelGeminiPV:    providers.Gemini,
	core.ModelGrok3:       providers.XAI,
	core.ModelGrok3Mini:   providers.XAI,
	core.ModelGrok4:       providers.XAI,
	core.ModelGrok4Heavy:  providers.XAI,
	core.ModelGrok4Fast:   providers.XAI,
	core.ModelGrokCode:    providers.XAI,
	core.ModelGrokBeta:    providers.XAI,
	core.ModelClaude45:    providers.Anthropic,
	core.ModelClaude3Opus: providers.Anthropic,
	core.ModelClaude3Son:  providers.Anthropic,
	core.ModelClaude3Hai:  providers.Anthropic,
}

// Route is the adapter and catalog id a request runs with.
type Route struct {
	Provider string
	Model    core.LLMModel

	// Fallback is set when the requested id was replaced by DefaultModel.
	Fallback bool
}

// Resolve picks the adapter for model. Free users always get DefaultModel;
// "auto" and ids outside the table route to DefaultModel too.
func Resolve(model core.LLMModel, premium bool) Route {
	if !premium || model == core.ModelAuto || model == "" {
		return Route{Provider: providers.Gemini, Model: DefaultModel}
	}
	if family, ok := families[model]; ok {
		return Route{Provider: family, Model: model}
	}
	return Route{Provider: providers.Gemini, Model: DefaultModel, Fallback: true}
}

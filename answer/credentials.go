package answer

import (
	"fmt"
	"os"

	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/providers"
)

// Credential variable names.
const (
	EnvOpenAI     = "OPENAI_API_KEY"
	EnvXAI        = "XAI_API_KEY"
	EnvAnthropic  = "ANTHROPIC_API_KEY"
	EnvGoogle     = "GOOGLE_API_KEY"
	EnvGoogleFree = "GOOGLE_API_KEY_FREE"
)

// Credentials resolves the API key for a provider.
type Credentials interface {
	APIKey(provider string, premium bool) (string, error)
}

// KeyVars lists the variables consulted for provider in lookup order.
// Gemini serves free and premium users from separate keys, each falling
// back to the other.
func KeyVars(provider string, premium bool) []string {
	switch provider {
	case providers.OpenAI:
		return []string{EnvOpenAI}
	case providers.XAI:
		return []string{EnvXAI}
	case providers.Anthropic:
		return []string{EnvAnthropic}
	case providers.Gemini:
		if premium {
			return []string{EnvGoogle, EnvGoogleFree}
		}
		return []string{EnvGoogleFree, EnvGoogle}
	}
	return nil
}

// LookupSource resolves keys through a variable lookup function.
type LookupSource func(name string) string

// EnvSource reads keys from the process environment.
var EnvSource = LookupSource(os.Getenv)

// APIKey returns the first non-empty variable for provider. A missing key
// is a *core.ConfigError naming the preferred variable.
func (f LookupSource) APIKey(provider string, premium bool) (string, error) {
	vars := KeyVars(provider, premium)
	if len(vars) == 0 {
		return "", fmt.Errorf("answer: no credentials known for provider %q", provider)
	}
	for _, v := range vars {
		if key := f(v); key != "" {
			return key, nil
		}
	}
	return "", &core.ConfigError{Key: vars[0]}
}

// ChainLookup consults each lookup in order and returns the first non-empty value.
func ChainLookup(lookups ...func(string) string) LookupSource {
	return func(name string) string {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v := l(name); v != "" {
				return v
			}
		}
		return ""
	}
}

var _ Credentials = LookupSource(nil)

package providers

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/petal-labs/perle/core"
)

// Settings carries the per-deployment overrides a factory may apply.
// Zero values keep the adapter defaults.
type Settings struct {
	BaseURL    string
	HTTPClient *http.Client

	// Headers are sent with every request, after the adapter's own headers.
	Headers map[string]string
}

// ProviderFactory creates a provider instance with the given API key.
type ProviderFactory func(apiKey string, s Settings) core.Provider

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ProviderFactory)
)

// Register adds a provider factory to the registry.
// It is called from each adapter's init function; registering a name twice
// replaces the earlier factory.
func Register(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a provider factory by name.
// Returns nil if the provider is not registered.
func Get(name string) ProviderFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

// Create builds a provider by name with default settings.
func Create(name, apiKey string) (core.Provider, error) {
	return CreateWith(name, apiKey, Settings{})
}

// CreateWith builds a provider by name, applying s.
// Returns an error if the provider is not registered.
func CreateWith(name, apiKey string, s Settings) (core.Provider, error) {
	factory := Get(name)
	if factory == nil {
		return nil, fmt.Errorf("unknown provider: %s (available: %v)", name, List())
	}
	return factory(apiKey, s), nil
}

// List returns the names of all registered providers in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a provider with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

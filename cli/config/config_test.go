package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, should end with config.yaml", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".perle" {
		t.Errorf("DefaultConfigPath() = %q, should be in .perle directory", path)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil for missing file", err)
	}

	def := Default()
	if cfg.DefaultModel != def.DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", cfg.DefaultModel, def.DefaultModel)
	}
	if cfg.Search != def.Search {
		t.Errorf("Search = %+v, want %+v", cfg.Search, def.Search)
	}
	if cfg.Server != def.Server {
		t.Errorf("Server = %+v, want %+v", cfg.Server, def.Server)
	}
	if cfg.Images != def.Images {
		t.Errorf("Images = %+v, want %+v", cfg.Images, def.Images)
	}
	if cfg.Providers == nil {
		t.Error("Providers map is nil")
	}
}

func TestLoadConfigValid(t *testing.T) {
	path := writeConfig(t, `
default_model: gpt-4o
premium: true
log_level: debug

search:
  enabled: false
  limit: 5
  timeout: 3s

images:
  timeout: 5s

server:
  addr: ":9000"

providers:
  openai:
    api_key: sk-from-config
    base_url: https://proxy.example/v1
    headers:
      OpenAI-Organization: org-1
  gemini:
    free_api_key: free-key
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DefaultModel != "gpt-4o" {
		t.Errorf("DefaultModel = %q, want gpt-4o", cfg.DefaultModel)
	}
	if !cfg.Premium {
		t.Error("Premium = false, want true")
	}
	if cfg.Search.Enabled || cfg.Search.Limit != 5 || cfg.Search.Timeout != 3*time.Second {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Server.WriteTimeout != 90*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want default 90s", cfg.Server.WriteTimeout)
	}
	if len(cfg.Providers) != 2 {
		t.Errorf("len(Providers) = %d, want 2", len(cfg.Providers))
	}

	openai := cfg.Providers["openai"]
	if openai.APIKey != "sk-from-config" {
		t.Errorf("openai.APIKey = %q, want sk-from-config", openai.APIKey)
	}
	if openai.BaseURL != "https://proxy.example/v1" {
		t.Errorf("openai.BaseURL = %q", openai.BaseURL)
	}
	var org string
	for k, v := range openai.Headers {
		if strings.EqualFold(k, "OpenAI-Organization") {
			org = v
		}
	}
	if org != "org-1" {
		t.Errorf("openai.Headers = %v, want OpenAI-Organization org-1", openai.Headers)
	}
	if !cfg.Images.Enabled || cfg.Images.Timeout != 5*time.Second {
		t.Errorf("Images = %+v, want enabled with 5s timeout", cfg.Images)
	}
	if cfg.Providers["gemini"].FreeAPIKey != "free-key" {
		t.Errorf("gemini.FreeAPIKey = %q, want free-key", cfg.Providers["gemini"].FreeAPIKey)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "default_model: gpt-4o\n")
	t.Setenv("PERLE_DEFAULT_MODEL", "grok-4")
	t.Setenv("PERLE_SEARCH_LIMIT", "7")
	t.Setenv("PERLE_SERVER_ADDR", ":7070")
	t.Setenv("PERLE_PREMIUM", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DefaultModel != "grok-4" {
		t.Errorf("DefaultModel = %q, want grok-4", cfg.DefaultModel)
	}
	if cfg.Search.Limit != 7 {
		t.Errorf("Search.Limit = %d, want 7", cfg.Search.Limit)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want :7070", cfg.Server.Addr)
	}
	if !cfg.Premium {
		t.Error("Premium = false, want true")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "default_model: [unclosed\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should return error for invalid YAML")
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Providers == nil {
		t.Error("Providers map is nil for empty file")
	}
	if cfg.Search.Limit != 15 {
		t.Errorf("Search.Limit = %d, want default 15", cfg.Search.Limit)
	}
}

func TestConfigWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.DefaultModel = "claude-4.5"
	cfg.Search.Timeout = 4 * time.Second
	cfg.Providers["anthropic"] = ProviderConfig{BaseURL: "https://anthropic.example"}
	if err := cfg.Write(path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got.DefaultModel != "claude-4.5" {
		t.Errorf("DefaultModel = %q, want claude-4.5", got.DefaultModel)
	}
	if got.Search.Timeout != 4*time.Second {
		t.Errorf("Search.Timeout = %v, want 4s", got.Search.Timeout)
	}
	if pc := got.GetProvider("anthropic"); pc == nil || pc.BaseURL != "https://anthropic.example" {
		t.Errorf("GetProvider(anthropic) = %+v", pc)
	}
}

func TestConfigGetProvider(t *testing.T) {
	cfg := &Config{
		Providers: map[string]ProviderConfig{
			"openai": {APIKey: "sk", BaseURL: "https://api.openai.com/v1"},
		},
	}

	pc := cfg.GetProvider("openai")
	if pc == nil {
		t.Fatal("GetProvider(openai) returned nil")
	}
	if pc.APIKey != "sk" {
		t.Errorf("APIKey = %q, want sk", pc.APIKey)
	}

	if cfg.GetProvider("nonexistent") != nil {
		t.Error("GetProvider(nonexistent) should return nil")
	}
	if (&Config{}).GetProvider("openai") != nil {
		t.Error("GetProvider on nil Providers should return nil")
	}
}

package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/cli/config"
	"github.com/petal-labs/perle/cli/keystore"
	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/imagegen"
	"github.com/petal-labs/perle/providers"
	"github.com/petal-labs/perle/search"
	"github.com/petal-labs/perle/telemetry"
)

// credentials resolves keys from the environment, then the config file,
// then the encrypted keystore.
func (a *App) credentials(log zerolog.Logger) answer.LookupSource {
	return answer.ChainLookup(a.getenv, a.configLookup, a.keystoreLookup(log))
}

// configLookup reads a credential variable from the providers section.
func (a *App) configLookup(name string) string {
	if a.cfg == nil {
		return ""
	}
	switch name {
	case answer.EnvOpenAI:
		return a.providerConfig(providers.OpenAI).APIKey
	case answer.EnvXAI:
		return a.providerConfig(providers.XAI).APIKey
	case answer.EnvAnthropic:
		return a.providerConfig(providers.Anthropic).APIKey
	case answer.EnvGoogle:
		return a.providerConfig(providers.Gemini).APIKey
	case answer.EnvGoogleFree:
		return a.providerConfig(providers.Gemini).FreeAPIKey
	}
	return ""
}

func (a *App) providerConfig(id string) config.ProviderConfig {
	if a.cfg == nil {
		return config.ProviderConfig{}
	}
	if pc := a.cfg.GetProvider(id); pc != nil {
		return *pc
	}
	return config.ProviderConfig{}
}

// keystoreLookup opens the keystore on first use. Entries are keyed by
// credential variable name. A missing keystore yields no keys.
func (a *App) keystoreLookup(log zerolog.Logger) func(string) string {
	var (
		once sync.Once
		ks   keystore.Keystore
	)
	return func(name string) string {
		once.Do(func() {
			if !keystore.Exists(a.keystorePath) {
				return
			}
			k, err := a.openKeystore()
			if err != nil {
				log.Warn().Err(err).Str("path", a.keystorePath).Msg("keystore unavailable")
				return
			}
			ks = k
		})
		if ks == nil {
			return ""
		}
		v, err := ks.Get(name)
		if err != nil {
			var notFound *keystore.ErrKeyNotFound
			if !errors.As(err, &notFound) {
				log.Warn().Err(err).Msg("keystore read failed")
			}
			return ""
		}
		return v
	}
}

func (a *App) openKeystore() (keystore.Keystore, error) {
	source := keystore.FirstOf(
		keystore.EnvPassphrase(keystore.PassphraseEnvVar),
		keystore.PromptFunc(func() ([]byte, error) {
			s, err := a.readSecret("Keystore passphrase: ")
			return []byte(s), err
		}),
	)
	return a.newKeystore(a.keystorePath, source)
}

// providerSettings maps the config section of one vendor onto adapter settings.
func (a *App) providerSettings(id string) providers.Settings {
	pc := a.providerConfig(id)
	return providers.Settings{BaseURL: pc.BaseURL, Headers: pc.Headers}
}

// buildEngine assembles the answer engine from config and credentials.
func (a *App) buildEngine(log zerolog.Logger, sink telemetry.Sink, withSearch, withImages bool) *answer.Engine {
	creds := a.credentials(log)

	opts := []answer.Option{
		answer.WithLogger(log),
		answer.WithTelemetry(sink),
		answer.WithObserver(sink),
	}
	for _, id := range providers.List() {
		if pc := a.providerConfig(id); pc.BaseURL != "" || len(pc.Headers) > 0 {
			opts = append(opts, answer.WithProviderSettings(id, a.providerSettings(id)))
		}
	}

	if withSearch {
		svc := search.NewService(search.NewDuckDuckGo(a.cfg.Search.BaseURL))
		opts = append(opts, answer.WithSearch(svc))
		if a.cfg.Search.Limit > 0 {
			opts = append(opts, answer.WithSearchLimit(a.cfg.Search.Limit))
		}
		if a.cfg.Search.Timeout > 0 {
			opts = append(opts, answer.WithSearchTimeout(a.cfg.Search.Timeout))
		}
	}

	if withImages {
		if gen := a.imageGenerator(creds, log); gen != nil {
			opts = append(opts, answer.WithImages(gen))
		}
		if a.cfg.Images.Timeout > 0 {
			opts = append(opts, answer.WithImageTimeout(a.cfg.Images.Timeout))
		}
	}

	opts = append(opts, a.engineOpts...)
	return answer.New(creds, opts...)
}

// imageGenerator pairs Imagen with a DALL-E fallback. Backends without a
// key are skipped; nil means no backend is usable.
func (a *App) imageGenerator(creds answer.LookupSource, log zerolog.Logger) *imagegen.Generator {
	backend := func(id string) core.ImageGenerator {
		key, err := creds.APIKey(id, true)
		if err != nil {
			log.Debug().Str("provider", id).Msg("no key, image backend disabled")
			return nil
		}
		p, err := providers.CreateWith(id, key, a.providerSettings(id))
		if err != nil {
			return nil
		}
		gen, _ := p.(core.ImageGenerator)
		return gen
	}

	primary, fallback := backend(providers.Gemini), backend(providers.OpenAI)
	if primary == nil && fallback == nil {
		return nil
	}
	return imagegen.New(primary, fallback, imagegen.WithLogger(log))
}

// readSecret prompts on stderr and reads one line from stdin without echo
// when stdin is a terminal.
func (a *App) readSecret(prompt string) (string, error) {
	fmt.Fprint(a.stderr, prompt)
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := a.reader().ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

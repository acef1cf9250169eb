package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/cli/config"
	"github.com/petal-labs/perle/cli/keystore"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// KeystoreFactory opens the keystore at path.
type KeystoreFactory func(path string, source keystore.MasterKeySource) (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig   ConfigLoader
	newKeystore  KeystoreFactory
	getenv       func(string) string
	engineOpts   []answer.Option
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	in           *bufio.Reader
	keystorePath string

	cfgFile    string
	model      string
	premium    bool
	jsonOutput bool
	verbose    bool
	cfg        *config.Config

	askOpts   askFlags
	serveOpts serveFlags
	initOpts  initFlags
	keysOpts  keysFlags
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithKeystorePath overrides the keystore location.
func WithKeystorePath(path string) AppOption {
	return func(a *App) {
		if path != "" {
			a.keystorePath = path
		}
	}
}

// WithEnv replaces the environment lookup used for API keys.
func WithEnv(getenv func(string) string) AppOption {
	return func(a *App) {
		if getenv != nil {
			a.getenv = getenv
		}
	}
}

// WithEngineOptions appends options applied to every engine the app builds.
func WithEngineOptions(opts ...answer.Option) AppOption {
	return func(a *App) {
		a.engineOpts = append(a.engineOpts, opts...)
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:   config.LoadConfig,
		newKeystore:  openFileKeystore,
		getenv:       os.Getenv,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		keystorePath: keystore.DefaultKeystorePath(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func openFileKeystore(path string, source keystore.MasterKeySource) (keystore.Keystore, error) {
	return keystore.NewFileKeystore(path, source)
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "perle",
		Short: "Perle - multi-provider answer engine",
		Long: `Perle answers questions with the best available language model,
augmenting them with live web results and generated images.

Ask from the terminal or run the HTTP service with 'perle serve'.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.perle/config.yaml)")
	root.PersistentFlags().StringVar(&a.model, "model", "", "model ID (e.g. gpt-4o, claude-4.5, auto)")
	root.PersistentFlags().BoolVar(&a.premium, "premium", false, "route as a premium user")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newAskCommand())
	root.AddCommand(a.newServeCommand())
	root.AddCommand(a.newModelsCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newInitCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// SetArgs overrides the command line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the root command and prints any error not already reported.
func (a *App) Execute() error {
	err := a.root.Execute()
	var ee *exitError
	if err != nil && !(errors.As(err, &ee) && ee.reported) {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return err
}

func (a *App) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.DefaultConfigPath()
}

func (a *App) initConfig() error {
	cfg, err := a.loadConfig(a.configPath())
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	a.cfg = cfg

	// Apply config defaults if flags not set.
	if a.model == "" && cfg.DefaultModel != "" {
		a.model = cfg.DefaultModel
	}
	if cfg.Premium {
		a.premium = true
	}

	return nil
}

// logger builds the human-facing logger for terminal commands. JSON output
// stays machine-readable: logs are off unless --verbose.
func (a *App) logger() zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case a.verbose:
		level = zerolog.DebugLevel
	case a.jsonOutput:
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// serviceLogger builds the JSON logger used by perle serve.
func (a *App) serviceLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if a.cfg != nil {
		if l, err := zerolog.ParseLevel(a.cfg.LogLevel); err == nil && l != zerolog.NoLevel {
			level = l
		}
	}
	if a.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(a.stderr).Level(level).With().Timestamp().Logger()
}

// reader returns a buffered stdin shared by every prompt of one run.
func (a *App) reader() *bufio.Reader {
	if a.in == nil {
		a.in = bufio.NewReader(a.stdin)
	}
	return a.in
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}

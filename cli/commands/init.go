package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petal-labs/perle/cli/config"
	"github.com/petal-labs/perle/core"
)

type initFlags struct {
	force bool
}

func (a *App) newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a starter configuration file with the default settings.

The file is written to --config or ~/.perle/config.yaml. The global
--model and --premium flags are recorded as defaults.

Example:
  perle init
  perle init --model claude-4.5 --premium`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}

	cmd.Flags().BoolVar(&a.initOpts.force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *App) runInit(cmd *cobra.Command, args []string) error {
	path := a.configPath()
	if _, err := os.Stat(path); err == nil && !a.initOpts.force {
		return exitWithCode(ExitValidation, fmt.Errorf("%s already exists (use --force to overwrite)", path))
	}

	cfg := config.Default()
	if a.model != "" {
		if m := core.LLMModel(a.model); m != core.ModelAuto && !m.Known() {
			return exitWithCode(ExitValidation, fmt.Errorf("unknown model %q: see 'perle models'", a.model))
		}
		cfg.DefaultModel = a.model
	}
	cfg.Premium = a.premium

	if err := cfg.Write(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(a.stdout, "Wrote %s\n\n", path)
	fmt.Fprintln(a.stdout, "Next steps:")
	fmt.Fprintln(a.stdout, "  perle keys set gemini --free")
	fmt.Fprintln(a.stdout, `  perle ask "What is Perle?"`)
	return nil
}

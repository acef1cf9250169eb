package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/cli/keystore"
	"github.com/petal-labs/perle/providers"
)

type keysFlags struct {
	free bool
}

func (a *App) newKeysCommand() *cobra.Command {
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys",
		Long: `Manage provider API keys in an encrypted keystore (~/.perle/keys.enc).

The keystore passphrase is read from PERLE_KEYSTORE_PASSPHRASE or prompted.
Stored keys are used when the matching environment variable is unset.`,
	}

	setCmd := &cobra.Command{
		Use:   "set <provider>",
		Short: "Set API key for a provider",
		Long:  `Set the API key for a provider. The key will be prompted without echo for security.`,
		Args:  cobra.ExactArgs(1),
		RunE:  a.runKeysSet,
	}
	setCmd.Flags().BoolVar(&a.keysOpts.free, "free", false, "store the gemini key used for free-tier requests")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored API keys",
		Long:  `List all stored API keys. Only variable names are shown, never key values.`,
		Args:  cobra.NoArgs,
		RunE:  a.runKeysList,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <provider>",
		Short: "Delete API key for a provider",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runKeysDelete,
	}
	deleteCmd.Flags().BoolVar(&a.keysOpts.free, "free", false, "delete the free-tier gemini key")

	keysCmd.AddCommand(setCmd, listCmd, deleteCmd)
	return keysCmd
}

// keyVar names the keystore entry for provider.
func (a *App) keyVar(provider string) (string, error) {
	provider = strings.ToLower(provider)
	if a.keysOpts.free && provider != providers.Gemini {
		return "", exitWithCode(ExitValidation, fmt.Errorf("--free applies to gemini only"))
	}
	vars := answer.KeyVars(provider, !a.keysOpts.free)
	if len(vars) == 0 {
		return "", exitWithCode(ExitValidation, fmt.Errorf("unsupported provider: %s (available: %v)", provider, providers.List()))
	}
	return vars[0], nil
}

func (a *App) runKeysSet(cmd *cobra.Command, args []string) error {
	name, err := a.keyVar(args[0])
	if err != nil {
		return err
	}

	ks, err := a.openKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	apiKey, err := a.readSecret(fmt.Sprintf("Enter API key for %s: ", args[0]))
	if err != nil {
		return err
	}
	if apiKey == "" {
		return exitWithCode(ExitValidation, fmt.Errorf("API key cannot be empty"))
	}

	if err := ks.Set(name, apiKey); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	fmt.Fprintf(a.stdout, "API key for %s stored as %s.\n", args[0], name)
	return nil
}

func (a *App) runKeysList(cmd *cobra.Command, args []string) error {
	if !keystore.Exists(a.keystorePath) {
		fmt.Fprintln(a.stdout, "No API keys stored.")
		return nil
	}

	ks, err := a.openKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	names, err := ks.List()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if len(names) == 0 {
		fmt.Fprintln(a.stdout, "No API keys stored.")
		return nil
	}

	fmt.Fprintln(a.stdout, "Stored keys:")
	for _, name := range names {
		fmt.Fprintf(a.stdout, "  - %s\n", name)
	}

	return nil
}

func (a *App) runKeysDelete(cmd *cobra.Command, args []string) error {
	name, err := a.keyVar(args[0])
	if err != nil {
		return err
	}

	ks, err := a.openKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	if err := ks.Delete(name); err != nil {
		var notFound *keystore.ErrKeyNotFound
		if errors.As(err, &notFound) {
			return fmt.Errorf("no key stored for %s", args[0])
		}
		return fmt.Errorf("failed to delete key: %w", err)
	}

	fmt.Fprintf(a.stdout, "API key for %s deleted.\n", args[0])
	return nil
}

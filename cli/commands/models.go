package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/server"
)

func (a *App) newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the model catalog",
		Long:  `List every model Perle accepts, the provider serving it and whether free users may select it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := server.ModelsResponse{Models: make([]server.ModelInfo, 0, len(core.Catalog))}
			for _, m := range core.Catalog {
				resp.Models = append(resp.Models, server.ModelInfo{
					ID:       m,
					Provider: answer.Resolve(m, true).Provider,
					Default:  m == answer.DefaultModel,
				})
			}

			if a.jsonOutput {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tPROVIDER\tACCESS")
			for _, m := range resp.Models {
				access := "premium"
				if m.ID == core.ModelAuto || answer.Resolve(m.ID, false).Model == m.ID {
					access = "free"
				}
				if m.Default {
					access += " (default)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Provider, access)
			}
			return w.Flush()
		},
	}
}

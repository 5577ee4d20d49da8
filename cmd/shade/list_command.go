package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shade/internal/config"
	"shade/internal/registry"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(runCtx context.Context, cfg *config.Config, store *registry.Store) error {
				assets, err := store.ListAssets(runCtx)
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, assets)
				}

				if len(assets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No assets registered")
					return nil
				}

				rows := make([][]string, 0, len(assets))
				for _, a := range assets {
					derivatives, err := store.Derivatives(runCtx, a.ID)
					if err != nil {
						return err
					}
					rows = append(rows, []string{
						a.ID,
						a.Title,
						string(a.Format),
						formatDimensions(a.Width, a.Height),
						fmt.Sprintf("%d", len(derivatives)),
						a.CreatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Asset ID", "Title", "Format", "Dimensions", "Derivatives", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

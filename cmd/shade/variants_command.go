package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shade/internal/config"
	"shade/internal/lifecycle"
	"shade/internal/registry"
)

func newVariantsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "variants <asset-id>",
		Short: "Enumerate an asset's size variants with grayscale URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCoordinator(cmd, func(runCtx context.Context, cfg *config.Config, coord *lifecycle.Coordinator, store *registry.Store) error {
				listings, err := coord.Variants(runCtx, args[0])
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, listings)
				}

				if len(listings) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No variants recorded")
					return nil
				}

				rows := make([][]string, 0, len(listings))
				for _, l := range listings {
					grayscale := l.GrayscaleURL
					if grayscale == "" {
						grayscale = "-"
					}
					rows = append(rows, []string{
						l.Label,
						formatDimensions(l.Width, l.Height),
						l.URL,
						grayscale,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Label", "Dimensions", "URL", "Grayscale URL"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shade/internal/asset"
	"shade/internal/config"
	"shade/internal/registry"
	"shade/internal/services"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <asset-id>",
		Short: "Show an asset with its variants and derivatives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(runCtx context.Context, cfg *config.Config, store *registry.Store) error {
				record, err := store.GetAsset(runCtx, args[0])
				if err != nil {
					return err
				}
				if record == nil {
					return services.Wrap(services.ErrNotFound, "cli", "show", args[0], nil)
				}

				variants, err := store.Variants(runCtx, record.ID)
				if err != nil {
					return err
				}
				derivatives, err := store.Derivatives(runCtx, record.ID)
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, struct {
						Asset       *asset.Asset       `json:"asset"`
						Variants    []asset.Variant    `json:"variants"`
						Derivatives []asset.Derivative `json:"derivatives"`
					}{record, variants, derivatives})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Asset:      %s\n", record.ID)
				fmt.Fprintf(out, "Title:      %s\n", record.Title)
				fmt.Fprintf(out, "Source:     %s\n", record.SourcePath)
				fmt.Fprintf(out, "Format:     %s\n", record.Format)
				fmt.Fprintf(out, "Dimensions: %s\n", formatDimensions(record.Width, record.Height))
				fmt.Fprintf(out, "Created:    %s\n", record.CreatedAt.Local().Format(time.DateTime))

				grayByLabel := make(map[string]asset.Derivative, len(derivatives))
				for _, d := range derivatives {
					grayByLabel[d.Label] = d
				}

				rows := make([][]string, 0, len(variants))
				for _, v := range variants {
					grayscale := "-"
					if d, ok := grayByLabel[v.Label]; ok {
						grayscale = d.Path
					}
					rows = append(rows, []string{
						v.Label,
						formatDimensions(v.Width, v.Height),
						v.Path,
						grayscale,
					})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(
					[]string{"Label", "Dimensions", "Path", "Grayscale"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shade/internal/config"
	"shade/internal/lifecycle"
	"shade/internal/registry"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "resolve <asset-id> <request>",
		Short: "Resolve a size request against an asset",
		Long: `Resolve a size request against an asset.

The request may be a plain size label ("thumbnail", "full"), the word
"grayscale" for the full-size grayscale derivative, or "grayscale:<label>"
for the grayscale derivative of a named size.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCoordinator(cmd, func(runCtx context.Context, cfg *config.Config, coord *lifecycle.Coordinator, store *registry.Store) error {
				res, err := coord.OnFetch(runCtx, args[0], args[1])
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, res)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "URL:          %s\n", res.URL)
				fmt.Fprintf(out, "Dimensions:   %s\n", formatDimensions(res.Width, res.Height))
				fmt.Fprintf(out, "Downsized:    %s\n", yesNo(res.IsDownsized))
				fmt.Fprintf(out, "Use original: %s\n", yesNo(res.UseOriginal))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

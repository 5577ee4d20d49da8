package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shade/internal/config"
	"shade/internal/lifecycle"
	"shade/internal/registry"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "rm <asset-id>...",
		Short: "Delete assets and their grayscale derivatives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCoordinator(cmd, func(runCtx context.Context, cfg *config.Config, coord *lifecycle.Coordinator, store *registry.Store) error {
				var failures int
				for _, id := range args {
					if err := coord.OnDelete(runCtx, id, purge); err != nil {
						failures++
						fmt.Fprintf(cmd.ErrOrStderr(), "delete %s: %v\n", id, err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (purged files: %s)\n", id, yesNo(purge))
				}
				if failures > 0 {
					return fmt.Errorf("%d of %d assets failed to delete", failures, len(args))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Also remove the asset's library directory (original and variants)")
	return cmd
}

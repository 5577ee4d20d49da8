package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shade/internal/config"
	"shade/internal/registry"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check registry database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(runCtx context.Context, cfg *config.Config, store *registry.Store) error {
				health, err := store.CheckHealth(runCtx)
				if err != nil {
					return err
				}
				stats, err := store.Stats(runCtx)
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, struct {
						Health registry.DatabaseHealth `json:"health"`
						Stats  registry.Stats          `json:"stats"`
					}{health, stats})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database:     %s\n", health.DBPath)
				fmt.Fprintf(out, "Exists:       %s\n", yesNo(health.DatabaseExists))
				fmt.Fprintf(out, "Readable:     %s\n", yesNo(health.DatabaseReadable))
				fmt.Fprintf(out, "Integrity:    %s\n", yesNo(health.IntegrityCheck))
				if len(health.MissingTables) > 0 {
					fmt.Fprintf(out, "Missing:      %s\n", strings.Join(health.MissingTables, ", "))
				}
				fmt.Fprintf(out, "Assets:       %d\n", stats.Assets)
				fmt.Fprintf(out, "Variants:     %d\n", stats.Variants)
				fmt.Fprintf(out, "Derivatives:  %d\n", stats.Derivatives)

				if !health.DatabaseReadable || len(health.MissingTables) > 0 || !health.IntegrityCheck {
					return fmt.Errorf("registry database is unhealthy")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

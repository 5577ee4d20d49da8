package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shade/internal/config"
	"shade/internal/lifecycle"
	"shade/internal/registry"
	"shade/internal/services"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Ingest images into the library and generate grayscale derivatives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCoordinator(cmd, func(runCtx context.Context, cfg *config.Config, coord *lifecycle.Coordinator, store *registry.Store) error {
				type ingestReport struct {
					Source      string `json:"source"`
					AssetID     string `json:"asset_id,omitempty"`
					Title       string `json:"title,omitempty"`
					Derivatives int    `json:"derivatives"`
					Skipped     int    `json:"skipped"`
					Error       string `json:"error,omitempty"`
				}

				var reports []ingestReport
				var failures int
				for _, source := range args {
					path, err := config.ExpandPath(source)
					if err != nil {
						return err
					}
					result, err := coord.OnIngest(runCtx, path)
					if err != nil {
						failures++
						reports = append(reports, ingestReport{Source: source, Error: classifyIngestError(err)})
						continue
					}
					reports = append(reports, ingestReport{
						Source:      source,
						AssetID:     result.Asset.ID,
						Title:       result.Asset.Title,
						Derivatives: len(result.Derivatives),
						Skipped:     len(result.Skipped),
					})
				}

				if jsonOut {
					if err := writeJSON(cmd, reports); err != nil {
						return err
					}
				} else {
					rows := make([][]string, 0, len(reports))
					for _, r := range reports {
						status := fmt.Sprintf("%d derivatives", r.Derivatives)
						if r.Error != "" {
							status = r.Error
						} else if r.Skipped > 0 {
							status = fmt.Sprintf("%d derivatives, %d skipped", r.Derivatives, r.Skipped)
						}
						rows = append(rows, []string{r.Source, r.AssetID, r.Title, status})
					}
					fmt.Fprintln(cmd.OutOrStdout(), renderTable(
						[]string{"Source", "Asset ID", "Title", "Result"}, rows, nil))
				}

				if failures > 0 {
					return fmt.Errorf("%d of %d sources failed to ingest", failures, len(args))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

// classifyIngestError maps marker errors to short operator-facing reasons.
func classifyIngestError(err error) string {
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		return "unsupported format"
	case errors.Is(err, services.ErrSizeRejected):
		return "exceeds pixel ceiling"
	case errors.Is(err, services.ErrSourceUnreadable):
		return "source unreadable"
	default:
		return err.Error()
	}
}

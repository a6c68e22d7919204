// Package validate provides the validate command for unit datasets.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/internal/cmd/emoji"
	"github.com/agentstation/unitmap/internal/cmd/output"
	"github.com/agentstation/unitmap/internal/cmd/table"
)

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Load the dataset and report skipped records and key collisions",
		Long: `Validate loads the configured dataset and reports record and key
counts, records that were skipped as malformed, and names claimed by more
than one unit (the earlier unit keeps the name).

With --strict, any skipped record makes the command fail.`,
		Example: `  unitmap validate
  unitmap validate --dataset units.yaml --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			um, err := app.Unitmap()
			if err != nil {
				return err
			}
			report := um.Catalog().Report()
			w := cmd.OutOrStdout()
			format := output.Format(app.OutputFormat())

			if format == output.FormatTable || format == output.FormatWide {
				if err := output.Any(w, format, table.ReportToTableData(report)); err != nil {
					return err
				}
				for _, s := range report.Skipped {
					fmt.Fprintf(w, "%s record %d skipped: %s\n", emoji.Warning, s.Index, s.Reason)
				}
				if len(report.Collisions) > 0 {
					fmt.Fprintf(w, "\n%s %d names are shared by more than one unit:\n", emoji.Info, len(report.Collisions))
					if err := output.Any(w, format, table.CollisionsToTableData(report.Collisions)); err != nil {
						return err
					}
				}
			} else if err := output.Any(w, format, report); err != nil {
				return err
			}

			if strict && report.SkippedCount() > 0 {
				return fmt.Errorf("%s %d of %d records skipped", emoji.Error, report.SkippedCount(), report.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any record is skipped")

	return cmd
}

// Package search provides the search command for the staff directory.
package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/internal/cmd/output"
	"github.com/agentstation/unitmap/pkg/directory"
)

// NewCommand creates the search command.
func NewCommand(app application.Application) *cobra.Command {
	var q directory.Query

	cmd := &cobra.Command{
		Use:     "search",
		GroupID: "core",
		Short:   "Search the staff directory",
		Long: `Search queries the university staff directory. The faculty is first
resolved against the unit catalog; when no unit matches, the raw value is sent.`,
		Example: `  unitmap search --faculty "cancer researc"
  unitmap search --faculty FICT --name lim
  unitmap search --expertise "machine learning" -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			um, err := app.Unitmap()
			if err != nil {
				return err
			}

			result, err := um.SearchStaff(cmd.Context(), q)
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			if format != output.FormatTable && format != output.FormatWide {
				return output.Any(cmd.OutOrStdout(), format, result)
			}

			errOut := cmd.ErrOrStderr()
			if f := result.Resolution.Faculty; f != nil {
				if f.OK() {
					fmt.Fprintf(errOut, "Faculty %q resolved to %s (%s)\n", q.Faculty, f.Canonical, f.Method)
				} else {
					fmt.Fprintf(errOut, "Faculty %q not resolved, searching with it as typed\n", q.Faculty)
				}
			}
			if result.Skipped > 0 {
				fmt.Fprintf(errOut, "%d staff cards without a name were skipped\n", result.Skipped)
			}
			return output.Staff(cmd.OutOrStdout(), format, result.Staff)
		},
	}

	cmd.Flags().StringVar(&q.Faculty, "faculty", "", "faculty, centre or division (resolved against the catalog)")
	cmd.Flags().StringVar(&q.Department, "department", "", "department code")
	cmd.Flags().StringVar(&q.Name, "name", "", "staff name fragment")
	cmd.Flags().StringVar(&q.Expertise, "expertise", "", "area of expertise")

	return cmd
}

// Package suggest provides the suggest command for unit-name autocomplete.
package suggest

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/internal/cmd/output"
	"github.com/agentstation/unitmap/pkg/constants"
)

// NewCommand creates the suggest command.
func NewCommand(app application.Application) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "suggest <prefix>",
		GroupID: "core",
		Short:   "Suggest catalog units for a partially typed name",
		Long: `Suggest ranks catalog names and acronyms that contain the typed
characters in order, returning one suggestion per unit.`,
		Example: `  unitmap suggest fict
  unitmap suggest "fac eng" --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			um, err := app.Unitmap()
			if err != nil {
				return err
			}

			suggestions := um.Suggest(strings.Join(args, " "), limit)
			return output.Suggestions(cmd.OutOrStdout(), output.Format(app.OutputFormat()), suggestions)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", constants.DefaultSuggestLimit, "maximum number of suggestions")

	return cmd
}

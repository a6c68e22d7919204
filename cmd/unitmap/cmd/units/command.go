// Package units provides the units command for listing the catalog.
package units

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/internal/cmd/output"
	"github.com/agentstation/unitmap/internal/matcher"
)

// NewCommand creates the units command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		typ       string
		match     string
		listTypes bool
	)

	cmd := &cobra.Command{
		Use:     "units",
		Aliases: []string{"list", "ls"},
		GroupID: "core",
		Short:   "List catalog units",
		Example: `  unitmap units
  unitmap units --type Faculty
  unitmap units --match 'faculty*'
  unitmap units --match '^(CCR|FICT)$'
  unitmap units --types
  unitmap units -o wide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			um, err := app.Unitmap()
			if err != nil {
				return err
			}
			catalog := um.Catalog()
			w := cmd.OutOrStdout()

			if listTypes {
				for _, t := range catalog.Types() {
					fmt.Fprintln(w, t)
				}
				return nil
			}

			records := catalog.Filter(typ)
			if len(records) == 0 && strings.TrimSpace(typ) != "" {
				return fmt.Errorf("no units of type %q (known types: %s)", typ, strings.Join(catalog.Types(), ", "))
			}
			records, err = matcher.FilterUnits(match, records)
			if err != nil {
				return err
			}

			return output.Units(w, output.Format(app.OutputFormat()), records)
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "only list units of this type (case-insensitive)")
	cmd.Flags().StringVarP(&match, "match", "m", "", "only list units with a name matching this glob or regex")
	cmd.Flags().BoolVar(&listTypes, "types", false, "list the distinct unit types instead")

	return cmd
}

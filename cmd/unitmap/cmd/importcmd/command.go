// Package importcmd provides the import command, which merges the staff
// directory's unit option list into a dataset file.
package importcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/internal/cmd/emoji"
	"github.com/agentstation/unitmap/pkg/constants"
	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/errors"
	"github.com/agentstation/unitmap/pkg/units"
)

// NewCommand creates the import command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		into   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "import <options.html>",
		GroupID: "management",
		Short:   "Merge units from the directory's option list into a dataset",
		Long: `Import reads <option value="CODE">Name</option> entries saved from the
staff directory search form and merges them into a dataset.

Existing units are matched by canonical name, then acronym. Matches gain a
missing acronym, a more specific type and any missing aliases; unmatched
options are appended. Without --into, the configured dataset is merged and
the result written to standard output.`,
		Example: `  unitmap import options.html --into units.json
  unitmap import options.html --into units.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			incoming, err := readOptions(args[0])
			if err != nil {
				return err
			}

			existing, err := existingRecords(app, into)
			if err != nil {
				return err
			}

			merged, stats := units.Merge(existing, incoming)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s processed %d options: %d added, %d updated (%d units total)\n",
				emoji.Success, stats.Processed, stats.Added, stats.Updated, len(merged))

			format := units.FormatJSON
			if into != "" {
				format = units.FormatFromPath(into)
			}
			data, err := units.Marshal(merged, format)
			if err != nil {
				return err
			}

			if into == "" || dryRun {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(into, data, constants.FilePermissions); err != nil {
				return errors.WrapIO("write", into, err)
			}
			app.Logger().Info().Str("file", into).Int("units", len(merged)).Msg("Dataset written")
			return nil
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "dataset file to merge into and overwrite (JSON or YAML)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the merged dataset instead of writing --into")

	return cmd
}

func readOptions(path string) ([]units.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	incoming, err := directory.ParseUnitOptions(f)
	if err != nil {
		return nil, err
	}
	if len(incoming) == 0 {
		return nil, errors.NewValidationError("options", path, "no unit options found")
	}
	return incoming, nil
}

// existingRecords loads the merge target. A missing --into file starts empty.
func existingRecords(app application.Application, into string) ([]units.Unit, error) {
	if into == "" {
		um, err := app.Unitmap()
		if err != nil {
			return nil, err
		}
		return um.Catalog().Records(), nil
	}

	catalog, err := units.Load(into, units.WithLogger(app.Logger()))
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if n := catalog.Report().SkippedCount(); n > 0 {
		app.Logger().Warn().Int("skipped", n).Str("file", into).Msg("Malformed records will be dropped from the rewritten dataset")
	}
	return catalog.Records(), nil
}

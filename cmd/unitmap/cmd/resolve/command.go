// Package resolve provides the resolve command.
package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/internal/cmd/output"
)

// NewCommand creates the resolve command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		file    string
		workers int
	)

	cmd := &cobra.Command{
		Use:     "resolve [query...]",
		GroupID: "core",
		Short:   "Resolve unit names to canonical catalog units",
		Long: `Resolve maps a free-form unit name onto the catalog using exact,
similarity and substring matching, in that order.

Arguments are joined into a single query. With --file, each non-blank line
is a separate query ("-" reads standard input) and queries are resolved
concurrently. Unmatched queries are reported, not treated as errors.`,
		Example: `  unitmap resolve "cancer researc"
  unitmap resolve LKC FEC
  unitmap resolve --file queries.txt -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			queries, err := collectQueries(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}

			um, err := app.Unitmap()
			if err != nil {
				return err
			}

			results, err := um.Resolver().ResolveAll(cmd.Context(), queries, workers)
			if err != nil {
				return err
			}

			return output.Results(cmd.OutOrStdout(), output.Format(app.OutputFormat()), queries, results)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read queries from a file, one per line")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent resolvers for --file (default 8)")

	return cmd
}

// collectQueries returns the joined args, or the lines of file.
func collectQueries(stdin io.Reader, args []string, file string) ([]string, error) {
	if file == "" {
		if len(args) == 0 {
			return nil, errors.New("a query or --file is required")
		}
		return []string{strings.Join(args, " ")}, nil
	}
	if len(args) > 0 {
		return nil, errors.New("query arguments cannot be combined with --file")
	}

	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("opening query file: %w", err)
		}
		defer f.Close()
		r = f
	}
	return readLines(r)
}

// readLines returns the non-blank lines of r, trimmed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	return lines, nil
}

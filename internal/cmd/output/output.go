package output

import (
	"io"

	"github.com/agentstation/unitmap/internal/cmd/table"
	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/resolver"
	"github.com/agentstation/unitmap/pkg/units"
)

// isTable reports whether format renders through the table formatter.
func isTable(format Format) bool {
	return format == FormatTable || format == FormatWide || format == ""
}

// Units writes catalog records in the given format.
func Units(w io.Writer, format Format, records []units.Unit) error {
	var data any = records
	if isTable(format) {
		data = table.UnitsToTableData(records, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// Results writes resolution results. queries and results are parallel.
func Results(w io.Writer, format Format, queries []string, results []resolver.Result) error {
	if isTable(format) {
		return NewFormatter(format).Format(w, table.ResultsToTableData(queries, results))
	}

	type item struct {
		Query  string          `json:"query" yaml:"query"`
		Result resolver.Result `json:"result" yaml:"result"`
	}
	items := make([]item, len(results))
	for i := range results {
		items[i] = item{Query: queries[i], Result: results[i]}
	}
	return NewFormatter(format).Format(w, items)
}

// Suggestions writes autocomplete suggestions.
func Suggestions(w io.Writer, format Format, suggestions []resolver.Suggestion) error {
	var data any = suggestions
	if isTable(format) {
		data = table.SuggestionsToTableData(suggestions)
	}
	return NewFormatter(format).Format(w, data)
}

// Staff writes staff directory entries.
func Staff(w io.Writer, format Format, staff []directory.StaffEntry) error {
	var data any = staff
	if isTable(format) {
		data = table.StaffToTableData(staff, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// Any writes data with no table conversion beyond reflection.
func Any(w io.Writer, format Format, data any) error {
	return NewFormatter(format).Format(w, data)
}

// Package table converts unitmap values into rows for table output.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/unitmap/internal/cmd/emoji"
	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/resolver"
	"github.com/agentstation/unitmap/pkg/units"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

const maxCell = 60

// orDash returns "-" for empty cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to n runes with a trailing ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// UnitsToTableData converts catalog records to table format.
func UnitsToTableData(records []units.Unit, wide bool) Data {
	headers := []string{"Canonical", "Acronym", "Type"}
	if wide {
		headers = append(headers, "Parent", "Aliases")
	}

	rows := make([][]string, 0, len(records))
	for _, u := range records {
		acronym := u.Acronym
		if !u.HasAcronym() {
			acronym = ""
		}
		row := []string{u.Canonical, orDash(acronym), orDash(u.Type)}
		if wide {
			row = append(row, orDash(u.Parent), orDash(truncate(strings.Join(u.Aliases, ", "), maxCell)))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// ResultsToTableData converts resolution results to table format.
// queries and results are parallel.
func ResultsToTableData(queries []string, results []resolver.Result) Data {
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		status := emoji.Success
		if !r.OK() {
			status = emoji.Error
		}
		acronym := ""
		if r.Acronym != nil {
			acronym = *r.Acronym
		}
		note := r.Error
		if note == "" {
			note = r.Detail
		}
		rows = append(rows, []string{
			status,
			queries[i],
			orDash(r.Canonical),
			orDash(acronym),
			string(r.Method),
			strconv.Itoa(r.Score),
			orDash(note),
		})
	}

	return Data{
		Headers:         []string{"", "Query", "Canonical", "Acronym", "Method", "Score", "Note"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// SuggestionsToTableData converts suggestions to table format.
func SuggestionsToTableData(suggestions []resolver.Suggestion) Data {
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{s.Key, s.Canonical, orDash(s.Acronym), strconv.Itoa(s.Score)})
	}
	return Data{
		Headers:         []string{"Matched Key", "Canonical", "Acronym", "Score"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
}

// StaffToTableData converts staff entries to table format.
func StaffToTableData(staff []directory.StaffEntry, wide bool) Data {
	headers := []string{"Name", "Position", "Email"}
	if wide {
		headers = append(headers, "Details")
	}

	rows := make([][]string, 0, len(staff))
	for _, s := range staff {
		row := []string{s.Name, orDash(s.Position), orDash(s.Email)}
		if wide {
			row = append(row, truncate(s.Extra, maxCell))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// ReportToTableData summarizes a catalog load report.
func ReportToTableData(report units.LoadReport) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", orDash(report.Source)},
			{"Records", strconv.Itoa(report.Total)},
			{"Loaded", strconv.Itoa(report.Loaded)},
			{"Keys", strconv.Itoa(report.Keys)},
			{"Skipped", strconv.Itoa(report.SkippedCount())},
			{"Collisions", strconv.Itoa(len(report.Collisions))},
		},
	}
}

// CollisionsToTableData lists keys claimed by more than one unit.
func CollisionsToTableData(collisions []units.Collision) Data {
	rows := make([][]string, 0, len(collisions))
	for _, c := range collisions {
		rows = append(rows, []string{c.Key, c.Owner, c.Unit})
	}
	return Data{Headers: []string{"Key", "Kept (first)", "Ignored"}, Rows: rows}
}

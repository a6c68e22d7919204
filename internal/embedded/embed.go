// Package embedded carries the unit dataset compiled into the binary.
package embedded

import (
	"embed"
)

// DatasetPath is the path of the default unit dataset inside FS.
const DatasetPath = "data/units.json"

// FS holds the default unit dataset.
//
//go:embed data/units.json
var FS embed.FS

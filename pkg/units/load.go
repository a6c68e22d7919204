package units

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/unitmap/pkg/errors"
)

// Format is a dataset encoding.
type Format string

const (
	// FormatJSON is a JSON array of unit objects.
	FormatJSON Format = "json"
	// FormatYAML is a YAML sequence of unit mappings.
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the dataset format from a file extension.
// Anything other than .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a dataset file and builds a catalog from it.
// A missing file is reported as a not-found error.
func Load(path string, opts ...LoadOption) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("dataset", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, FormatFromPath(path), path, opts)
}

// LoadFS reads a dataset from fsys, such as an embedded filesystem.
func LoadFS(fsys fs.FS, name string, opts ...LoadOption) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("dataset", name)
		}
		return nil, errors.WrapIO("read", name, err)
	}
	return parse(data, FormatFromPath(name), name, opts)
}

// Parse builds a catalog from encoded dataset bytes.
func Parse(data []byte, format Format, opts ...LoadOption) (*Catalog, error) {
	return parse(data, format, "", opts)
}

func parse(data []byte, format Format, file string, opts []LoadOption) (*Catalog, error) {
	if format == FormatYAML {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, errors.WrapParse(string(FormatYAML), file, err)
		}
		data = converted
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewParseError(string(format), file, "dataset must be an array of unit records", err)
	}

	// Decode record by record so one bad entry does not sink the whole dataset.
	records := make([]Unit, len(raw))
	rejected := make(map[int]string)
	for i, msg := range raw {
		if err := json.Unmarshal(msg, &records[i]); err != nil {
			records[i] = Unit{}
			rejected[i] = fmt.Sprintf("decode: %v", err)
		}
	}

	if file != "" {
		opts = append([]LoadOption{WithSource(file)}, opts...)
	}
	return build(records, rejected, opts), nil
}

// Marshal encodes units in the given format. It is used when writing a
// merged dataset back to disk.
func Marshal(records []Unit, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(records)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

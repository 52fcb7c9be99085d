// Package encoding reads and writes the JSON and YAML files gameshelf keeps
// in its application directory.
package encoding

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a supported file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadInto reads the file at path and decodes it over the existing contents
// of into, so fields absent from the file keep their current values.
// Returns false, nil if the file does not exist.
func LoadInto[T any](path string, into *T) (bool, error) {
	data, err := ReadFile(path)
	if err != nil {
		return false, err
	}

	if data == nil {
		return false, nil
	}

	if err := Decode(FormatFromPath(path), data, into); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return true, nil
}

// Save encodes value in the format implied by path and writes it with 0600
// permissions.
func Save[T any](path string, value T) error {
	data, err := Encode(FormatFromPath(path), value)
	if err != nil {
		return err
	}

	return WriteFileSecure(path, data)
}

// Decode unmarshals data in the given format.
func Decode[T any](format Format, data []byte, into *T) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, into)
	default:
		return json.Unmarshal(data, into)
	}
}

// Encode marshals value in the given format. JSON output is indented.
func Encode[T any](format Format, value T) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}

		return data, nil
	default:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}

		return data, nil
	}
}

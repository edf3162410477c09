package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML schema declaration and checks it. source is
// only used in error messages.
func Parse(data []byte, source string) (Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Schema{}, fmt.Errorf("model: schema %s is empty", source)
	}

	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		schema = Schema{}
		if yerr := yaml.Unmarshal(data, &schema); yerr != nil {
			return Schema{}, fmt.Errorf("model: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}

	if err := schema.Check(); err != nil {
		return Schema{}, fmt.Errorf("model: schema %s: %w", source, err)
	}
	return schema, nil
}

// LoadFS reads and parses the schema stored at path inside fsys.
func LoadFS(fsys fs.FS, path string) (Schema, error) {
	if fsys == nil {
		return Schema{}, fmt.Errorf("model: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Schema{}, fmt.Errorf("model: read %s: %w", path, err)
	}
	return Parse(data, path)
}

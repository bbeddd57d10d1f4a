package marker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a marker list from a YAML or JSON file, chosen by
// extension (.yml/.yaml vs anything else). YAML documents are converted
// through JSON so both formats share the same open-record decoding.
func LoadFile(path string) ([]Marker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markers %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" || ext == ".yaml" {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing markers %s: %w", path, err)
		}
		data, err = json.Marshal(normalizeYAML(doc))
		if err != nil {
			return nil, fmt.Errorf("converting markers %s: %w", path, err)
		}
	}

	var markers []Marker
	if err := json.Unmarshal(data, &markers); err != nil {
		return nil, fmt.Errorf("parsing markers %s: %w", path, err)
	}
	return markers, nil
}

// normalizeYAML rewrites map[any]any nodes (as produced by older YAML
// documents with non-string keys) into map[string]any so they survive
// json.Marshal.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}

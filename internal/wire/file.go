package wire

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/boxproof/boxproof/internal/spec"
)

// ReadSpecFile reads a spec document from disk. The document bytes are
// returned alongside the decoded spec so callers can run additional
// byte-level checks (schema validation, golden comparison).
//
// .json files are decoded directly. .yaml/.yml files are an authoring
// convenience: the YAML is converted to the equivalent JSON document
// first, so the wire rules (required fields, unknown-field tolerance,
// absent-vs-empty children) apply identically.
func ReadSpecFile(path string) (*spec.TestSpec, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, nil, err
		}
	case ".json":
		// Already the wire format.
	default:
		return nil, nil, fmt.Errorf("unsupported spec file extension %q (want .json, .yaml, or .yml)", filepath.Ext(path))
	}

	s, err := DecodeSpec(data)
	if err != nil {
		return nil, nil, err
	}
	return s, data, nil
}

// yamlToJSON converts a YAML document to its JSON equivalent.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("YAML document is not JSON-representable: %w", err)
	}
	return out, nil
}

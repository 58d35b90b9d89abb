package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// vocabularyFile is the on-disk shape of an operator-supplied vocabulary.
//
//	groups:
//	  selection:
//	    - name: market_scope
//	      kind: enum
//	      allowed: [horizontal, vertical]
type vocabularyFile struct {
	Groups map[string][]FieldSpec `yaml:"groups"`
}

// LoadFile reads a YAML vocabulary document and builds a Registry from it.
// The file fully replaces the built-in vocabulary; it is not merged.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return Parse(data)
}

// Parse builds a Registry from YAML vocabulary bytes.
func Parse(data []byte) (*Registry, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(file.Groups) == 0 {
		return nil, fmt.Errorf("vocabulary defines no groups")
	}

	r := NewRegistry()
	for rawGroup, specs := range file.Groups {
		g, ok := ParseGroup(rawGroup)
		if !ok {
			return nil, fmt.Errorf("vocabulary group %q is not one of the known groups", rawGroup)
		}
		for _, spec := range specs {
			if err := r.Register(g, spec); err != nil {
				return nil, fmt.Errorf("vocabulary: %w", err)
			}
		}
	}
	return r, nil
}

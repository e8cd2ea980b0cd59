package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSeedFile reads a YAML catalog:
//
//	entries:
//	  - id: concrete
//	    category: material
//	    load: 23600
//	    unit: N/m3
func LoadSeedFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed struct {
		Entries []Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, e := range seed.Entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	return seed.Entries, nil
}

package climate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSeedFile reads a YAML list of sites:
//
//	sites:
//	  - location: Gaspé
//	    snow: 4.9
//	    snow_rain: 0.6
//	    rain: 96
func LoadSeedFile(path string) ([]Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed struct {
		Sites []Site `yaml:"sites"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, s := range seed.Sites {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return seed.Sites, nil
}

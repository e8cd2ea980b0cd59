// Package batch evaluates a file of structural members, each with its own
// loads and combination context, in parallel.
package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gonbc/internal/limitstate"
	"github.com/alexiusacademia/gonbc/internal/loads"
	"github.com/alexiusacademia/gonbc/internal/nbc"
	"github.com/alexiusacademia/gonbc/internal/snow"
)

// Member is one structural member of a scenario file. The snow load is
// either given in Loads or computed from the Snow block.
type Member struct {
	Name    string               `yaml:"name"`
	Loads   loads.SpecifiedLoads `yaml:"loads"`
	Snow    *SnowInput           `yaml:"snow"`
	Context limitstate.Context   `yaml:"context"`
}

// SnowInput locates the roof whose specified snow load fills Loads.Snow.
type SnowInput struct {
	Site     string                  `yaml:"site"`
	Roof     snow.RoofGeometry       `yaml:"roof"`
	Exposure snow.ExposureConditions `yaml:"exposure"`
	Upper    *snow.UpperRoof         `yaml:"upper_roof"` // multi-level roof, optional
}

// Validate checks the member before any lookup.
func (m Member) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: member without name", nbc.ErrInvalidInput)
	}
	if err := m.Loads.Validate(); err != nil {
		return err
	}
	if err := m.Context.Validate(); err != nil {
		return err
	}
	if m.Snow == nil {
		return nil
	}
	if m.Loads.Snow != 0 {
		return fmt.Errorf("%w: snow load given both explicitly and as a snow block", nbc.ErrInvalidInput)
	}
	if m.Snow.Site == "" {
		return fmt.Errorf("%w: snow block without site", nbc.ErrInvalidInput)
	}
	if err := m.Snow.Roof.Validate(); err != nil {
		return err
	}
	return m.Snow.Exposure.Validate()
}

// LoadFile reads a scenario file:
//
//	members:
//	  - name: R1
//	    loads: {dead: 1.2, live: 1.0}
//	    snow:
//	      site: Gaspé
//	      roof: {height: 5, larger_dimension: 20, smaller_dimension: 12, slope: 10}
//	      exposure: {importance: normal, exposed_to_wind: true, rural_area: true}
//	    context: {exterior: true}
func LoadFile(path string) ([]Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Members []Member `yaml:"members"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(file.Members))
	for i, m := range file.Members {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("member %d (%q): %w", i+1, m.Name, err)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("%w: duplicate member name %q", nbc.ErrInvalidInput, m.Name)
		}
		seen[m.Name] = true
	}
	return file.Members, nil
}

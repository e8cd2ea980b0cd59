// Package loads holds the specified loads of a structural member and the
// collaborators that derive dead and live loads from the load catalog.
package loads

import (
	"fmt"

	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// SpecifiedLoads are the unfactored loads acting on a member, in kPa.
type SpecifiedLoads struct {
	Dead       float64 `yaml:"dead"`       // D
	Live       float64 `yaml:"live"`       // L
	Snow       float64 `yaml:"snow"`       // S
	Wind       float64 `yaml:"wind"`       // W
	Earthquake float64 `yaml:"earthquake"` // E
}

// New validates and returns a set of specified loads.
func New(dead, live, snow, wind, earthquake float64) (SpecifiedLoads, error) {
	l := SpecifiedLoads{Dead: dead, Live: live, Snow: snow, Wind: wind, Earthquake: earthquake}
	if err := l.Validate(); err != nil {
		return SpecifiedLoads{}, err
	}
	return l, nil
}

// Validate rejects negative or non-finite components.
func (l SpecifiedLoads) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"dead", l.Dead},
		{"live", l.Live},
		{"snow", l.Snow},
		{"wind", l.Wind},
		{"earthquake", l.Earthquake},
	} {
		if !nbc.Finite(c.value) {
			return fmt.Errorf("%w: %s load must be finite, got %v", nbc.ErrInvalidInput, c.name, c.value)
		}
		if c.value < 0 {
			return fmt.Errorf("%w: %s load must not be negative, got %.2f kPa", nbc.ErrInvalidInput, c.name, c.value)
		}
	}
	return nil
}

// WithSnow returns a copy with the snow load replaced.
func (l SpecifiedLoads) WithSnow(snow float64) SpecifiedLoads {
	l.Snow = snow
	return l
}

func (l SpecifiedLoads) String() string {
	return fmt.Sprintf("D=%.2f L=%.2f S=%.2f W=%.2f E=%.2f kPa", l.Dead, l.Live, l.Snow, l.Wind, l.Earthquake)
}

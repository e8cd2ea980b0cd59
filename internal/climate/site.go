// Package climate provides the site climate data the snow calculator
// consumes: ground snow load Ss, associated rain load Sr and one-day
// rainfall, keyed by a location name.
package climate

import (
	"context"
	"fmt"

	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// ErrNotFound is returned for unknown site identifiers. It wraps
// nbc.ErrLookupFailure.
var ErrNotFound = fmt.Errorf("climate site not found: %w", nbc.ErrLookupFailure)

// Site holds the climatic design data of one location (NBC Appendix C).
type Site struct {
	ID                 string  `yaml:"location"`
	GroundSnowLoad     float64 `yaml:"snow"`      // Ss (kPa)
	AssociatedRainLoad float64 `yaml:"snow_rain"` // Sr (kPa)
	RainfallMM         float64 `yaml:"rain"`      // one-day rainfall (mm)
}

// Validate rejects negative or non-finite climate values.
func (s Site) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: site without location name", nbc.ErrInvalidInput)
	}
	if !nbc.Finite(s.GroundSnowLoad, s.AssociatedRainLoad, s.RainfallMM) {
		return fmt.Errorf("%w: non-finite climate data for %q", nbc.ErrInvalidInput, s.ID)
	}
	if s.GroundSnowLoad < 0 || s.AssociatedRainLoad < 0 || s.RainfallMM < 0 {
		return fmt.Errorf("%w: negative climate data for %q: Ss=%.2f, Sr=%.2f, rain=%.1f",
			nbc.ErrInvalidInput, s.ID, s.GroundSnowLoad, s.AssociatedRainLoad, s.RainfallMM)
	}
	return nil
}

// Source looks up climate data by site identifier. Implementations must be
// safe for concurrent use; the calculator never writes through them.
type Source interface {
	Lookup(ctx context.Context, siteID string) (Site, error)
}

func notFound(siteID string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, siteID)
}

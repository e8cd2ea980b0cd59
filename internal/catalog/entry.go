// Package catalog holds the unit weights of construction materials and the
// uniform live loads of occupancies used to derive dead and live loads.
package catalog

import (
	"context"
	"fmt"

	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// Entry categories.
const (
	Material  = "material"  // dead load of a construction material
	Occupancy = "occupancy" // uniform live load of a use, Table 4.1.5.3
)

// Units a catalog load can be expressed in.
const (
	UnitKPa         = "kPa"
	UnitNPerM2      = "N/m2"
	UnitNPerM3      = "N/m3"    // per unit volume, needs a thickness
	UnitNPerM2PerMM = "N/m2/mm" // per mm of thickness
)

// ErrNotFound is returned for unknown entry identifiers. It wraps
// nbc.ErrLookupFailure.
var ErrNotFound = fmt.Errorf("catalog entry not found: %w", nbc.ErrLookupFailure)

// Entry is one row of the load catalog.
type Entry struct {
	ID       string  `yaml:"id"`
	Category string  `yaml:"category"`
	Load     float64 `yaml:"load"`
	Unit     string  `yaml:"unit"`
}

// Validate checks the category, unit and sign of the load.
func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: catalog entry without id", nbc.ErrInvalidInput)
	}
	if e.Category != Material && e.Category != Occupancy {
		return fmt.Errorf("%w: entry %q has unknown category %q", nbc.ErrInvalidInput, e.ID, e.Category)
	}
	switch e.Unit {
	case UnitKPa, UnitNPerM2, UnitNPerM3, UnitNPerM2PerMM:
	default:
		return fmt.Errorf("%w: entry %q has unknown unit %q", nbc.ErrInvalidInput, e.ID, e.Unit)
	}
	if e.Category == Occupancy && e.Unit != UnitKPa {
		return fmt.Errorf("%w: occupancy %q must be given in kPa", nbc.ErrInvalidInput, e.ID)
	}
	if !nbc.Finite(e.Load) || e.Load < 0 {
		return fmt.Errorf("%w: entry %q has negative load %.2f", nbc.ErrInvalidInput, e.ID, e.Load)
	}
	return nil
}

// NeedsThickness reports whether Pressure requires a layer thickness.
func (e Entry) NeedsThickness() bool {
	return e.Unit == UnitNPerM3 || e.Unit == UnitNPerM2PerMM
}

// Pressure converts the entry to kPa. thicknessMM is only used for
// volumetric and per-thickness units.
func (e Entry) Pressure(thicknessMM float64) (float64, error) {
	if e.NeedsThickness() && (!nbc.Finite(thicknessMM) || thicknessMM <= 0) {
		return 0, fmt.Errorf("%w: %q is given in %s and needs a positive thickness", nbc.ErrInvalidInput, e.ID, e.Unit)
	}
	switch e.Unit {
	case UnitKPa:
		return e.Load, nil
	case UnitNPerM2:
		return e.Load / 1000, nil
	case UnitNPerM3:
		return e.Load * thicknessMM / 1000 / 1000, nil
	case UnitNPerM2PerMM:
		return e.Load * thicknessMM / 1000, nil
	}
	return 0, fmt.Errorf("%w: entry %q has unknown unit %q", nbc.ErrInvalidInput, e.ID, e.Unit)
}

// Catalog looks up entries by identifier. Implementations must be safe for
// concurrent use.
type Catalog interface {
	Lookup(ctx context.Context, id string) (Entry, error)
}

func notFound(id string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}

// MapCatalog is an in-memory Catalog.
type MapCatalog struct {
	entries map[string]Entry
}

// NewMapCatalog indexes entries by ID.
func NewMapCatalog(entries ...Entry) *MapCatalog {
	m := &MapCatalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return m
}

func (m *MapCatalog) Lookup(_ context.Context, id string) (Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return Entry{}, notFound(id)
	}
	return e, nil
}

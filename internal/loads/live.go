package loads

import (
	"context"
	"fmt"

	"github.com/alexiusacademia/gonbc/internal/catalog"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// DiningArea is the catalog occupancy the dining area allowance applies to.
const DiningArea = "dining area"

// LiveLoad returns the uniform live load for a use, Article 4.1.5.3,
// rounded to 0.1 kPa. area is the loaded area in m², 0 when unknown.
// Tributary area reductions are not applied.
func LiveLoad(ctx context.Context, cat catalog.Catalog, use string, area float64, importance nbc.ImportanceCategory) (float64, error) {
	if !importance.Valid() {
		return 0, fmt.Errorf("%w: unknown importance category %v", nbc.ErrInvalidInput, importance)
	}
	if !nbc.Finite(area) || area < 0 {
		return 0, fmt.Errorf("%w: loaded area must not be negative, got %.2f m²", nbc.ErrInvalidInput, area)
	}

	entry, err := cat.Lookup(ctx, use)
	if err != nil {
		return 0, err
	}
	if entry.Category != catalog.Occupancy {
		return 0, fmt.Errorf("%w: %q is not an occupancy", nbc.ErrInvalidInput, use)
	}

	load := entry.Load
	if use == DiningArea && area > 0 && area <= nbc.DiningAreaLimit {
		load = nbc.DiningAreaLoad
	}
	if importance == nbc.Low {
		load *= nbc.LowImportanceLiveFactor
	}
	return nbc.Round(load, 1), nil
}

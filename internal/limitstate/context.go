// Package limitstate combines specified loads into the governing ultimate
// and serviceability limit state loads of NBC 2020 Subsection 4.1.3.
package limitstate

import (
	"fmt"

	"github.com/alexiusacademia/gonbc/internal/loads"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// Context holds the conditions that modify the combination factors.
type Context struct {
	CounterDead       bool    `yaml:"counter_dead"`       // dead load resists overturning, uplift or reversal
	LiquidContainment bool    `yaml:"liquid_containment"` // live load from liquids in tanks
	SoilDepth         float64 `yaml:"soil_depth"`         // depth of supported soil (m), 0 when none
	StorageOccupancy  bool    `yaml:"storage"`            // storage, equipment or service room
	ExteriorExposure  bool    `yaml:"exterior"`           // roof or exterior area
	VehicleAccess     bool    `yaml:"vehicle_access"`     // exterior area accessible to vehicles
}

// Validate rejects a negative or non-finite soil depth.
func (c Context) Validate() error {
	if !nbc.Finite(c.SoilDepth) || c.SoilDepth < 0 {
		return fmt.Errorf("%w: soil depth must not be negative, got %.2f m", nbc.ErrInvalidInput, c.SoilDepth)
	}
	return nil
}

// ULSFactorsFor returns the nine ULS weighting factors for the context.
// The adjustments are applied in code order: soil, counteracting dead load,
// liquids, storage, then exterior areas.
func ULSFactorsFor(c Context, l loads.SpecifiedLoads) nbc.ULSFactors {
	f := nbc.ULSBaseFactors

	// 4.1.3.2.(8) and (9)
	if c.SoilDepth > 0 {
		f.D1 = nbc.SoilDeadFactor
		f.D234 = nbc.SoilDeadFactor
		if c.SoilDepth > nbc.SoilDepthThreshold {
			f.D234 = max(1+nbc.SoilDepthCoefficient/c.SoilDepth, nbc.SoilDeadFactorMin)
		}
	}

	// 4.1.3.2.(5), after the soil adjustment
	if c.CounterDead {
		f.D234 = nbc.CounterDeadFactor
	}

	// 4.1.3.2.(6)
	if c.LiquidContainment {
		f.L2 = nbc.LiquidLiveFactor
	}

	// 4.1.3.2.(7)
	if c.StorageOccupancy {
		f.L3 += nbc.StorageLiveIncrement
		f.L4 += nbc.StorageLiveIncrement
		f.L5 += nbc.StorageLiveIncrement
	}

	if c.ExteriorExposure {
		if c.VehicleAccess {
			// 4.1.5.5.(4)
			f.S2 = nbc.VehicleSnowFactor
			f.S4 = nbc.VehicleSnowFactor
			f.S5 = nbc.VehicleSnowFactor
		} else {
			// 4.1.5.5.(2) and (3): live and snow loads are not combined
			f.S2 = 0
			f.L3 = 0
			// equal companion terms drop the live load
			if f.L5*l.Live <= f.S5*l.Snow {
				f.L5 = 0
			} else {
				f.S5 = 0
			}
		}
	}

	return f
}

// SLSLiveFactor returns the companion live load factor of Table 4.1.3.4.
func SLSLiveFactor(c Context) float64 {
	if c.StorageOccupancy {
		return nbc.SLSLiveFactorStorage
	}
	return nbc.SLSLiveFactor
}

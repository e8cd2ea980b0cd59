// Package snow computes the specified snow and rain load on a roof per
// NBC 2020 Subsection 4.1.6.
package snow

import (
	"fmt"

	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// RoofGeometry describes the roof the snow load acts on.
type RoofGeometry struct {
	Height           float64 `yaml:"height"`            // mean height above grade (m)
	LargerDimension  float64 `yaml:"larger_dimension"`  // l (m)
	SmallerDimension float64 `yaml:"smaller_dimension"` // w (m)
	SlopeDegrees     float64 `yaml:"slope"`             // α (°)
}

// Validate rejects non-finite or non-positive dimensions and slopes
// outside 0–90°.
func (g RoofGeometry) Validate() error {
	if !nbc.Finite(g.Height, g.LargerDimension, g.SmallerDimension, g.SlopeDegrees) {
		return fmt.Errorf("%w: roof dimensions and slope must be finite", nbc.ErrInvalidGeometry)
	}
	if g.Height <= 0 || g.LargerDimension <= 0 || g.SmallerDimension <= 0 {
		return fmt.Errorf("%w: roof dimensions must be positive: h=%.2f, l=%.2f, w=%.2f",
			nbc.ErrInvalidGeometry, g.Height, g.LargerDimension, g.SmallerDimension)
	}
	if g.SlopeDegrees < 0 || g.SlopeDegrees > 90 {
		return fmt.Errorf("%w: roof slope %.1f° outside 0–90°", nbc.ErrInvalidGeometry, g.SlopeDegrees)
	}
	return nil
}

// CharacteristicLength is lc = 2w − w²/l, Sentence 4.1.6.2.(2). Swapped
// dimensions are put back in order.
func (g RoofGeometry) CharacteristicLength() float64 {
	w, l := g.SmallerDimension, g.LargerDimension
	if w > l {
		w, l = l, w
	}
	return 2*w - w*w/l
}

// ExposureConditions are the site and roof conditions of one snow load
// calculation. The zero value is a sheltered, unobstructed roof of Normal
// importance checked at ULS.
type ExposureConditions struct {
	Importance nbc.ImportanceCategory `yaml:"importance"`
	LimitState nbc.LimitState         `yaml:"limit_state"`

	ExposedToWind   bool `yaml:"exposed_to_wind"` // exposed on all sides
	NorthOfTreeLine bool `yaml:"north_of_tree_line"`
	RuralArea       bool `yaml:"rural_area"`
	SlipperyRoof    bool `yaml:"slippery_roof"` // unobstructed slippery roof

	ObstructionDistance float64 `yaml:"obstruction_distance"` // m
	ObstructionHeight   float64 `yaml:"obstruction_height"`   // m, 0 when none

	// Drifting is set when a higher roof or other drift source is adjacent;
	// DriftingDistance is the horizontal distance to it (m).
	Drifting         bool    `yaml:"drifting"`
	DriftingDistance float64 `yaml:"drifting_distance"`

	// Accumulation conditions, Sentences 4.1.6.2.(8) and 4.1.6.5 to 4.1.6.12
	ProjectionHeight float64 `yaml:"projection_height"` // rooftop projection (m), 0 when none
	Dome             bool    `yaml:"dome"`              // gable, dome or multi-slope roof
	Sliding          bool    `yaml:"sliding"`           // sliding snow from an adjacent higher roof
	Valley           bool    `yaml:"valley"`
	Meltwater        bool    `yaml:"meltwater"` // meltwater from an adjacent roof
}

// Validate rejects unknown categories and negative or non-finite distances
// and heights.
func (e ExposureConditions) Validate() error {
	if !e.Importance.Valid() {
		return fmt.Errorf("%w: unknown importance category %v", nbc.ErrInvalidInput, e.Importance)
	}
	if !e.LimitState.Valid() {
		return fmt.Errorf("%w: unknown limit state %v", nbc.ErrInvalidInput, e.LimitState)
	}
	if !nbc.Finite(e.ObstructionDistance, e.ObstructionHeight, e.DriftingDistance, e.ProjectionHeight) {
		return fmt.Errorf("%w: exposure distances and heights must be finite", nbc.ErrInvalidInput)
	}
	if e.ObstructionDistance < 0 || e.ObstructionHeight < 0 || e.DriftingDistance < 0 || e.ProjectionHeight < 0 {
		return fmt.Errorf("%w: exposure distances and heights must not be negative", nbc.ErrInvalidInput)
	}
	return nil
}

// SubjectToDrifting reports whether a drift source lies within the drift
// proximity limit, or snow slides onto the roof from a higher one.
func (e ExposureConditions) SubjectToDrifting() bool {
	return (e.Drifting && e.DriftingDistance <= nbc.DriftProximityLimit) || e.Sliding
}

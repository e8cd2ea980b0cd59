package snow

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// ImportanceFactor returns Is from Table 4.1.6.2.-A. The SLS column
// overrides the category.
func ImportanceFactor(category nbc.ImportanceCategory, state nbc.LimitState) (float64, error) {
	is, ok := nbc.ImportanceFactors[category]
	if !ok {
		return 0, fmt.Errorf("%w: unknown importance category %v", nbc.ErrInvalidInput, category)
	}
	if !state.Valid() {
		return 0, fmt.Errorf("%w: unknown limit state %v", nbc.ErrInvalidInput, state)
	}
	if state == nbc.SLS {
		is = nbc.ImportanceFactorSLS
	}
	return is, nil
}

// SnowSpecificWeight returns γ = min(4.0, 0.43·Ss + 2.2) in kN/m³.
// Sentence 4.1.6.13.(1)
func SnowSpecificWeight(groundSnowLoad float64) float64 {
	return math.Min(nbc.GammaMax, nbc.GammaSlope*groundSnowLoad+nbc.GammaIntercept)
}

// WindExposureFactor returns Cw, Sentences 4.1.6.2.(3) and (4).
//
// Cw is reduced only for Low and Normal importance roofs exposed on all
// sides, with an obstruction, not subject to drifting, and located north of
// the tree line (0.5) or in a rural area (0.75). The reduction is lost when
// the obstruction is closer than 10·(ho − Cw·Ss/γ).
func WindExposureFactor(exp ExposureConditions, groundSnowLoad float64) float64 {
	if exp.Importance != nbc.Low && exp.Importance != nbc.Normal {
		return nbc.CwDefault
	}
	if !exp.ExposedToWind || exp.ObstructionHeight <= 0 || exp.SubjectToDrifting() {
		return nbc.CwDefault
	}

	var cw float64
	switch {
	case exp.NorthOfTreeLine:
		cw = nbc.CwNorth
	case exp.RuralArea:
		cw = nbc.CwRural
	default:
		return nbc.CwDefault
	}

	gamma := SnowSpecificWeight(groundSnowLoad)
	limit := nbc.ObstructionDistanceFactor * (exp.ObstructionHeight - cw*groundSnowLoad/gamma)
	if exp.ObstructionDistance < limit {
		return nbc.CwDefault
	}
	return cw
}

// BasicFactor returns Cb, Sentence 4.1.6.2.(2). Roofs lower than
// 1 + Ss/γ keep Cb = 1.0.
func BasicFactor(geom RoofGeometry, windFactor, groundSnowLoad, gamma float64) (float64, error) {
	if err := geom.Validate(); err != nil {
		return 0, err
	}
	if windFactor <= 0 {
		return 0, fmt.Errorf("%w: wind exposure factor must be positive, got %.2f", nbc.ErrInvalidInput, windFactor)
	}
	if gamma <= 0 {
		return 0, fmt.Errorf("%w: snow specific weight must be positive, got %.2f", nbc.ErrInvalidInput, gamma)
	}

	if geom.Height < nbc.CbHeightOffset+groundSnowLoad/gamma {
		return 1, nil
	}

	lc := geom.CharacteristicLength()
	cw2 := windFactor * windFactor
	if lc <= nbc.CbLengthLimit/cw2 {
		return nbc.CbReduced, nil
	}

	// Cb = (1/Cw)·[1 − (1 − 0.8·Cw)·exp(−(lc·Cw² − 70)/100)]
	decay := math.Exp(-(lc*cw2 - nbc.CbLengthLimit) / nbc.CbDecayLength)
	return (1 / windFactor) * (1 - (1-nbc.CbReduced*windFactor)*decay), nil
}

// SlopeFactor returns Cs, Sentences 4.1.6.2.(5) to (7). Accumulation
// (Ca > 1) cancels any slope reduction.
func SlopeFactor(slopeDegrees float64, slippery bool, accumulationFactor float64) float64 {
	if accumulationFactor > 1 {
		return 1
	}
	if slippery {
		return nbc.SlopeRampSlippery.Factor(slopeDegrees)
	}
	return nbc.SlopeRampDefault.Factor(slopeDegrees)
}

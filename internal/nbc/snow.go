package nbc

// NBC 2020 Part 4, Subsection 4.1.6 - Loads Due to Snow and Rain

// Edition is the code edition every table in this package follows.
const Edition = "NBC 2020"

// ImportanceFactors is Table 4.1.6.2.-A (ULS column).
var ImportanceFactors = map[ImportanceCategory]float64{
	Low:          0.8,
	Normal:       1.0,
	High:         1.15,
	PostDisaster: 1.25,
}

// ImportanceFactorSLS is the SLS column of Table 4.1.6.2.-A, the same for
// every category.
const ImportanceFactorSLS = 0.9

const (
	// Snow specific weight, Sentence 4.1.6.13.(1) (kN/m³)
	GammaSlope     = 0.43
	GammaIntercept = 2.2
	GammaMax       = 4.0

	// Basic roof snow load factor, Sentence 4.1.6.2.(2)
	CbReduced      = 0.8
	CbLengthLimit  = 70.0  // m, compared against lc·Cw²
	CbDecayLength  = 100.0 // m
	CbHeightOffset = 1.0   // m, added to Ss/γ

	// Wind exposure factor, Sentences 4.1.6.2.(3) and (4)
	CwNorth                   = 0.5
	CwRural                   = 0.75
	CwDefault                 = 1.0
	ObstructionDistanceFactor = 10.0

	// Drift sources closer than this make the roof subject to drifting (m).
	DriftProximityLimit = 5.0

	// Specified rain load, Sentence 4.1.6.4.(1): kPa per mm of rainfall.
	RainLoadPerMM = 0.0098
)

// SlopeRamp describes the slope factor of Sentences 4.1.6.2.(5) to (7):
// Cs is 1 up to Full degrees, falls linearly to 0 at Zero degrees.
type SlopeRamp struct {
	Full float64
	Zero float64
}

// Factor returns Cs for a roof slope in degrees.
func (r SlopeRamp) Factor(alpha float64) float64 {
	switch {
	case alpha <= r.Full:
		return 1
	case alpha <= r.Zero:
		return (r.Zero - alpha) / (r.Zero - r.Full)
	}
	return 0
}

var (
	// SlopeRampDefault applies to roofs that are not slippery or are obstructed.
	SlopeRampDefault = SlopeRamp{Full: 30, Zero: 70}

	// SlopeRampSlippery applies to unobstructed slippery roofs.
	SlopeRampSlippery = SlopeRamp{Full: 15, Zero: 60}
)

// Multi-level roofs, Article 4.1.6.5
const (
	DriftBetaCase1    = 1.0
	DriftBetaCase23   = 0.67
	DriftFCoefficient = 0.35
	DriftFMax         = 5.0
	DriftLengthFactor = 5.0
	DriftParapetSs    = 0.8 // h''p = hp - 0.8·Ss/γ
)

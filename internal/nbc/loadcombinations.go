package nbc

// LoadCombination identifies one row of a combination table.
// NBC 2020 Table 4.1.3.2.-A (ULS) and Table 4.1.3.4. (SLS)
type LoadCombination struct {
	ID          string
	Description string
}

// ULSCombinations lists the five cases of Table 4.1.3.2.-A in order.
var ULSCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D"},
	{ID: "2", Description: "1.25D + 1.5L + (1.0S or 0.4W)"},
	{ID: "3", Description: "1.25D + 1.5S + (1.0L or 0.4W)"},
	{ID: "4", Description: "1.25D + 1.4W + (0.5L or 0.5S)"},
	{ID: "5", Description: "1.0D + 1.0E + 0.5L + 0.25S"},
}

// SLSCombinations lists the three cases of Table 4.1.3.4. in order.
var SLSCombinations = []LoadCombination{
	{ID: "1", Description: "D + L + (0.3W or 0.35S)"},
	{ID: "2", Description: "D + W + (0.35L or 0.35S)"},
	{ID: "3", Description: "D + S + (0.3W or 0.35L)"},
}

// ULSFactors are the nine weighting factors applied to dead, live and snow
// loads in the five ULS cases. The digit suffix names the case(s) a factor
// belongs to.
type ULSFactors struct {
	D1   float64
	D234 float64
	L2   float64
	L3   float64
	L4   float64
	L5   float64
	S2   float64
	S4   float64
	S5   float64
}

// ULSBaseFactors are the unmodified factors of Table 4.1.3.2.-A.
var ULSBaseFactors = ULSFactors{
	D1:   1.4,
	D234: 1.25,
	L2:   1.5,
	L3:   1.0,
	L4:   0.5,
	L5:   0.5,
	S2:   1.0,
	S4:   0.5,
	S5:   0.25,
}

const (
	// Sentences 4.1.3.2.(8) and (9): soil supported by the structure
	SoilDeadFactor       = 1.5
	SoilDepthThreshold   = 1.2 // m
	SoilDepthCoefficient = 0.6
	SoilDeadFactorMin    = 1.25

	// Sentence 4.1.3.2.(5): dead load counteracting other loads
	CounterDeadFactor = 0.9

	// Sentence 4.1.3.2.(6): liquids in tanks
	LiquidLiveFactor = 1.25

	// Sentence 4.1.3.2.(7): storage, equipment and service rooms
	StorageLiveIncrement = 0.5

	// Sentence 4.1.5.5.(4): exterior areas accessible to vehicles
	VehicleSnowFactor = 0.2

	// Principal and companion factors that no condition modifies
	PrincipalSnowFactor = 1.5
	PrincipalWindFactor = 1.4
	CompanionWindFactor = 0.4
)

const (
	// Table 4.1.3.4.
	SLSLiveFactor        = 0.35
	SLSLiveFactorStorage = 0.5
	SLSSnowFactor        = 0.35
	SLSWindFactor        = 0.3
)

package limitstate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gonbc/internal/loads"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// ULSCases returns the five factored loads of Table 4.1.3.2.-A in order.
func ULSCases(l loads.SpecifiedLoads, f nbc.ULSFactors) []float64 {
	return []float64{
		f.D1 * l.Dead,
		f.D234*l.Dead + f.L2*l.Live + math.Max(f.S2*l.Snow, nbc.CompanionWindFactor*l.Wind),
		f.D234*l.Dead + nbc.PrincipalSnowFactor*l.Snow + math.Max(f.L3*l.Live, nbc.CompanionWindFactor*l.Wind),
		f.D234*l.Dead + nbc.PrincipalWindFactor*l.Wind + math.Max(f.L4*l.Live, f.S4*l.Snow),
		l.Dead + l.Earthquake + f.L5*l.Live + f.S5*l.Snow,
	}
}

// SLSCases returns the three load combinations of Table 4.1.3.4. in order.
func SLSCases(l loads.SpecifiedLoads, liveFactor float64) []float64 {
	return []float64{
		l.Dead + l.Live + math.Max(nbc.SLSWindFactor*l.Wind, nbc.SLSSnowFactor*l.Snow),
		l.Dead + l.Wind + math.Max(liveFactor*l.Live, nbc.SLSSnowFactor*l.Snow),
		l.Dead + l.Snow + math.Max(nbc.SLSWindFactor*l.Wind, liveFactor*l.Live),
	}
}

// ULS returns the governing ultimate limit state load.
func ULS(l loads.SpecifiedLoads, c Context) float64 {
	return floats.Max(ULSCases(l, ULSFactorsFor(c, l)))
}

// SLS returns the governing serviceability limit state load.
func SLS(l loads.SpecifiedLoads, c Context) float64 {
	return floats.Max(SLSCases(l, SLSLiveFactor(c)))
}

// Case is one evaluated row of a combination table.
type Case struct {
	nbc.LoadCombination
	Value   float64
	Governs bool
}

// Result reports every candidate combination of both limit states.
type Result struct {
	Loads   loads.SpecifiedLoads
	Context Context

	Factors       nbc.ULSFactors
	SLSLiveFactor float64

	ULSCases []Case
	SLSCases []Case

	ULS          float64
	SLS          float64
	GoverningULS nbc.LoadCombination
	GoverningSLS nbc.LoadCombination
}

// Evaluate validates the inputs and computes both limit states. Ties go to
// the lowest numbered combination.
func Evaluate(l loads.SpecifiedLoads, c Context) (*Result, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	r := &Result{
		Loads:         l,
		Context:       c,
		Factors:       ULSFactorsFor(c, l),
		SLSLiveFactor: SLSLiveFactor(c),
	}

	var idx int
	r.ULSCases, r.ULS, idx = tabulate(nbc.ULSCombinations, ULSCases(l, r.Factors))
	r.GoverningULS = nbc.ULSCombinations[idx]
	r.SLSCases, r.SLS, idx = tabulate(nbc.SLSCombinations, SLSCases(l, r.SLSLiveFactor))
	r.GoverningSLS = nbc.SLSCombinations[idx]

	return r, nil
}

func tabulate(combos []nbc.LoadCombination, values []float64) ([]Case, float64, int) {
	idx := floats.MaxIdx(values)
	cases := make([]Case, len(values))
	for i, v := range values {
		cases[i] = Case{LoadCombination: combos[i], Value: v, Governs: i == idx}
	}
	return cases, values[idx], idx
}

func (r *Result) String() string {
	return fmt.Sprintf("ULS = %.2f kPa (case %s), SLS = %.2f kPa (case %s)",
		r.ULS, r.GoverningULS.ID, r.SLS, r.GoverningSLS.ID)
}

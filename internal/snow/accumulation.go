package snow

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// AccumulationInput is everything an accumulation sub-model may depend on.
// The factors are already computed when rules are evaluated.
type AccumulationInput struct {
	Exposure       ExposureConditions
	Geometry       RoofGeometry
	GroundSnowLoad float64
	Gamma          float64
	BasicFactor    float64
	WindFactor     float64
}

// AccumulationRule is one accumulation condition of Sentence 4.1.6.2.(8).
type AccumulationRule interface {
	// Name identifies the clause the rule implements.
	Name() string
	// Applies reports whether the condition is present.
	Applies(in AccumulationInput) bool
	// Factor returns the accumulation factor contributed by the condition.
	Factor(in AccumulationInput) (float64, error)
}

// uniformRule contributes Ca = 1.0 whenever its condition applies.
type uniformRule struct {
	name    string
	applies func(ExposureConditions) bool
}

func (r uniformRule) Name() string { return r.name }

func (r uniformRule) Applies(in AccumulationInput) bool { return r.applies(in.Exposure) }

func (uniformRule) Factor(AccumulationInput) (float64, error) { return 1, nil }

// DefaultAccumulationRules are the six accumulation conditions, each
// contributing 1.0.
var DefaultAccumulationRules = []AccumulationRule{
	uniformRule{"4.1.6.5 drifting", func(e ExposureConditions) bool {
		return e.Drifting && e.DriftingDistance <= nbc.DriftProximityLimit
	}},
	uniformRule{"4.1.6.7 roof projections", func(e ExposureConditions) bool { return e.ProjectionHeight > 0 }},
	uniformRule{"4.1.6.9 dome or multi-slope roof", func(e ExposureConditions) bool { return e.Dome }},
	uniformRule{"4.1.6.11 sliding snow", func(e ExposureConditions) bool { return e.Sliding }},
	uniformRule{"4.1.6.12 valley", func(e ExposureConditions) bool { return e.Valley }},
	uniformRule{"meltwater from adjacent roof", func(e ExposureConditions) bool { return e.Meltwater }},
}

// AccumulationFactor returns Ca, the largest factor among the rules that
// apply, never less than 1.0.
func AccumulationFactor(in AccumulationInput, rules []AccumulationRule) (float64, error) {
	ca := 1.0
	for _, rule := range rules {
		if !rule.Applies(in) {
			continue
		}
		f, err := rule.Factor(in)
		if err != nil {
			return 0, fmt.Errorf("accumulation rule %s: %w", rule.Name(), err)
		}
		ca = math.Max(ca, f)
	}
	return ca, nil
}

// UpperRoof describes the adjacent higher roof of a multi-level roof.
type UpperRoof struct {
	StepHeight    float64 `yaml:"step_height"`    // h, upper roof above the lower roof (m)
	ParapetHeight float64 `yaml:"parapet_height"` // hp on the upper roof (m)
	SourceLength  float64 `yaml:"source_length"`  // lcs, characteristic length of the upper roof (m)
	Case          int     `yaml:"case"`           // load case 1, 2 or 3
}

// DriftBeta returns β for a multi-level load case.
func DriftBeta(loadCase int) (float64, error) {
	switch loadCase {
	case 1:
		return nbc.DriftBetaCase1, nil
	case 2, 3:
		return nbc.DriftBetaCase23, nil
	}
	return 0, fmt.Errorf("%w: multi-level load case must be 1, 2 or 3, got %d", nbc.ErrInvalidInput, loadCase)
}

// MultiLevelDriftFactor returns the local accumulation factor at distance x
// from the step of a multi-level roof, Article 4.1.6.5. Ca decays linearly
// from Ca0 at the step to 1.0 at xd = 5·(Cb·Ss/γ)·(Ca0 − 1).
//
// cb is the lower roof's basic factor and cws the upper roof's wind factor.
func MultiLevelDriftFactor(upper UpperRoof, x, groundSnowLoad, cb, cws float64) (float64, error) {
	if !nbc.Finite(x) || x < 0 {
		return 0, fmt.Errorf("%w: distance from the step must not be negative, got %.2f m", nbc.ErrInvalidGeometry, x)
	}
	ca0, xd, err := DriftExtent(upper, groundSnowLoad, cb, cws)
	if err != nil {
		return 0, err
	}
	if ca0 <= 1 || x > xd {
		return 1, nil
	}
	return ca0 - (ca0-1)*x/xd, nil
}

// DriftExtent returns the peak factor Ca0 at the step and the drift length
// xd. A roof without a drift returns (1, 0).
func DriftExtent(upper UpperRoof, groundSnowLoad, cb, cws float64) (ca0, xd float64, err error) {
	beta, err := DriftBeta(upper.Case)
	if err != nil {
		return 0, 0, err
	}
	if !nbc.Finite(upper.StepHeight, upper.ParapetHeight, upper.SourceLength) {
		return 0, 0, fmt.Errorf("%w: multi-level roof heights and lengths must be finite", nbc.ErrInvalidGeometry)
	}
	if !nbc.Finite(groundSnowLoad, cb, cws) {
		return 0, 0, fmt.Errorf("%w: Ss, Cb and Cw must be finite", nbc.ErrInvalidInput)
	}
	if upper.StepHeight < 0 || upper.ParapetHeight < 0 || upper.SourceLength < 0 {
		return 0, 0, fmt.Errorf("%w: multi-level roof heights and lengths must not be negative", nbc.ErrInvalidGeometry)
	}
	if cb <= 0 || cws <= 0 {
		return 0, 0, fmt.Errorf("%w: Cb and Cw must be positive, got %.2f and %.2f", nbc.ErrInvalidInput, cb, cws)
	}
	if groundSnowLoad <= 0 {
		return 1, 0, nil
	}

	ss := groundSnowLoad
	gamma := SnowSpecificWeight(ss)

	// h''p = hp − 0.8·Ss/γ, not less than 0
	hpp := math.Max(0, upper.ParapetHeight-nbc.DriftParapetSs*ss/gamma)

	// F = 0.35·β·√(γ·(lcs − 5·h''p)/Ss) + Cb
	f := nbc.DriftFCoefficient*beta*math.Sqrt(math.Max(0, gamma*(upper.SourceLength-5*hpp)/ss)) + cb
	if cws == 1 {
		f = math.Min(f, nbc.DriftFMax)
	}

	ca0 = math.Min(beta*gamma*upper.StepHeight/(cb*ss), f/cb)
	if ca0 <= 1 {
		return 1, 0, nil
	}
	return ca0, nbc.DriftLengthFactor * (cb * ss / gamma) * (ca0 - 1), nil
}

// MultiLevelRule swaps the multi-level drift model in for the uniform
// drifting condition.
type MultiLevelRule struct {
	Upper UpperRoof
}

func (MultiLevelRule) Name() string { return "4.1.6.5 multi-level roof" }

func (MultiLevelRule) Applies(in AccumulationInput) bool { return in.Exposure.Drifting }

func (r MultiLevelRule) Factor(in AccumulationInput) (float64, error) {
	return MultiLevelDriftFactor(r.Upper, in.Exposure.DriftingDistance, in.GroundSnowLoad, in.BasicFactor, in.WindFactor)
}

// RulesWithMultiLevel returns the default rules with the uniform drifting
// rule replaced by the multi-level model for upper.
func RulesWithMultiLevel(upper UpperRoof) []AccumulationRule {
	rules := make([]AccumulationRule, 0, len(DefaultAccumulationRules))
	rules = append(rules, MultiLevelRule{Upper: upper})
	rules = append(rules, DefaultAccumulationRules[1:]...)
	return rules
}

package snow

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gonbc/internal/climate"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// Calculator combines the snow factors with site climate data. It holds no
// mutable state and may be shared between goroutines.
type Calculator struct {
	source climate.Source
	rules  []AccumulationRule
	logger *zap.SugaredLogger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithAccumulationRules replaces the default accumulation conditions.
func WithAccumulationRules(rules ...AccumulationRule) Option {
	return func(c *Calculator) { c.rules = rules }
}

// WithLogger traces every factor at debug level.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Calculator) { c.logger = logger }
}

// NewCalculator creates a calculator reading climate data from source.
func NewCalculator(source climate.Source, opts ...Option) *Calculator {
	c := &Calculator{
		source: source,
		rules:  DefaultAccumulationRules,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result holds every intermediate value of a snow load calculation.
type Result struct {
	Site climate.Site

	Gamma float64 // γ (kN/m³)
	Is    float64 // importance factor
	Cw    float64 // wind exposure factor
	Cb    float64 // basic roof snow load factor
	Ca    float64 // accumulation factor
	Cs    float64 // slope factor

	SnowTerm      float64 // Ss·Cb·Cw·Cs·Ca
	RainTerm      float64 // min(Sr, SnowTerm)
	RainCapped    bool    // true when Sr bounded the rain term
	SnowLoad      float64 // S, Sentence 4.1.6.2.(1), rounded to 0.01 kPa
	RainLoad      float64 // Sentence 4.1.6.4.(1), rounded to 0.01 kPa
	Specified     float64 // larger of SnowLoad and RainLoad
	GoverningRain bool    // true when the rain-only load governs
}

// Calculate computes the specified snow load of a roof at siteID.
// Unknown sites fail with an error wrapping nbc.ErrLookupFailure.
func (c *Calculator) Calculate(ctx context.Context, siteID string, geom RoofGeometry, exp ExposureConditions) (*Result, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}

	site, err := c.source.Lookup(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	r := &Result{Site: site}
	ss := site.GroundSnowLoad

	// γ -> Cw -> Cb -> Ca -> Cs
	r.Gamma = SnowSpecificWeight(ss)
	r.Cw = WindExposureFactor(exp, ss)
	r.Cb, err = BasicFactor(geom, r.Cw, ss, r.Gamma)
	if err != nil {
		return nil, err
	}
	r.Ca, err = AccumulationFactor(AccumulationInput{
		Exposure:       exp,
		Geometry:       geom,
		GroundSnowLoad: ss,
		Gamma:          r.Gamma,
		BasicFactor:    r.Cb,
		WindFactor:     r.Cw,
	}, c.rules)
	if err != nil {
		return nil, err
	}
	r.Cs = SlopeFactor(geom.SlopeDegrees, exp.SlipperyRoof, r.Ca)
	r.Is, err = ImportanceFactor(exp.Importance, exp.LimitState)
	if err != nil {
		return nil, err
	}

	r.SnowTerm = ss * (r.Cb * r.Cw * r.Cs * r.Ca)
	r.RainTerm = math.Min(site.AssociatedRainLoad, r.SnowTerm)
	r.RainCapped = site.AssociatedRainLoad < r.SnowTerm

	snow := r.Is * (r.SnowTerm + r.RainTerm)
	rain := SpecifiedRainLoad(site)
	r.SnowLoad = nbc.Round(snow, 2)
	r.RainLoad = nbc.Round(rain, 2)
	r.Specified = nbc.Round(math.Max(snow, rain), 2)
	r.GoverningRain = rain > snow

	c.logger.Debugf("snow load at %s: Ss=%.2f Sr=%.2f γ=%.3f Is=%.2f Cw=%.2f Cb=%.3f Ca=%.2f Cs=%.3f -> S=%.2f kPa",
		site.ID, ss, site.AssociatedRainLoad, r.Gamma, r.Is, r.Cw, r.Cb, r.Ca, r.Cs, r.SnowLoad)

	return r, nil
}

// SpecifiedSnowLoad returns S = Is·[Ss·(Cb·Cw·Cs·Ca) + min(Sr, Ss·(Cb·Cw·Cs·Ca))]
// rounded to two decimals.
func (c *Calculator) SpecifiedSnowLoad(ctx context.Context, siteID string, geom RoofGeometry, exp ExposureConditions) (float64, error) {
	r, err := c.Calculate(ctx, siteID, geom, exp)
	if err != nil {
		return 0, err
	}
	return r.SnowLoad, nil
}

// SpecifiedLoad returns the larger of the snow-and-rain load and the
// rain-only load of Sentence 4.1.6.4.(1).
func (c *Calculator) SpecifiedLoad(ctx context.Context, siteID string, geom RoofGeometry, exp ExposureConditions) (float64, error) {
	r, err := c.Calculate(ctx, siteID, geom, exp)
	if err != nil {
		return 0, err
	}
	return r.Specified, nil
}

// SpecifiedRainLoad converts the site's one-day rainfall to a load (kPa).
func SpecifiedRainLoad(site climate.Site) float64 {
	return site.RainfallMM * nbc.RainLoadPerMM
}

func (r *Result) String() string {
	return fmt.Sprintf("S = %.2f kPa (Is=%.2f, Cb=%.3f, Cw=%.2f, Cs=%.3f, Ca=%.2f)",
		r.SnowLoad, r.Is, r.Cb, r.Cw, r.Cs, r.Ca)
}

package snow

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gonbc/internal/climate"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

var testSites = climate.NewMapSource(
	climate.Site{ID: "Gaspé", GroundSnowLoad: 4.9, AssociatedRainLoad: 0.32, RainfallMM: 96},
	climate.Site{ID: "dry-4.9", GroundSnowLoad: 4.9, AssociatedRainLoad: 0},
	climate.Site{ID: "dry-4", GroundSnowLoad: 4, AssociatedRainLoad: 0},
	climate.Site{ID: "wet", GroundSnowLoad: 2, AssociatedRainLoad: 5},
	climate.Site{ID: "rainy", GroundSnowLoad: 0.1, AssociatedRainLoad: 0, RainfallMM: 100},
)

// flatRoof keeps every factor at 1.0 for Ss = 4.9: h < 1 + Ss/γ.
var flatRoof = RoofGeometry{Height: 2, LargerDimension: 10, SmallerDimension: 10}

func TestCalculator_AllFactorsUnity(t *testing.T) {
	calc := NewCalculator(testSites)

	s, err := calc.SpecifiedSnowLoad(context.Background(), "dry-4.9", flatRoof, ExposureConditions{})
	require.NoError(t, err)
	assert.Equal(t, 4.9, s)

	r, err := calc.Calculate(context.Background(), "dry-4.9", flatRoof, ExposureConditions{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Is)
	assert.Equal(t, 1.0, r.Cb)
	assert.Equal(t, 1.0, r.Cw)
	assert.Equal(t, 1.0, r.Cs)
	assert.Equal(t, 1.0, r.Ca)
	assert.InDelta(t, 4.0, r.Gamma, 1e-12)
}

func TestCalculator_GaspeWorkedExample(t *testing.T) {
	calc := NewCalculator(testSites)

	geom := RoofGeometry{Height: 5, LargerDimension: 5, SmallerDimension: 5, SlopeDegrees: 25}
	exp := ExposureConditions{
		Importance:          nbc.Normal,
		LimitState:          nbc.ULS,
		ExposedToWind:       true,
		RuralArea:           true,
		SlipperyRoof:        true,
		DriftingDistance:    10,
		ObstructionDistance: 1,
		ObstructionHeight:   0.86,
	}

	r, err := calc.Calculate(context.Background(), "Gaspé", geom, exp)
	require.NoError(t, err)

	assert.Equal(t, 0.75, r.Cw)
	assert.Equal(t, 0.8, r.Cb)
	assert.InDelta(t, 35.0/45.0, r.Cs, 1e-12)
	assert.Equal(t, 1.0, r.Ca)
	assert.Equal(t, 2.61, r.SnowLoad)
	assert.Equal(t, 0.94, r.RainLoad)
	assert.Equal(t, 2.61, r.Specified)
	assert.False(t, r.GoverningRain)
}

func TestCalculator_RainTermCappedBySr(t *testing.T) {
	calc := NewCalculator(testSites)

	r, err := calc.Calculate(context.Background(), "Gaspé", flatRoof, ExposureConditions{})
	require.NoError(t, err)
	assert.InDelta(t, 4.9, r.SnowTerm, 1e-12)
	assert.Equal(t, 0.32, r.RainTerm, "rain term must equal Sr exactly")
	assert.True(t, r.RainCapped)
	assert.Equal(t, 5.22, r.SnowLoad)

	// Sr larger than the snow term: the snow term bounds the rain term.
	low := RoofGeometry{Height: 1, LargerDimension: 10, SmallerDimension: 10}
	r, err = calc.Calculate(context.Background(), "wet", low, ExposureConditions{})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, r.RainTerm, 1e-12)
	assert.False(t, r.RainCapped)
	assert.Equal(t, 4.0, r.SnowLoad)
}

func TestCalculator_ImportanceAndLimitState(t *testing.T) {
	calc := NewCalculator(testSites)

	tests := []struct {
		name string
		exp  ExposureConditions
		want float64
	}{
		{"normal ULS", ExposureConditions{}, 4},
		{"low ULS", ExposureConditions{Importance: nbc.Low}, 3.2},
		{"high ULS", ExposureConditions{Importance: nbc.High}, 4.6},
		{"post-disaster ULS", ExposureConditions{Importance: nbc.PostDisaster}, 5},
		{"post-disaster SLS", ExposureConditions{Importance: nbc.PostDisaster, LimitState: nbc.SLS}, 3.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := calc.SpecifiedSnowLoad(context.Background(), "dry-4", flatRoof, tt.exp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestCalculator_RainOnlyLoadGoverns(t *testing.T) {
	calc := NewCalculator(testSites)

	r, err := calc.Calculate(context.Background(), "rainy", flatRoof, ExposureConditions{})
	require.NoError(t, err)
	assert.Equal(t, 0.8, r.Cb)
	assert.Equal(t, 0.08, r.SnowLoad)
	assert.Equal(t, 0.98, r.RainLoad)
	assert.Equal(t, 0.98, r.Specified)
	assert.True(t, r.GoverningRain)

	s, err := calc.SpecifiedLoad(context.Background(), "rainy", flatRoof, ExposureConditions{})
	require.NoError(t, err)
	assert.Equal(t, 0.98, s)
}

type countingSource struct {
	mu    sync.Mutex
	calls int
	inner climate.Source
}

func (c *countingSource) Lookup(ctx context.Context, id string) (climate.Site, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Lookup(ctx, id)
}

func TestCalculator_Errors(t *testing.T) {
	src := &countingSource{inner: testSites}
	calc := NewCalculator(src)
	ctx := context.Background()

	_, err := calc.SpecifiedSnowLoad(ctx, "Atlantis", flatRoof, ExposureConditions{})
	require.ErrorIs(t, err, nbc.ErrLookupFailure)
	assert.ErrorIs(t, err, climate.ErrNotFound)

	_, err = calc.SpecifiedSnowLoad(ctx, "Gaspé", RoofGeometry{Height: 2, LargerDimension: 0, SmallerDimension: 1}, ExposureConditions{})
	require.ErrorIs(t, err, nbc.ErrInvalidGeometry)

	_, err = calc.SpecifiedSnowLoad(ctx, "Gaspé", flatRoof, ExposureConditions{Importance: nbc.ImportanceCategory(9)})
	require.ErrorIs(t, err, nbc.ErrInvalidInput)

	_, err = calc.SpecifiedSnowLoad(ctx, "Gaspé", flatRoof, ExposureConditions{ObstructionDistance: -1})
	require.ErrorIs(t, err, nbc.ErrInvalidInput)

	_, err = calc.SpecifiedSnowLoad(ctx, "Gaspé", RoofGeometry{Height: math.NaN(), LargerDimension: 5, SmallerDimension: 5}, ExposureConditions{})
	require.ErrorIs(t, err, nbc.ErrInvalidGeometry)

	_, err = calc.SpecifiedSnowLoad(ctx, "Gaspé", RoofGeometry{Height: 5, LargerDimension: 5, SmallerDimension: 5, SlopeDegrees: math.NaN()}, ExposureConditions{})
	require.ErrorIs(t, err, nbc.ErrInvalidGeometry)

	assert.Equal(t, 1, src.calls, "invalid inputs fail before the climate lookup")
}

func TestCalculator_NonFiniteClimateData(t *testing.T) {
	src := climate.NewMapSource(
		climate.Site{ID: "nan-snow", GroundSnowLoad: math.NaN(), AssociatedRainLoad: 0.3},
		climate.Site{ID: "inf-rain", GroundSnowLoad: 2, AssociatedRainLoad: math.Inf(1)},
		climate.Site{ID: "nan-rainfall", GroundSnowLoad: 2, RainfallMM: math.NaN()},
	)
	calc := NewCalculator(src)

	for _, site := range []string{"nan-snow", "inf-rain", "nan-rainfall"} {
		t.Run(site, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := calc.SpecifiedLoad(context.Background(), site, flatRoof, ExposureConditions{})
				assert.ErrorIs(t, err, nbc.ErrInvalidInput)
			})
		})
	}
}

func TestCalculator_MultiLevelRuleSuppressesSlopeRelief(t *testing.T) {
	upper := UpperRoof{StepHeight: 3, SourceLength: 30, Case: 1}
	calc := NewCalculator(testSites, WithAccumulationRules(RulesWithMultiLevel(upper)...), WithLogger(zap.NewNop().Sugar()))

	steep := RoofGeometry{Height: 2, LargerDimension: 10, SmallerDimension: 10, SlopeDegrees: 80}
	exp := ExposureConditions{Drifting: true, DriftingDistance: 0}

	r, err := calc.Calculate(context.Background(), "dry-4.9", steep, exp)
	require.NoError(t, err)
	assert.Greater(t, r.Ca, 1.0)
	assert.Equal(t, 1.0, r.Cs)

	plain := NewCalculator(testSites)
	r, err = plain.Calculate(context.Background(), "dry-4.9", steep, exp)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Ca)
	assert.Equal(t, 0.0, r.Cs)
	assert.Equal(t, 0.0, r.SnowLoad)
}

func TestCalculator_ConcurrentCallsAreIdempotent(t *testing.T) {
	calc := NewCalculator(testSites)
	geom := RoofGeometry{Height: 5, LargerDimension: 5, SmallerDimension: 5, SlopeDegrees: 25}

	want, err := calc.Calculate(context.Background(), "Gaspé", geom, ExposureConditions{SlipperyRoof: true})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := calc.Calculate(context.Background(), "Gaspé", geom, ExposureConditions{SlipperyRoof: true})
			if err == nil {
				results[i] = r
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, want, r)
	}
}

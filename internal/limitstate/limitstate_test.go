package limitstate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gonbc/internal/loads"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

func TestEvaluate_StorageRoofWithVehicleAccess(t *testing.T) {
	l := loads.SpecifiedLoads{Dead: 0.5, Live: 4.8, Snow: 2.5, Wind: 1, Earthquake: 1}
	c := Context{
		CounterDead:       true,
		LiquidContainment: true,
		ExteriorExposure:  true,
		StorageOccupancy:  true,
		VehicleAccess:     true,
		SoilDepth:         1,
	}

	r, err := Evaluate(l, c)
	require.NoError(t, err)

	assert.Equal(t, nbc.ULSFactors{D1: 1.5, D234: 0.9, L2: 1.25, L3: 1.5, L4: 1, L5: 1, S2: 0.2, S4: 0.2, S5: 0.2}, r.Factors)
	assert.Equal(t, 11.4, nbc.Round(r.ULS, 1))
	assert.Equal(t, "3", r.GoverningULS.ID)
	require.Len(t, r.ULSCases, 5)
	assert.True(t, r.ULSCases[2].Governs)
	assert.False(t, r.ULSCases[0].Governs)
	assert.InDelta(t, 0.75, r.ULSCases[0].Value, 1e-12)
	assert.InDelta(t, 6.95, r.ULSCases[1].Value, 1e-12)
	assert.InDelta(t, 6.65, r.ULSCases[3].Value, 1e-12)
	assert.InDelta(t, 6.8, r.ULSCases[4].Value, 1e-12)
}

func TestEvaluate_StorageSLS(t *testing.T) {
	l := loads.SpecifiedLoads{Dead: 2, Live: 2, Snow: 2, Wind: 2, Earthquake: 2}

	r, err := Evaluate(l, Context{StorageOccupancy: true})
	require.NoError(t, err)
	assert.Equal(t, 5.0, r.SLS)
	assert.Equal(t, 0.5, r.SLSLiveFactor)
	// cases 2 and 3 tie, the first one governs
	assert.Equal(t, "2", r.GoverningSLS.ID)
	assert.InDelta(t, 4.7, r.SLSCases[0].Value, 1e-12)
	assert.Equal(t, 5.0, SLS(l, Context{StorageOccupancy: true}))
}

func TestEvaluate_ZeroLoads(t *testing.T) {
	r, err := Evaluate(loads.SpecifiedLoads{}, Context{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.ULS)
	assert.Equal(t, 0.0, r.SLS)
	assert.Equal(t, "1", r.GoverningULS.ID)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	_, err := Evaluate(loads.SpecifiedLoads{Dead: -1}, Context{})
	assert.ErrorIs(t, err, nbc.ErrInvalidInput)

	_, err = Evaluate(loads.SpecifiedLoads{Dead: 1}, Context{SoilDepth: -0.5})
	assert.ErrorIs(t, err, nbc.ErrInvalidInput)
}

func TestEvaluate_NonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name  string
		loads loads.SpecifiedLoads
		ctx   Context
	}{
		{"dead NaN", loads.SpecifiedLoads{Dead: nan, Live: 1, Snow: 1, Wind: 1, Earthquake: 1}, Context{}},
		{"dead +Inf", loads.SpecifiedLoads{Dead: inf, Live: 1, Snow: 1, Wind: 1, Earthquake: 1}, Context{}},
		{"snow NaN", loads.SpecifiedLoads{Dead: 1, Snow: nan}, Context{ExteriorExposure: true}},
		{"earthquake +Inf", loads.SpecifiedLoads{Dead: 1, Earthquake: inf}, Context{}},
		{"soil depth NaN", loads.SpecifiedLoads{Dead: 1}, Context{SoilDepth: nan}},
		{"soil depth +Inf", loads.SpecifiedLoads{Dead: 1}, Context{SoilDepth: inf}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(tt.loads, tt.ctx)
			assert.ErrorIs(t, err, nbc.ErrInvalidInput)
			assert.Nil(t, r)
		})
	}
}

func TestULSFactorsFor_Defaults(t *testing.T) {
	assert.Equal(t, nbc.ULSBaseFactors, ULSFactorsFor(Context{}, loads.SpecifiedLoads{Live: 1, Snow: 1}))
	assert.Equal(t, nbc.SLSLiveFactor, SLSLiveFactor(Context{}))
}

func TestULSFactorsFor_Soil(t *testing.T) {
	l := loads.SpecifiedLoads{Dead: 1}

	f := ULSFactorsFor(Context{SoilDepth: 1}, l)
	assert.Equal(t, 1.5, f.D1)
	assert.Equal(t, 1.5, f.D234)

	f = ULSFactorsFor(Context{SoilDepth: 1.2}, l)
	assert.Equal(t, 1.5, f.D234, "threshold depth keeps 1.5")

	f = ULSFactorsFor(Context{SoilDepth: 1.5}, l)
	assert.Equal(t, 1.5, f.D1)
	assert.InDelta(t, 1.4, f.D234, 1e-12)

	f = ULSFactorsFor(Context{SoilDepth: 3}, l)
	assert.Equal(t, 1.25, f.D234, "deep soil is bounded by 1.25")
}

func TestULSFactorsFor_CounterDeadAfterSoil(t *testing.T) {
	f := ULSFactorsFor(Context{SoilDepth: 1.5, CounterDead: true}, loads.SpecifiedLoads{Dead: 1})
	assert.Equal(t, 0.9, f.D234)
	assert.Equal(t, 1.5, f.D1)
}

func TestULSFactorsFor_LiquidAndStorage(t *testing.T) {
	f := ULSFactorsFor(Context{LiquidContainment: true, StorageOccupancy: true}, loads.SpecifiedLoads{})
	assert.Equal(t, 1.25, f.L2)
	assert.Equal(t, 1.5, f.L3)
	assert.Equal(t, 1.0, f.L4)
	assert.Equal(t, 1.0, f.L5)
	assert.Equal(t, 0.5, SLSLiveFactor(Context{StorageOccupancy: true}))
}

func TestULSFactorsFor_ExteriorWithoutVehicles(t *testing.T) {
	c := Context{ExteriorExposure: true}

	tests := []struct {
		name   string
		loads  loads.SpecifiedLoads
		wantL5 float64
		wantS5 float64
	}{
		{"live term larger", loads.SpecifiedLoads{Live: 4, Snow: 2}, 0.5, 0},
		{"snow term larger", loads.SpecifiedLoads{Live: 0.5, Snow: 2}, 0, 0.25},
		{"equal terms drop live", loads.SpecifiedLoads{Live: 1, Snow: 2}, 0, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ULSFactorsFor(c, tt.loads)
			assert.Equal(t, 0.0, f.S2)
			assert.Equal(t, 0.0, f.L3)
			assert.Equal(t, tt.wantL5, f.L5)
			assert.Equal(t, tt.wantS5, f.S5)
			assert.Equal(t, 0.5, f.S4)
		})
	}
}

func TestULSFactorsFor_VehicleAccessTakesPrecedence(t *testing.T) {
	f := ULSFactorsFor(Context{ExteriorExposure: true, VehicleAccess: true}, loads.SpecifiedLoads{Live: 1, Snow: 2})
	assert.Equal(t, 0.2, f.S2)
	assert.Equal(t, 0.2, f.S4)
	assert.Equal(t, 0.2, f.S5)
	assert.Equal(t, 1.0, f.L3)
	assert.Equal(t, 0.5, f.L5)

	// vehicle access alone does nothing
	assert.Equal(t, nbc.ULSBaseFactors, ULSFactorsFor(Context{VehicleAccess: true}, loads.SpecifiedLoads{}))
}

func TestCombinations_Monotonic(t *testing.T) {
	contexts := []Context{
		{},
		{StorageOccupancy: true},
		{ExteriorExposure: true},
		{ExteriorExposure: true, VehicleAccess: true},
		{CounterDead: true, SoilDepth: 2},
		{LiquidContainment: true, SoilDepth: 0.5},
	}
	base := loads.SpecifiedLoads{Dead: 1, Live: 1.9, Snow: 2.1, Wind: 0.8, Earthquake: 0.4}
	bump := func(l loads.SpecifiedLoads, i int, d float64) loads.SpecifiedLoads {
		switch i {
		case 0:
			l.Dead += d
		case 1:
			l.Live += d
		case 2:
			l.Snow += d
		case 3:
			l.Wind += d
		case 4:
			l.Earthquake += d
		}
		return l
	}

	for _, c := range contexts {
		for i := 0; i < 5; i++ {
			prev := base
			for step := 0; step < 20; step++ {
				next := bump(prev, i, 0.37)
				assert.GreaterOrEqual(t, ULS(next, c), ULS(prev, c), "ULS component %d context %+v", i, c)
				assert.GreaterOrEqual(t, SLS(next, c), SLS(prev, c), "SLS component %d context %+v", i, c)
				prev = next
			}
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	l := loads.SpecifiedLoads{Dead: 1.2, Live: 2.4, Snow: 3.1, Wind: 0.5, Earthquake: 0.2}
	c := Context{ExteriorExposure: true, StorageOccupancy: true}

	first, err := Evaluate(l, c)
	require.NoError(t, err)
	second, err := Evaluate(l, c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, ULS(l, c), first.ULS)
}

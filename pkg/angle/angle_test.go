package angle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{720, 0},
		{-90, 270},
		{-360, 0},
		{-725, 355},
		{45.5, 45.5},
		{1e6, math.Mod(1e6, 360)},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeDegrees(tt.in), 1e-9, "input %v", tt.in)
	}
}

func TestNormalizeDegreesIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inputs := []float64{-1e-20, 1e-20, -359.9999999999, 359.9999999999, -1e9, 1e9}
	for i := 0; i < 2000; i++ {
		inputs = append(inputs, (rng.Float64()-0.5)*1e5)
	}
	for _, a := range inputs {
		once := NormalizeDegrees(a)
		assert.GreaterOrEqual(t, once, 0.0)
		assert.Less(t, once, 360.0)
		assert.Equal(t, once, NormalizeDegrees(once))
	}
}

func TestNormalizeRadians(t *testing.T) {
	assert.InDelta(t, 0, NormalizeRadians(FullCircle), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, NormalizeRadians(-math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi, NormalizeRadians(5*math.Pi), 1e-9)

	for _, a := range []float64{-100, -1e-18, 0.3, 1000} {
		n := NormalizeRadians(a)
		assert.GreaterOrEqual(t, n, 0.0)
		assert.Less(t, n, FullCircle)
	}
}

func TestNonFinitePassThrough(t *testing.T) {
	assert.True(t, math.IsNaN(NormalizeDegrees(math.NaN())))
	assert.True(t, math.IsInf(NormalizeRadians(math.Inf(1)), 1))
}

func TestConversions(t *testing.T) {
	assert.InDelta(t, math.Pi, DegreesToRadians(180), 1e-12)
	assert.InDelta(t, 90, RadiansToDegrees(math.Pi/2), 1e-12)
	assert.InDelta(t, 123.4, RadiansToDegrees(DegreesToRadians(123.4)), 1e-9)
}

func TestDifferenceDegrees(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"wrap forward", 359, 1, 2},
		{"wrap backward", 1, 359, -2},
		{"half turn is positive", 0, 180, 180},
		{"plain", 10, 50, 40},
		{"negative", 50, 10, -40},
		{"same", 200, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DifferenceDegrees(tt.from, tt.to), 1e-9)
		})
	}
}

func TestDifferenceRadiansRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		from := (rng.Float64() - 0.5) * 40
		to := (rng.Float64() - 0.5) * 40
		d := DifferenceRadians(from, to)
		assert.Greater(t, d, -math.Pi)
		assert.LessOrEqual(t, d, math.Pi)
	}
	assert.InDelta(t, math.Pi, DifferenceRadians(0, math.Pi), 1e-12)
}

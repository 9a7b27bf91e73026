// pkg/physics/vector_test.go
package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceSource replays a fixed list of values, wrapping around at the end.
type sequenceSource struct {
	values []float64
	next   int
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestVector3_Add(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector3
		v2       Vector3
		expected Vector3
	}{
		{
			name:     "positive_vectors",
			v1:       Vector3{X: 3, Y: 4, Z: 5},
			v2:       Vector3{X: 1, Y: 2, Z: 3},
			expected: Vector3{X: 4, Y: 6, Z: 8},
		},
		{
			name:     "negative_vectors",
			v1:       Vector3{X: -3, Y: -4, Z: -5},
			v2:       Vector3{X: -1, Y: -2, Z: -3},
			expected: Vector3{X: -4, Y: -6, Z: -8},
		},
		{
			name:     "z_uses_z_components",
			v1:       Vector3{X: 0, Y: 0, Z: 1},
			v2:       Vector3{X: 0, Y: 0, Z: 1},
			expected: Vector3{X: 0, Y: 0, Z: 2},
		},
		{
			name:     "z_independent_of_y",
			v1:       Vector3{X: 0, Y: 7, Z: 1},
			v2:       Vector3{X: 0, Y: 7, Z: -4},
			expected: Vector3{X: 0, Y: 14, Z: -3},
		},
		{
			name:     "zero_vector",
			v1:       Vector3{},
			v2:       Vector3{X: 5, Y: -3, Z: 2},
			expected: Vector3{X: 5, Y: -3, Z: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.v1.Add(tt.v2))
		})
	}
}

func TestVector3_Add_DoesNotMutateOperands(t *testing.T) {
	a := Vector3{X: 1, Y: 2, Z: 3}
	b := Vector3{X: 4, Y: 5, Z: 6}

	_ = a.Add(b)

	assert.Equal(t, Vector3{X: 1, Y: 2, Z: 3}, a)
	assert.Equal(t, Vector3{X: 4, Y: 5, Z: 6}, b)
}

func TestVector3_Scale(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector3
		factor   float64
		expected Vector3
	}{
		{"positive_scale", Vector3{X: 3, Y: 4, Z: 5}, 2, Vector3{X: 6, Y: 8, Z: 10}},
		{"negative_scale", Vector3{X: 3, Y: 4, Z: 5}, -2, Vector3{X: -6, Y: -8, Z: -10}},
		{"zero_scale", Vector3{X: 3, Y: 4, Z: 5}, 0, Vector3{}},
		{"fractional_scale", Vector3{X: 4, Y: 8, Z: 2}, 0.5, Vector3{X: 2, Y: 4, Z: 1}},
		{"identity_scale", Vector3{X: 3, Y: 4, Z: 5}, 1, Vector3{X: 3, Y: 4, Z: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Scale(tt.factor)
			assert.True(t, result.Equals(tt.expected), "Scale() = %v, expected %v", result, tt.expected)
		})
	}
}

func TestVector3_Magnitude(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector3
		expected float64
	}{
		{"unit_x", Vector3{X: 1}, 1},
		{"unit_z", Vector3{Z: 1}, 1},
		{"zero_vector", Vector3{}, 0},
		{"pythagorean_quadruple", Vector3{X: 2, Y: 3, Z: 6}, 7},
		{"negative_components", Vector3{X: -2, Y: -3, Z: -6}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.vector.Magnitude(), 1e-9)
		})
	}
}

func TestVector3_Magnitude_ExtremeComponents(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector3
		expected float64
	}{
		{"squares_would_overflow", Vector3{X: 1e200, Y: 1e200, Z: 1e200}, math.Sqrt(3) * 1e200},
		{"squares_would_underflow", Vector3{X: 1e-170}, 1e-170},
		{"subnormal", Vector3{Y: 5e-324}, 5e-324},
		{"max_float", Vector3{X: math.MaxFloat64}, math.MaxFloat64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, mgl64.FloatEqualThreshold(tt.expected, tt.vector.Magnitude(), 1e-12),
				"magnitude %v, expected %v", tt.vector.Magnitude(), tt.expected)
		})
	}

	assert.True(t, math.IsInf(Vector3{X: math.Inf(-1)}.Magnitude(), 1))
	assert.True(t, math.IsNaN(Vector3{Z: math.NaN()}.Magnitude()))
}

func TestVector3_Distance(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector3
		v2       Vector3
		expected float64
	}{
		{"same_point", Vector3{X: 3, Y: 4, Z: 5}, Vector3{X: 3, Y: 4, Z: 5}, 0},
		{"unit_distance_z", Vector3{}, Vector3{Z: 1}, 1},
		{"pythagorean_distance", Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: 3, Y: 4, Z: 7}, 7},
		{"negative_coordinates", Vector3{X: -1, Y: -1, Z: -1}, Vector3{X: 1, Y: 2, Z: 5}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d1 := tt.v1.Distance(tt.v2)
			d2 := tt.v2.Distance(tt.v1)
			assert.InDelta(t, tt.expected, d1, 1e-9)
			assert.Equal(t, d1, d2, "distance must be symmetric")
		})
	}
}

func TestVector3_Distance_SymmetricForRandomVectors(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		a := RandomInRange(rng, -1e6, 1e6)
		b := RandomInRange(rng, -1e6, 1e6)
		require.Equal(t, a.Distance(b), b.Distance(a))
		require.Zero(t, a.Distance(a))
	}
}

func TestVector3_Normalize(t *testing.T) {
	t.Run("regular_vector", func(t *testing.T) {
		result, err := Vector3{X: 2, Y: 3, Z: 6}.Normalize()
		require.NoError(t, err)
		assert.InDelta(t, 1, result.Magnitude(), 1e-9)
		assert.InDelta(t, 2.0/7.0, result.X, 1e-9)
		assert.InDelta(t, 3.0/7.0, result.Y, 1e-9)
		assert.InDelta(t, 6.0/7.0, result.Z, 1e-9)
	})

	t.Run("zero_vector_fails", func(t *testing.T) {
		result, err := Vector3{}.Normalize()
		require.ErrorIs(t, err, ErrDegenerateDirection)
		assert.False(t, math.IsNaN(result.X) || math.IsNaN(result.Y) || math.IsNaN(result.Z))
	})

	t.Run("non_finite_fails", func(t *testing.T) {
		for _, v := range []Vector3{{X: math.Inf(1)}, {Y: math.NaN()}, {X: 1, Z: math.Inf(-1)}} {
			_, err := v.Normalize()
			require.ErrorIs(t, err, ErrInvalidArgument, "normalize %s", v)
		}
	})
}

func TestVelocityFromSpeedAndDirection(t *testing.T) {
	tests := []struct {
		name      string
		speed     float64
		direction Vector3
	}{
		{"axis_aligned", 10, Vector3{X: 1}},
		{"diagonal", 3, Vector3{X: 1, Y: 1, Z: 1}},
		{"large_direction", 0.5, Vector3{X: 7.4e10, Y: 1.2e9, Z: 3e10}},
		{"zero_speed", 0, Vector3{X: 4, Y: 5, Z: 6}},
		{"huge_direction", 5, Vector3{X: 1e200, Y: 1e200, Z: 1e200}},
		{"tiny_direction", 5, Vector3{X: 1e-170}},
		{"subnormal_direction", 5, Vector3{Z: -5e-324}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			velocity, err := VelocityFromSpeedAndDirection(tt.speed, tt.direction)
			require.NoError(t, err)
			assert.True(t, mgl64.FloatEqualThreshold(tt.speed, velocity.Magnitude(), 1e-9),
				"magnitude %v, expected %v", velocity.Magnitude(), tt.speed)
		})
	}

	t.Run("zero_direction_fails", func(t *testing.T) {
		_, err := VelocityFromSpeedAndDirection(5, Vector3{})
		require.ErrorIs(t, err, ErrDegenerateDirection)
	})

	t.Run("non_finite_input_fails", func(t *testing.T) {
		tests := []struct {
			name      string
			speed     float64
			direction Vector3
		}{
			{"infinite_direction", 5, Vector3{X: math.Inf(1)}},
			{"nan_direction", 5, Vector3{X: math.NaN()}},
			{"infinite_speed", math.Inf(1), Vector3{X: 1}},
			{"nan_speed", math.NaN(), Vector3{X: 1}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				velocity, err := VelocityFromSpeedAndDirection(tt.speed, tt.direction)
				require.ErrorIs(t, err, ErrInvalidArgument)
				require.NotErrorIs(t, err, ErrDegenerateDirection)
				assert.True(t, velocity.IsZero())
			})
		}
	})
}

func TestRandomInRange(t *testing.T) {
	t.Run("bounds", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		for i := 0; i < 1000; i++ {
			v := RandomInRange(rng, -5, 5)
			for _, c := range []float64{v.X, v.Y, v.Z} {
				require.GreaterOrEqual(t, c, -5.0)
				require.LessOrEqual(t, c, 5.0)
			}
		}
	})

	t.Run("components_drawn_in_order", func(t *testing.T) {
		src := &sequenceSource{values: []float64{0, 0.5, 0.25}}
		v := RandomInRange(src, 0, 8)
		assert.Equal(t, Vector3{X: 0, Y: 4, Z: 2}, v)
	})

	t.Run("degenerate_range", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 4))
		assert.Equal(t, Vector3{X: 2, Y: 2, Z: 2}, RandomInRange(rng, 2, 2))
	})
}

func TestVector3_String(t *testing.T) {
	assert.Equal(t, "(1, -2.5, 3e+11)", Vector3{X: 1, Y: -2.5, Z: 3e11}.String())
}

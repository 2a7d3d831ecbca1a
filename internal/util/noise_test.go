package util

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractalNoise_Deterministic(t *testing.T) {
	n1, err := NewFractalNoise(12345, DefaultNoiseParams())
	require.NoError(t, err)
	n2, err := NewFractalNoise(12345, DefaultNoiseParams())
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		x := float64(i)*1.7 - 100
		y := float64(i)*0.3 + 40
		assert.Equal(t, n1.Sample2D(x, y), n2.Sample2D(x, y), "Шум должен быть детерминированным в (%f, %f)", x, y)
		assert.Equal(t, n1.Sample2D(x, y), n1.Sample2D(x, y), "Повторный вызов должен давать то же значение")
	}
}

func TestFractalNoise_Range(t *testing.T) {
	n, err := NewFractalNoise(42, DefaultNoiseParams())
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		v := n.Sample2D(float64(i)*0.37-500, float64(i)*0.53-500)
		assert.False(t, math.IsNaN(v))
		if v < -1 || v > 1 {
			t.Fatalf("Sample2D = %f, вне [-1,1]", v)
		}
	}
}

func TestFractalNoise_DifferentSeeds(t *testing.T) {
	n1, err := NewFractalNoise(1, DefaultNoiseParams())
	require.NoError(t, err)
	n2, err := NewFractalNoise(2, DefaultNoiseParams())
	require.NoError(t, err)

	different := false
	for i := 0; i < 100 && !different; i++ {
		x := float64(i) * 3.1
		y := float64(i) * 1.3
		different = n1.Sample2D(x, y) != n2.Sample2D(x, y)
	}
	assert.True(t, different, "Разные сиды должны давать разный шум")
}

func TestNoiseParams_Validate(t *testing.T) {
	valid := DefaultNoiseParams()
	assert.NoError(t, valid.Validate())

	cases := map[string]func(p *NoiseParams){
		"zero octaves":         func(p *NoiseParams) { p.Octaves = 0 },
		"too many octaves":     func(p *NoiseParams) { p.Octaves = MaxOctaves + 1 },
		"zero frequency":       func(p *NoiseParams) { p.Frequency = 0 },
		"negative frequency":   func(p *NoiseParams) { p.Frequency = -0.1 },
		"nan lacunarity":       func(p *NoiseParams) { p.Lacunarity = math.NaN() },
		"zero persistence":     func(p *NoiseParams) { p.Persistence = 0 },
		"infinite persistence": func(p *NoiseParams) { p.Persistence = math.Inf(1) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := valid
			mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidNoiseParams))

			_, err = NewFractalNoise(1, p)
			assert.Error(t, err, "Конструктор должен отклонять недопустимые параметры")
		})
	}
}

func TestFractalNoise_Preview(t *testing.T) {
	n, err := NewFractalNoise(7, DefaultNoiseParams())
	require.NoError(t, err)

	img := n.Preview(32, 16)
	require.Len(t, img, 32*16)
	for _, v := range img {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}

	assert.Nil(t, n.Preview(0, 10))
}

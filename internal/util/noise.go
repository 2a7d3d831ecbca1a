package util

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// MaxOctaves верхняя граница числа октав
const MaxOctaves = 16

// perlinRange приблизительная амплитуда одной октавы классического шума Перлина в 2D
const perlinRange = math.Sqrt2

// ErrInvalidNoiseParams возвращается при недопустимых параметрах шума
var ErrInvalidNoiseParams = errors.New("недопустимые параметры шума")

// NoiseParams параметры фрактального шума (fBm)
type NoiseParams struct {
	Octaves     int     `yaml:"octaves"`     // Количество октав, >= 1
	Frequency   float64 `yaml:"frequency"`   // Частота первой октавы, > 0
	Lacunarity  float64 `yaml:"lacunarity"`  // Множитель частоты между октавами
	Persistence float64 `yaml:"persistence"` // Множитель амплитуды между октавами
}

// DefaultNoiseParams возвращает параметры по умолчанию
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Octaves:     6,
		Frequency:   0.05,
		Lacunarity:  2.0,
		Persistence: 0.5,
	}
}

// Validate проверяет параметры
func (p NoiseParams) Validate() error {
	switch {
	case p.Octaves < 1 || p.Octaves > MaxOctaves:
		return fmt.Errorf("%w: octaves=%d, ожидается 1..%d", ErrInvalidNoiseParams, p.Octaves, MaxOctaves)
	case !isFinite(p.Frequency) || p.Frequency <= 0:
		return fmt.Errorf("%w: frequency=%v, ожидается > 0", ErrInvalidNoiseParams, p.Frequency)
	case !isFinite(p.Lacunarity) || p.Lacunarity <= 0:
		return fmt.Errorf("%w: lacunarity=%v, ожидается > 0", ErrInvalidNoiseParams, p.Lacunarity)
	case !isFinite(p.Persistence) || p.Persistence <= 0:
		return fmt.Errorf("%w: persistence=%v, ожидается > 0", ErrInvalidNoiseParams, p.Persistence)
	}
	return nil
}

// FractalNoise - детерминированный генератор fBm поверх шума Перлина.
// Одинаковые seed и параметры дают одинаковые значения в любой точке.
type FractalNoise struct {
	seed      int64
	params    NoiseParams
	amplitude float64 // Сумма амплитуд всех октав, для нормализации
	perlin    *perlin.Perlin
}

// NewFractalNoise создаёт генератор с указанным сидом
func NewFractalNoise(seed int64, params NoiseParams) (*FractalNoise, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// go-perlin делит вклад каждой следующей октавы на alpha и умножает координаты на beta
	alpha := 1.0 / params.Persistence
	beta := params.Lacunarity

	amplitude := 0.0
	weight := 1.0
	for i := 0; i < params.Octaves; i++ {
		amplitude += weight
		weight *= params.Persistence
	}

	return &FractalNoise{
		seed:      seed,
		params:    params,
		amplitude: amplitude,
		perlin:    perlin.NewPerlin(alpha, beta, int32(params.Octaves), seed),
	}, nil
}

// Seed возвращает сид генератора
func (fn *FractalNoise) Seed() int64 {
	return fn.seed
}

// Params возвращает текущие параметры
func (fn *FractalNoise) Params() NoiseParams {
	return fn.params
}

// Sample2D возвращает значение шума в точке (x, y) в диапазоне [-1, 1]
func (fn *FractalNoise) Sample2D(x, y float64) float64 {
	f := fn.params.Frequency
	v := fn.perlin.Noise2D(x*f, y*f) / fn.amplitude * perlinRange

	return math.Max(-1, math.Min(1, v))
}

// Preview строит карту шума width x height в диапазоне [0, 1] (построчно).
// Используется отладочным интерфейсом для предпросмотра рельефа.
func (fn *FractalNoise) Preview(width, height int) []float32 {
	if width <= 0 || height <= 0 {
		return nil
	}

	out := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := fn.Sample2D(float64(x), float64(y))
			out[y*width+x] = float32(v/2 + 0.5)
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

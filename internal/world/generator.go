package world

import (
	"fmt"
	"math"

	"github.com/annel0/blockverse/internal/util"
)

// Константы генерации рельефа
const (
	DefaultBaseHeight = 8   // Средняя высота поверхности в блоках
	HeightAmplitude   = 4.0 // Размах высоты относительно базовой
)

// Generator заполняет чанки рельефом
type Generator interface {
	HeightSampler
	Name() string
}

// TerrainGenerator генерирует рельеф по фрактальному шуму Перлина.
// Параметры шума можно менять на лету через SetParams.
type TerrainGenerator struct {
	Seed       int64 // Сид для генерации шума
	BaseHeight int   // Базовая высота поверхности

	noise *util.FractalNoise
}

// NewTerrainGenerator создаёт новый генератор рельефа
func NewTerrainGenerator(seed int64, baseHeight int, params util.NoiseParams) (*TerrainGenerator, error) {
	noise, err := util.NewFractalNoise(seed, params)
	if err != nil {
		return nil, fmt.Errorf("генератор рельефа: %w", err)
	}

	return &TerrainGenerator{
		Seed:       seed,
		BaseHeight: baseHeight,
		noise:      noise,
	}, nil
}

// Name возвращает имя генератора
func (tg *TerrainGenerator) Name() string {
	return "perlin"
}

// SampleHeight возвращает высоту поверхности для глобальной колонки (gx, gz)
func (tg *TerrainGenerator) SampleHeight(gx, gz int) int {
	n := tg.noise.Sample2D(float64(gx), float64(gz))
	return int(math.Floor(n*HeightAmplitude + float64(tg.BaseHeight)))
}

// Params возвращает текущие параметры шума
func (tg *TerrainGenerator) Params() util.NoiseParams {
	return tg.noise.Params()
}

// Noise возвращает генератор шума (для предпросмотра)
func (tg *TerrainGenerator) Noise() *util.FractalNoise {
	return tg.noise
}

// SetParams заменяет параметры шума.
// Возвращает true, если параметры изменились и мир нужно перегенерировать.
func (tg *TerrainGenerator) SetParams(params util.NoiseParams) (bool, error) {
	if params == tg.noise.Params() {
		return false, nil
	}

	noise, err := util.NewFractalNoise(tg.Seed, params)
	if err != nil {
		return false, err
	}

	tg.noise = noise
	return true, nil
}

// CheckerGenerator - детерминированный тестовый рельеф "шахматка": высота (x+z)%2 + 7
type CheckerGenerator struct{}

// Name возвращает имя генератора
func (CheckerGenerator) Name() string {
	return "checker"
}

// SampleHeight возвращает 7 или 8 в шахматном порядке
func (CheckerGenerator) SampleHeight(gx, gz int) int {
	return ((gx + gz) & 1) + 7
}

package world

import (
	"testing"

	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *TerrainGenerator {
	t.Helper()
	gen, err := NewTerrainGenerator(12345, DefaultBaseHeight, util.DefaultNoiseParams())
	require.NoError(t, err)
	return gen
}

func TestTerrainGenerator_Deterministic(t *testing.T) {
	g1 := newTestGenerator(t)
	g2 := newTestGenerator(t)

	for gx := -40; gx < 40; gx += 3 {
		for gz := -40; gz < 40; gz += 5 {
			h := g1.SampleHeight(gx, gz)
			assert.Equal(t, h, g1.SampleHeight(gx, gz), "Повторный вызов (%d,%d)", gx, gz)
			assert.Equal(t, h, g2.SampleHeight(gx, gz), "Одинаковый сид (%d,%d)", gx, gz)
			assert.GreaterOrEqual(t, h, DefaultBaseHeight-int(HeightAmplitude))
			assert.LessOrEqual(t, h, DefaultBaseHeight+int(HeightAmplitude))
		}
	}
}

func TestTerrainGenerator_SeamlessChunks(t *testing.T) {
	gen := newTestGenerator(t)

	// Соседние чанки видят одну и ту же карту высот в глобальных координатах
	a := NewChunk(vec.Vec3{X: 0})
	b := NewChunk(vec.Vec3{X: 1})
	a.FillTerrain(gen)
	b.FillTerrain(gen)

	for z := 0; z < ChunkSize; z++ {
		ha := gen.SampleHeight(15, z)
		hb := gen.SampleHeight(16, z)
		require.True(t, ha >= 0 && ha < ChunkSize && hb >= 0 && hb < ChunkSize)

		assert.Equal(t, block.DirtBlockID, a.GetOrAir(15, ha, z), "Поверхность на краю чанка A")
		assert.Equal(t, block.DirtBlockID, b.GetOrAir(0, hb, z), "Поверхность на краю чанка B")
		assert.Equal(t, block.AirBlockID, b.GetOrAir(0, hb+1, z))
	}
}

func TestTerrainGenerator_RegenerateIdempotent(t *testing.T) {
	gen := newTestGenerator(t)

	chunk := NewChunk(vec.Vec3{X: -1, Y: 0, Z: 2})
	chunk.FillTerrain(gen)
	before := chunk.Blocks

	changed, err := gen.SetParams(gen.Params())
	require.NoError(t, err)
	assert.False(t, changed, "Те же параметры - перегенерация не нужна")

	chunk.FillTerrain(gen)
	assert.Equal(t, before, chunk.Blocks, "Повторная генерация без изменений даёт тот же чанк")
}

func TestTerrainGenerator_SetParams(t *testing.T) {
	gen := newTestGenerator(t)

	p := gen.Params()
	p.Octaves = 3
	changed, err := gen.SetParams(p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 3, gen.Params().Octaves)

	bad := p
	bad.Frequency = 0
	changed, err = gen.SetParams(bad)
	assert.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, p, gen.Params(), "Недопустимые параметры не применяются")
}

func TestCheckerGenerator(t *testing.T) {
	g := CheckerGenerator{}
	assert.Equal(t, 7, g.SampleHeight(0, 0))
	assert.Equal(t, 8, g.SampleHeight(1, 0))
	assert.Equal(t, 8, g.SampleHeight(-1, 0), "Отрицательные координаты без отрицательного остатка")
	assert.Equal(t, "checker", g.Name())
}

package render

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_SpawnRetire(t *testing.T) {
	a := NewArena()
	mat := DefaultMaterial()

	h1 := a.Spawn(Instance{Chunk: vec.Vec3{X: 1}, Material: mat})
	h2 := a.Spawn(Instance{Chunk: vec.Vec3{X: 2}, Material: mat})

	assert.NotEqual(t, h1, h2, "Хэндлы должны быть уникальными")
	assert.False(t, h1.IsNil())
	assert.Equal(t, 2, a.Live())

	inst, ok := a.Get(h1)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 1}, inst.Chunk)
	assert.Same(t, mat, inst.Material, "Материал общий для всех чанков")

	assert.True(t, a.Retire(h1))
	assert.False(t, a.Retire(h1), "Повторное удаление ничего не делает")
	assert.False(t, a.Retire(NilHandle))

	_, ok = a.Get(h1)
	assert.False(t, ok)

	stats := a.Stats()
	assert.Equal(t, uint64(2), stats.Spawned)
	assert.Equal(t, uint64(1), stats.Retired)
	assert.Equal(t, 1, stats.Live)
}

func TestChunkTransform(t *testing.T) {
	m := ChunkTransform(vec.Vec3{X: 1, Y: -2, Z: 3})

	p := m.Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
	assert.Equal(t, mgl32.Vec3{16.5, -31.5, 48.5}, p)
}

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()
	assert.Equal(t, "terrain", m.Name)
	assert.Equal(t, "Texture.png", m.Texture)
}

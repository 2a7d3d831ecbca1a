package vec

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestVec3_ChunkMath(t *testing.T) {
	global := Vec3{X: -1, Y: 17, Z: 33}

	assert.Equal(t, Vec3{X: -1, Y: 1, Z: 2}, global.ToChunkCoords(), "Координаты чанка должны округляться вниз")
	assert.Equal(t, Vec3{X: 15, Y: 1, Z: 1}, global.LocalInChunk(), "Локальные координаты должны быть в [0,16)")

	chunk := global.ToChunkCoords()
	assert.Equal(t, global, chunk.ChunkOrigin().Add(global.LocalInChunk()), "Чанк*16 + локальная позиция = глобальная")
}

func TestVec3_Less(t *testing.T) {
	a := Vec3{X: 0, Y: 5, Z: 5}
	b := Vec3{X: 1, Y: 0, Z: 0}
	c := Vec3{X: 1, Y: 0, Z: 1}

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(a))
	assert.False(t, a.Less(a), "Вектор не меньше самого себя")
}

func TestVec3_InChunk(t *testing.T) {
	assert.True(t, Vec3{X: 0, Y: 15, Z: 7}.InChunk())
	assert.False(t, Vec3{X: 16, Y: 0, Z: 0}.InChunk())
	assert.False(t, Vec3{X: 0, Y: -1, Z: 0}.InChunk())
	assert.False(t, Vec3{X: 0, Y: 0, Z: 16}.InChunk())
}

func TestVec3_AxisHelpers(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}

	assert.Equal(t, 2, v.Axis(1))
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 9}, v.WithAxis(2, 9))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v.ToFloat())
	assert.Equal(t, "(1,2,3)", v.String())
}

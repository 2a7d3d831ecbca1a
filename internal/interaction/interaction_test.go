package interaction

import (
	"math"
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestFlyCam_LookAt(t *testing.T) {
	cam := NewFlyCam(mgl32.Vec3{120, 40, 120}, mgl32.Vec3{})

	expected := mgl32.Vec3{-120, -40, -120}.Normalize()
	assert.True(t, cam.Forward().ApproxEqualThreshold(expected, eps), "Камера смотрит на начало координат: %v", cam.Forward())
	assert.InDelta(t, math.Pi/4, cam.Yaw, eps)

	assert.InDelta(t, 0, cam.Right().Dot(cam.Forward()), eps, "Оси ортогональны")
	assert.InDelta(t, 0, cam.Up().Dot(cam.Forward()), eps)
	assert.Positive(t, cam.Up().Y(), "Верх камеры направлен вверх")
}

func TestFlyCam_Move(t *testing.T) {
	cam := NewFlyCam(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, 10, -1})

	cam.Move(MoveKeys{Forward: true})
	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 10, -1}, eps))

	cam.Move(MoveKeys{Right: true, Sprint: true})
	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{3, 10, -1}, eps), "Ускорение x3")

	cam.Move(MoveKeys{Up: true, Down: true, Left: true, Right: true})
	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{3, 10, -1}, eps), "Противоположные клавиши гасят друг друга")

	cam.Move(MoveKeys{Up: true})
	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{3, 11, -1}, eps))
}

func TestFlyCam_RotateClamp(t *testing.T) {
	cam := NewFlyCam(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})

	cam.Rotate(0, -10000)
	assert.InDelta(t, maxPitch, cam.Pitch, eps, "Наклон ограничен")

	cam.Rotate(100, 0)
	assert.InDelta(t, -1, cam.Yaw, eps, "Мышь вправо - поворот вправо (yaw уменьшается)")
}

func newWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(world.CheckerGenerator{}, nil, world.Options{MeshWorkers: 1})
	t.Cleanup(w.Close)
	w.GenerateChunk(vec.Vec3{})
	w.RebuildDirty(0)
	return w
}

func TestController_BreakBlock(t *testing.T) {
	w := newWorld(t)

	// Камера над колонкой (3,4) смотрит строго вниз (в пределах ограничения наклона)
	cam := NewFlyCam(mgl32.Vec3{3.3, 30, 4.6}, mgl32.Vec3{3.3, 0, 4.6})
	ctl := NewController(cam)

	out := ctl.Apply(w, Input{})
	require.True(t, out.HasHit)
	require.True(t, out.HasTarget)
	assert.False(t, out.Removed, "Без нажатия блок не ломается")
	assert.Equal(t, vec.Vec3{X: 3, Y: 8, Z: 4}, out.Target.Local)

	out = ctl.Apply(w, Input{BreakPressed: true})
	require.True(t, out.Removed)

	id, _ := w.Block(vec.Vec3{X: 3, Y: 8, Z: 4})
	assert.Equal(t, block.AirBlockID, id)
	assert.True(t, w.IsDirty(vec.Vec3{}))

	// До перестройки чанк невидим для лучей
	out = ctl.Apply(w, Input{BreakPressed: true})
	assert.False(t, out.HasHit)
	assert.False(t, out.Removed)
}

func TestController_RotateOnlyWhenHeld(t *testing.T) {
	w := newWorld(t)
	cam := NewFlyCam(mgl32.Vec3{8, 30, 8}, mgl32.Vec3{8, 0, 8.5})
	ctl := NewController(cam)

	yaw := cam.Yaw
	ctl.Apply(w, Input{MouseDX: 50})
	assert.Equal(t, yaw, cam.Yaw, "Без кнопки поворота камера не вращается")

	ctl.Apply(w, Input{MouseDX: 50, RotateHeld: true})
	assert.NotEqual(t, yaw, cam.Yaw)
}

func TestController_SkyMiss(t *testing.T) {
	w := newWorld(t)
	cam := NewFlyCam(mgl32.Vec3{8, 30, 8}, mgl32.Vec3{8, 60, 8.5})

	out := NewController(cam).Apply(w, Input{BreakPressed: true})
	assert.False(t, out.HasHit)
	assert.False(t, out.Removed)
}

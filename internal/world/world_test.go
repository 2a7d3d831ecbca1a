package world

import (
	"errors"
	"math"
	"testing"

	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/render"
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCheckerWorld создаёт мир с шахматным рельефом и перестроенными чанками
func newCheckerWorld(t *testing.T, ids ...vec.Vec3) (*World, *render.Arena) {
	t.Helper()

	arena := render.NewArena()
	w := New(CheckerGenerator{}, arena, Options{MeshWorkers: 2})
	t.Cleanup(w.Close)

	for _, id := range ids {
		w.GenerateChunk(id)
	}
	stats := w.RebuildDirty(0)
	require.Equal(t, len(ids), stats.Rebuilt)
	require.Equal(t, 0, w.DirtyCount())
	return w, arena
}

func downRay(x, y, z float32) physics.Ray {
	return physics.NewRay(mgl32.Vec3{x, y, z}, mgl32.Vec3{0, -1, 0})
}

func TestWorld_Creation(t *testing.T) {
	w := New(nil, nil, Options{})
	defer w.Close()

	opts := w.Options()
	assert.Equal(t, float32(DefaultMaxRayDistance), opts.MaxRayDistance)
	assert.Equal(t, float32(DefaultTargetEpsilon), opts.TargetEpsilon)
	assert.NotNil(t, opts.Material)
	assert.Positive(t, opts.MeshWorkers)
	assert.NotNil(t, w.Sink(), "Без рендерера используется арена")
	assert.Equal(t, 0, w.ChunkCount())
}

func TestWorld_InsertMarksDirty(t *testing.T) {
	w := New(CheckerGenerator{}, nil, Options{})
	defer w.Close()

	w.GenerateChunk(vec.Vec3{X: 1})
	w.GenerateChunk(vec.Vec3{X: -1})

	assert.Equal(t, []vec.Vec3{{X: -1}, {X: 1}}, w.DirtyIDs(), "Вставка помечает чанк грязным")
	assert.Equal(t, []vec.Vec3{{X: -1}, {X: 1}}, w.ChunkIDs())

	_, ok := w.Collider(vec.Vec3{X: 1})
	assert.False(t, ok, "До перестройки коллизии нет")
}

func TestWorld_LoadArea(t *testing.T) {
	w := New(CheckerGenerator{}, nil, Options{})
	defer w.Close()

	n := w.LoadArea(1, 2)
	assert.Equal(t, 3*3*2, n)
	assert.Equal(t, 18, w.ChunkCount())
	assert.Equal(t, 18, w.DirtyCount())

	// Верхний слой над шахматкой пустой
	c, ok := w.Chunk(vec.Vec3{X: 1, Y: 1, Z: -1})
	require.True(t, ok)
	assert.Equal(t, 0, c.SolidCount())
}

func TestWorld_BlockAccess(t *testing.T) {
	w, _ := newCheckerWorld(t, vec.Vec3{}, vec.Vec3{X: -1})

	id, ok := w.Block(vec.Vec3{X: -1, Y: 8, Z: 0})
	require.True(t, ok)
	assert.Equal(t, block.DirtBlockID, id, "Глобальная (-1,8,0) лежит в чанке (-1,0,0), высота 8")

	_, ok = w.Block(vec.Vec3{X: 40})
	assert.False(t, ok, "Чанк не загружен")

	err := w.SetBlock(vec.Vec3{X: 40}, block.StoneBlockID)
	assert.True(t, errors.Is(err, ErrChunkNotLoaded))

	err = w.SetLocalBlock(vec.Vec3{}, vec.Vec3{X: 16}, block.StoneBlockID)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	assert.NoError(t, w.SetBlock(vec.Vec3{X: 1, Y: 1, Z: 1}, block.StoneBlockID), "Тот же блок - без изменений")
	assert.False(t, w.IsDirty(vec.Vec3{}), "Запись того же блока не пачкает чанк")
}

func TestWorld_RayTargetRoundTrip(t *testing.T) {
	w, _ := newCheckerWorld(t, vec.Vec3{})

	// Колонка (3,4): высота (3+4)%2+7 = 8, над ней воздух
	hit, ok := w.CastRay(downRay(3.3, 30, 4.6))
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{}, hit.Chunk)
	assert.InDelta(t, 21, hit.Distance, 1e-4)
	assert.InDelta(t, 9, hit.Point.Y(), 1e-4)

	target, ok := w.TargetFromHit(hit)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 3, Y: 8, Z: 4}, target.Local)
	assert.Equal(t, block.DirtBlockID, target.Block)
	assert.Equal(t, vec.Vec3{X: 3, Y: 8, Z: 4}, target.Global())
}

func TestWorld_RayTargetOffsetChunk(t *testing.T) {
	w, _ := newCheckerWorld(t, vec.Vec3{}, vec.Vec3{X: 1, Z: -1})

	// Глобальная колонка (17,-14): (17-14)&1 = 1, высота 8
	_, target, ok := w.PickTarget(downRay(17.2, 40, -13.7))
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 1, Z: -1}, target.Chunk)
	assert.Equal(t, vec.Vec3{X: 1, Y: 8, Z: 2}, target.Local)
	assert.Equal(t, vec.Vec3{X: 17, Y: 8, Z: -14}, target.Global())
}

func TestWorld_TargetSideFace(t *testing.T) {
	w, _ := newCheckerWorld(t, vec.Vec3{})

	// Горизонтальный луч вдоль -X в колонку x=15 на высоте y=3.4: грань на x=16
	hit, ok := w.CastRay(physics.NewRay(mgl32.Vec3{30, 3.4, 5.3}, mgl32.Vec3{-1, 0, 0}))
	require.True(t, ok)
	assert.InDelta(t, 16, hit.Point.X(), 1e-4)

	target, ok := w.TargetFromHit(hit)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 15, Y: 3, Z: 5}, target.Local)
	assert.Equal(t, block.StoneBlockID, target.Block)
}

func TestWorld_TargetAmbiguous(t *testing.T) {
	w, _ := newCheckerWorld(t, vec.Vec3{})

	// Точка не на границе блока
	_, ok := w.TargetFromHit(WorldHit{Chunk: vec.Vec3{}, Point: mgl32.Vec3{3.5, 4.5, 4.5}})
	assert.False(t, ok)

	// Оба кандидата твёрдые (внутри камня)
	_, ok = w.TargetFromHit(WorldHit{Chunk: vec.Vec3{}, Point: mgl32.Vec3{3.5, 3, 4.5}})
	assert.False(t, ok)

	// Оба воздух
	_, ok = w.TargetFromHit(WorldHit{Chunk: vec.Vec3{}, Point: mgl32.Vec3{3.5, 14, 4.5}})
	assert.False(t, ok)

	// Чанк не загружен
	_, ok = w.TargetFromHit(WorldHit{Chunk: vec.Vec3{X: 9}, Point: mgl32.Vec3{150, 9, 4.5}})
	assert.False(t, ok)
}

func TestWorld_RayMiss(t *testing.T) {
	w, _ := newCheckerWorld(t, vec.Vec3{})

	_, ok := w.CastRay(physics.NewRay(mgl32.Vec3{3.3, 30, 4.6}, mgl32.Vec3{0, 1, 0}))
	assert.False(t, ok, "Луч в небо ни во что не попадает")

	w.opts.MaxRayDistance = 10
	_, ok = w.CastRay(downRay(3.3, 30, 4.6))
	assert.False(t, ok, "Попадание дальше MaxRayDistance не учитывается")
}

func TestWorld_NearestChunkWins(t *testing.T) {
	// Два чанка друг над другом: луч сверху сначала попадает в верхний
	w := New(CheckerGenerator{}, nil, Options{})
	defer w.Close()

	low := NewChunk(vec.Vec3{})
	low.FillTerrain(CheckerGenerator{})
	high := NewChunk(vec.Vec3{Y: 1})
	high.Set(3, 0, 4, block.StoneBlockID)
	w.InsertChunk(low)
	w.InsertChunk(high)
	w.RebuildDirty(0)

	hit, ok := w.CastRay(downRay(3.3, 60, 4.6))
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{Y: 1}, hit.Chunk)

	target, ok := w.TargetFromHit(hit)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 3, Y: 0, Z: 4}, target.Local)
}

func TestCloserHit_TotalOrder(t *testing.T) {
	nan := float32(math.NaN())
	a := WorldHit{Chunk: vec.Vec3{X: 0}, Distance: 5}
	b := WorldHit{Chunk: vec.Vec3{X: 1}, Distance: 5}
	c := WorldHit{Chunk: vec.Vec3{X: 2}, Distance: 3}
	n1 := WorldHit{Chunk: vec.Vec3{X: -1}, Distance: nan}
	n2 := WorldHit{Chunk: vec.Vec3{X: 3}, Distance: nan}

	assert.True(t, closerHit(c, a), "Меньшее расстояние")
	assert.True(t, closerHit(a, b), "Равные расстояния: меньшие координаты чанка")
	assert.False(t, closerHit(b, a))
	assert.True(t, closerHit(b, n1), "NaN больше любого расстояния")
	assert.False(t, closerHit(n1, b))
	assert.True(t, closerHit(n1, n2), "Два NaN: по координатам")
	assert.False(t, closerHit(a, a))
}

func TestWorld_InvalidationCompleteness(t *testing.T) {
	edited := vec.Vec3{}
	others := []vec.Vec3{{X: 1}, {Z: 1}, {X: -1, Z: -1}}
	w, arena := newCheckerWorld(t, append([]vec.Vec3{edited}, others...)...)

	colliders := make(map[vec.Vec3]*physics.TriMesh)
	handles := make(map[vec.Vec3]render.Handle)
	instances := make(map[vec.Vec3]render.Instance)
	for _, id := range w.ChunkIDs() {
		colliders[id], _ = w.Collider(id)
		handles[id], _ = w.RenderHandle(id)
		instances[id], _ = arena.Get(handles[id])
	}

	_, target, ok := w.PickTarget(downRay(3.3, 30, 4.6))
	require.True(t, ok)
	require.NoError(t, w.BreakTarget(target))

	assert.Equal(t, []vec.Vec3{edited}, w.DirtyIDs(), "Грязным становится только изменённый чанк")

	// Пока чанк грязный, лучи его не видят
	_, ok = w.CastRay(downRay(3.3, 30, 4.6))
	assert.False(t, ok, "Устаревшая коллизия не используется")

	stats := w.RebuildDirty(0)
	assert.Equal(t, 1, stats.Rebuilt)
	assert.Equal(t, 0, stats.Remaining)
	assert.False(t, w.IsDirty(edited))

	newCollider, _ := w.Collider(edited)
	newHandle, _ := w.RenderHandle(edited)
	assert.NotSame(t, colliders[edited], newCollider, "Коллизия заменена")
	assert.NotEqual(t, handles[edited], newHandle, "Объект рендера заменён")
	_, alive := arena.Get(handles[edited])
	assert.False(t, alive, "Старый объект рендера удалён")
	assert.Equal(t, len(w.ChunkIDs()), arena.Live(), "Ровно один объект рендера на чанк")

	for _, id := range others {
		c, _ := w.Collider(id)
		h, _ := w.RenderHandle(id)
		inst, _ := arena.Get(h)
		assert.Same(t, colliders[id], c, "Коллизия чанка %s не тронута", id)
		assert.Equal(t, handles[id], h, "Объект рендера чанка %s не тронут", id)
		assert.Equal(t, instances[id], inst)
	}

	// Теперь луч проходит сквозь удалённый блок до камня под ним
	hit, target, ok := w.PickTarget(downRay(3.3, 30, 4.6))
	require.True(t, ok)
	assert.InDelta(t, 8, hit.Point.Y(), 1e-4)
	assert.Equal(t, vec.Vec3{X: 3, Y: 7, Z: 4}, target.Local)
	assert.Equal(t, block.StoneBlockID, target.Block)
}

func TestWorld_RebuildBudget(t *testing.T) {
	w := New(CheckerGenerator{}, nil, Options{})
	defer w.Close()
	w.LoadArea(1, 1)

	stats := w.RebuildDirty(4)
	assert.Equal(t, 4, stats.Rebuilt)
	assert.Equal(t, 5, stats.Remaining)

	// Перестраиваются в лексикографическом порядке
	assert.False(t, w.IsDirty(vec.Vec3{X: -1, Z: -1}))
	assert.True(t, w.IsDirty(vec.Vec3{X: 1, Z: 1}))

	stats = w.RebuildDirty(0)
	assert.Equal(t, 5, stats.Rebuilt)
	assert.Equal(t, 0, w.DirtyCount())
	assert.Equal(t, RebuildStats{}, w.RebuildDirty(0), "Нечего перестраивать")
}

func TestWorld_RemoveChunk(t *testing.T) {
	w, arena := newCheckerWorld(t, vec.Vec3{}, vec.Vec3{X: 1})

	h, ok := w.RenderHandle(vec.Vec3{X: 1})
	require.True(t, ok)

	assert.True(t, w.RemoveChunk(vec.Vec3{X: 1}))
	assert.False(t, w.RemoveChunk(vec.Vec3{X: 1}), "Повторное удаление")

	_, ok = w.Collider(vec.Vec3{X: 1})
	assert.False(t, ok, "Коллизия удалена вместе с чанком")
	_, ok = w.RenderHandle(vec.Vec3{X: 1})
	assert.False(t, ok)
	_, ok = arena.Get(h)
	assert.False(t, ok, "Объект рендера удалён")
	assert.Equal(t, 1, arena.Live())

	// Удаление грязного чанка убирает и пометку
	w.GenerateChunk(vec.Vec3{X: 2})
	assert.True(t, w.RemoveChunk(vec.Vec3{X: 2}))
	assert.False(t, w.IsDirty(vec.Vec3{X: 2}))
	assert.False(t, w.MarkDirty(vec.Vec3{X: 2}), "Нельзя пометить несуществующий чанк")
}

func TestWorld_SetTerrainParams(t *testing.T) {
	gen, err := NewTerrainGenerator(7, DefaultBaseHeight, util.DefaultNoiseParams())
	require.NoError(t, err)

	w := New(gen, nil, Options{})
	defer w.Close()
	w.LoadArea(1, 1)
	w.RebuildDirty(0)

	var events []Event
	w.SetEventSink(func(ev Event) { events = append(events, ev) })

	changed, err := w.SetTerrainParams(gen.Params())
	require.NoError(t, err)
	assert.False(t, changed, "Без изменений нет перегенерации")
	assert.Equal(t, 0, w.DirtyCount())

	p := gen.Params()
	p.Frequency = 0.11
	changed, err = w.SetTerrainParams(p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, w.ChunkCount(), w.DirtyCount(), "Все чанки помечены грязными")

	require.Len(t, events, 1)
	ev, ok := events[0].(TerrainEvent)
	require.True(t, ok)
	assert.Equal(t, 0.11, ev.Params.Frequency)
	assert.Equal(t, 9, ev.Chunks)

	// Чанки заполнены новым рельефом
	c, _ := w.Chunk(vec.Vec3{})
	fresh := NewChunk(vec.Vec3{})
	fresh.FillTerrain(gen)
	assert.Equal(t, fresh.Blocks, c.Blocks)

	p.Octaves = 0
	_, err = w.SetTerrainParams(p)
	assert.True(t, errors.Is(err, ErrInvalidParams))
	assert.True(t, errors.Is(err, util.ErrInvalidNoiseParams))
}

func TestWorld_SetTerrainParamsNotTunable(t *testing.T) {
	w := New(CheckerGenerator{}, nil, Options{})
	defer w.Close()

	_, err := w.SetTerrainParams(util.DefaultNoiseParams())
	assert.ErrorIs(t, err, ErrNotTunable)
}

func TestWorld_Events(t *testing.T) {
	w := New(CheckerGenerator{}, nil, Options{})
	defer w.Close()

	var events []Event
	w.SetEventSink(func(ev Event) { events = append(events, ev) })

	w.GenerateChunk(vec.Vec3{})
	w.RebuildDirty(0)
	require.NoError(t, w.SetBlock(vec.Vec3{X: 1, Y: 8, Z: 0}, block.AirBlockID))
	require.NoError(t, w.SetBlock(vec.Vec3{X: 1, Y: 12, Z: 0}, block.GrassBlockID))
	w.RemoveChunk(vec.Vec3{})

	types := make([]EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.GetType())
	}
	assert.Equal(t, []EventType{
		EventTypeChunkInserted,
		EventTypeChunkRebuilt,
		EventTypeBlockRemoved,
		EventTypeBlockSet,
		EventTypeChunkRemoved,
	}, types)

	removed := events[2].(BlockEvent)
	assert.Equal(t, block.DirtBlockID, removed.Previous)
	assert.Equal(t, vec.Vec3{X: 1, Y: 8}, removed.Local)

	rebuilt := events[1].(ChunkEvent)
	assert.Equal(t, 1536, rebuilt.Faces)
	assert.False(t, rebuilt.Handle.IsNil())
}

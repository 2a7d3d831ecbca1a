package world

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/alitto/pond/v2"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/render"
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	_ "github.com/annel0/blockverse/internal/world/block/implementations" // регистрация блоков
	"golang.org/x/exp/maps"
)

var (
	// ErrChunkNotLoaded - чанк с такими координатами не загружен
	ErrChunkNotLoaded = errors.New("чанк не загружен")
	// ErrOutOfBounds - локальные координаты вне чанка
	ErrOutOfBounds = errors.New("координаты вне чанка")
	// ErrInvalidParams - недопустимые параметры рельефа
	ErrInvalidParams = errors.New("недопустимые параметры рельефа")
	// ErrNotTunable - активный генератор не поддерживает параметры шума
	ErrNotTunable = errors.New("генератор не настраивается")
)

// Значения по умолчанию
const (
	DefaultMaxRayDistance = 1000
	DefaultTargetEpsilon  = 1e-3
)

// Options настройки мира
type Options struct {
	MaxRayDistance float32          // Максимальная дальность луча
	TargetEpsilon  float32          // Допуск при поиске оси грани в TargetFromHit
	MeshWorkers    int              // Воркеры для построения мешей, 0 - по числу CPU
	Material       *render.Material // Общий материал чанков
}

// DefaultOptions возвращает настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		MaxRayDistance: DefaultMaxRayDistance,
		TargetEpsilon:  DefaultTargetEpsilon,
		Material:       render.DefaultMaterial(),
	}
}

// World владеет чанками и производными от них данными: коллизиями, объектами рендера
// и множеством грязных чанков. Не потокобезопасен: принадлежит циклу симуляции.
type World struct {
	chunks      map[vec.Vec3]*Chunk           // Загруженные чанки
	colliders   map[vec.Vec3]*physics.TriMesh // Кэш коллизий
	renderables map[vec.Vec3]render.Handle    // Текущие объекты рендера
	dirty       map[vec.Vec3]struct{}         // Чанки, ожидающие перестройки

	generator Generator
	sink      render.Sink
	opts      Options
	pool      pond.Pool
	events    EventSink
	logger    *logging.Logger
}

// New создаёт мир с указанным генератором рельефа и рендерером
func New(gen Generator, sink render.Sink, opts Options) *World {
	defaults := DefaultOptions()
	if opts.MaxRayDistance <= 0 {
		opts.MaxRayDistance = defaults.MaxRayDistance
	}
	if opts.TargetEpsilon <= 0 {
		opts.TargetEpsilon = defaults.TargetEpsilon
	}
	if opts.Material == nil {
		opts.Material = defaults.Material
	}
	if opts.MeshWorkers <= 0 {
		opts.MeshWorkers = runtime.NumCPU()
	}
	if sink == nil {
		sink = render.NewArena()
	}

	return &World{
		chunks:      make(map[vec.Vec3]*Chunk),
		colliders:   make(map[vec.Vec3]*physics.TriMesh),
		renderables: make(map[vec.Vec3]render.Handle),
		dirty:       make(map[vec.Vec3]struct{}),
		generator:   gen,
		sink:        sink,
		opts:        opts,
		pool:        pond.NewPool(opts.MeshWorkers),
		logger:      logging.GetWorldLogger(),
	}
}

// Close останавливает пул построения мешей
func (w *World) Close() {
	w.pool.StopAndWait()
}

// SetEventSink устанавливает получателя событий мира
func (w *World) SetEventSink(sink EventSink) {
	w.events = sink
}

func (w *World) emit(ev Event) {
	if w.events != nil {
		w.events(ev)
	}
}

// Options возвращает действующие настройки
func (w *World) Options() Options {
	return w.opts
}

// Generator возвращает активный генератор рельефа
func (w *World) Generator() Generator {
	return w.generator
}

// Sink возвращает рендерер мира
func (w *World) Sink() render.Sink {
	return w.sink
}

// InsertChunk добавляет чанк в мир (или заменяет существующий) и помечает его грязным
func (w *World) InsertChunk(c *Chunk) {
	w.chunks[c.Coords] = c
	w.dirty[c.Coords] = struct{}{}
	w.emit(ChunkEvent{EventType: EventTypeChunkInserted, Chunk: c.Coords})
}

// GenerateChunk создаёт чанк, заполняет рельефом активного генератора и добавляет в мир
func (w *World) GenerateChunk(id vec.Vec3) *Chunk {
	c := NewChunk(id)
	if w.generator != nil {
		c.FillTerrain(w.generator)
	}
	w.InsertChunk(c)
	return c
}

// LoadArea генерирует чанки x,z в [-radius, radius] и y в [0, layers).
// Возвращает количество добавленных чанков.
func (w *World) LoadArea(radius, layers int) int {
	count := 0
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			for y := 0; y < layers; y++ {
				w.GenerateChunk(vec.Vec3{X: x, Y: y, Z: z})
				count++
			}
		}
	}

	w.logger.Info("🌍 Загружена область: радиус %d, слоёв %d, чанков %d", radius, layers, count)
	return count
}

// RemoveChunk выгружает чанк вместе с коллизией и объектом рендера
func (w *World) RemoveChunk(id vec.Vec3) bool {
	if _, exists := w.chunks[id]; !exists {
		return false
	}

	if h, ok := w.renderables[id]; ok {
		w.sink.Retire(h)
	}
	delete(w.chunks, id)
	delete(w.colliders, id)
	delete(w.renderables, id)
	delete(w.dirty, id)

	w.logger.Debug("🗑️ Чанк %s выгружен", id)
	w.emit(ChunkEvent{EventType: EventTypeChunkRemoved, Chunk: id})
	return true
}

// Chunk возвращает чанк по координатам
func (w *World) Chunk(id vec.Vec3) (*Chunk, bool) {
	c, ok := w.chunks[id]
	return c, ok
}

// ChunkCount возвращает количество загруженных чанков
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// ChunkIDs возвращает координаты всех чанков в лексикографическом порядке
func (w *World) ChunkIDs() []vec.Vec3 {
	return sortedIDs(maps.Keys(w.chunks))
}

// Block возвращает блок по глобальным координатам
func (w *World) Block(global vec.Vec3) (block.BlockID, bool) {
	c, ok := w.chunks[global.ToChunkCoords()]
	if !ok {
		return block.AirBlockID, false
	}
	local := global.LocalInChunk()
	return c.TryGet(local.X, local.Y, local.Z)
}

// SetBlock устанавливает блок по глобальным координатам и помечает чанк грязным
func (w *World) SetBlock(global vec.Vec3, id block.BlockID) error {
	return w.SetLocalBlock(global.ToChunkCoords(), global.LocalInChunk(), id)
}

// SetLocalBlock устанавливает блок по координатам чанка и локальной позиции
func (w *World) SetLocalBlock(chunkID, local vec.Vec3, id block.BlockID) error {
	c, ok := w.chunks[chunkID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrChunkNotLoaded, chunkID)
	}
	prev, ok := c.TryGet(local.X, local.Y, local.Z)
	if !ok {
		return fmt.Errorf("%w: %s в чанке %s", ErrOutOfBounds, local, chunkID)
	}
	if prev == id {
		return nil
	}

	c.Set(local.X, local.Y, local.Z, id)
	w.dirty[chunkID] = struct{}{}

	evType := EventTypeBlockSet
	if block.IsEmpty(id) {
		evType = EventTypeBlockRemoved
		logging.LogBlockRemoved(w.logger, chunkID, local, prev)
	}
	w.emit(BlockEvent{EventType: evType, Chunk: chunkID, Local: local, Previous: prev, Block: id})
	return nil
}

// MarkDirty помечает чанк для перестройки. false, если чанк не загружен.
func (w *World) MarkDirty(id vec.Vec3) bool {
	if _, ok := w.chunks[id]; !ok {
		return false
	}
	w.dirty[id] = struct{}{}
	return true
}

// IsDirty возвращает true, если кэш чанка устарел
func (w *World) IsDirty(id vec.Vec3) bool {
	_, ok := w.dirty[id]
	return ok
}

// DirtyCount возвращает количество грязных чанков
func (w *World) DirtyCount() int {
	return len(w.dirty)
}

// DirtyIDs возвращает грязные чанки в лексикографическом порядке
func (w *World) DirtyIDs() []vec.Vec3 {
	return sortedIDs(maps.Keys(w.dirty))
}

// Collider возвращает кэшированную коллизию чанка
func (w *World) Collider(id vec.Vec3) (*physics.TriMesh, bool) {
	tm, ok := w.colliders[id]
	return tm, ok
}

// RenderHandle возвращает текущий объект рендера чанка
func (w *World) RenderHandle(id vec.Vec3) (render.Handle, bool) {
	h, ok := w.renderables[id]
	return h, ok
}

// SetTerrainParams меняет параметры шума активного генератора.
// Если параметры изменились, все чанки перегенерируются и помечаются грязными.
func (w *World) SetTerrainParams(params util.NoiseParams) (bool, error) {
	tg, ok := w.generator.(*TerrainGenerator)
	if !ok {
		return false, ErrNotTunable
	}

	changed, err := tg.SetParams(params)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if !changed {
		return false, nil
	}

	w.Regenerate()
	return true, nil
}

// Regenerate перезаполняет все чанки активным генератором и помечает их грязными.
// Возвращает количество чанков.
func (w *World) Regenerate() int {
	if w.generator == nil {
		return 0
	}

	for id, c := range w.chunks {
		c.FillTerrain(w.generator)
		w.dirty[id] = struct{}{}
	}

	ev := TerrainEvent{Generator: w.generator.Name(), Chunks: len(w.chunks)}
	if tg, ok := w.generator.(*TerrainGenerator); ok {
		ev.Params = tg.Params()
	}

	w.logger.Info("🏔️ Рельеф перегенерирован (%s): чанков %d", ev.Generator, ev.Chunks)
	w.emit(ev)
	return len(w.chunks)
}

func sortedIDs(ids []vec.Vec3) []vec.Vec3 {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

package world

import (
	"fmt"
	"sync"
	"time"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/mesh"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/render"
)

// RebuildStats итоги одного прохода перестройки
type RebuildStats struct {
	Rebuilt   int           // Перестроено чанков
	Remaining int           // Осталось грязных чанков
	Faces     int           // Граней во всех новых мешах
	Duration  time.Duration // Длительность прохода
}

// RebuildDirty перестраивает меши и коллизии грязных чанков.
// budget ограничивает число чанков за проход (0 - без ограничения), остальные
// остаются грязными до следующего прохода. Меши строятся параллельно в пуле,
// кэши обновляются последовательно в вызывающей горутине.
func (w *World) RebuildDirty(budget int) RebuildStats {
	start := time.Now()

	ids := w.DirtyIDs()
	if budget > 0 && len(ids) > budget {
		ids = ids[:budget]
	}
	if len(ids) == 0 {
		return RebuildStats{}
	}

	meshes := make([]*mesh.Mesh, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		i := i
		c := w.chunks[id]
		wg.Add(1)
		w.pool.Submit(func() {
			defer wg.Done()
			meshes[i] = mesh.BuildChunk(c)
		})
	}
	wg.Wait()

	stats := RebuildStats{}
	for i, id := range ids {
		m := meshes[i]
		if m == nil {
			panic(fmt.Sprintf("world: меш чанка %s не построен", id))
		}

		// 1. Старый объект рендера
		if old, ok := w.renderables[id]; ok {
			w.sink.Retire(old)
		}

		// 2-3. Коллизия из нового меша
		collider, err := physics.FromMesh(m)
		if err != nil {
			panic(fmt.Sprintf("world: построитель вернул некорректный меш для %s: %v", id, err))
		}
		w.colliders[id] = collider

		// 4. Новый объект рендера
		h := w.sink.Spawn(render.Instance{
			Chunk:     id,
			Mesh:      m,
			Transform: render.ChunkTransform(id),
			Material:  w.opts.Material,
		})
		w.renderables[id] = h

		// 5. Чанк актуален
		delete(w.dirty, id)

		stats.Rebuilt++
		stats.Faces += m.FaceCount()
		logging.LogChunkRebuild(w.logger, id, m.FaceCount(), m.TriangleCount())
		w.emit(ChunkEvent{EventType: EventTypeChunkRebuilt, Chunk: id, Faces: m.FaceCount(), Handle: h})
	}

	stats.Remaining = len(w.dirty)
	stats.Duration = time.Since(start)
	w.logger.Debug("🔧 Перестроено чанков: %d, осталось: %d, за %v", stats.Rebuilt, stats.Remaining, stats.Duration)
	return stats
}

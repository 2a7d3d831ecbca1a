package world

import (
	"math"

	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
)

// WorldHit - попадание луча в мир
type WorldHit struct {
	Chunk    vec.Vec3   // Чанк, в который попал луч
	Point    mgl32.Vec3 // Точка попадания в мировых координатах
	Distance float32    // Расстояние вдоль луча
}

// WorldTarget - блок, выбранный по попаданию луча
type WorldTarget struct {
	Chunk vec.Vec3
	Local vec.Vec3
	Block block.BlockID
}

// Global возвращает глобальные координаты блока
func (t WorldTarget) Global() vec.Vec3 {
	return t.Chunk.ChunkOrigin().Add(t.Local)
}

// CastRay ищет ближайшее попадание луча среди всех чанков с актуальной коллизией.
// Грязные чанки пропускаются: их кэш устарел.
func (w *World) CastRay(r physics.Ray) (WorldHit, bool) {
	var best WorldHit
	found := false

	for id, collider := range w.colliders {
		if w.IsDirty(id) {
			continue
		}

		hit, ok := collider.CastRay(r, id.ChunkOrigin().ToFloat(), w.opts.MaxRayDistance)
		if !ok {
			continue
		}

		candidate := WorldHit{Chunk: id, Point: hit.Point, Distance: hit.Distance}
		if !found || closerHit(candidate, best) {
			best = candidate
			found = true
		}
	}

	if !found {
		w.logger.Trace("🎯 Луч из %v не попал ни в один чанк", r.Origin)
	}
	return best, found
}

// closerHit задаёт полный порядок на попаданиях: по расстоянию (NaN больше всего),
// при равенстве - по координатам чанка.
func closerHit(a, b WorldHit) bool {
	aNaN := math.IsNaN(float64(a.Distance))
	bNaN := math.IsNaN(float64(b.Distance))

	switch {
	case aNaN && bNaN:
		return a.Chunk.Less(b.Chunk)
	case aNaN:
		return false
	case bNaN:
		return true
	case a.Distance != b.Distance:
		return a.Distance < b.Distance
	default:
		return a.Chunk.Less(b.Chunk)
	}
}

// TargetFromHit определяет, какой из двух блоков по разные стороны грани был задет.
// Ось грани - первая (X, Y, Z) координата, лежащая на целочисленной границе с точностью TargetEpsilon.
// Цель есть, только если ровно один из двух блоков твёрдый.
func (w *World) TargetFromHit(hit WorldHit) (WorldTarget, bool) {
	c, ok := w.chunks[hit.Chunk]
	if !ok {
		return WorldTarget{}, false
	}

	local := hit.Point.Sub(hit.Chunk.ChunkOrigin().ToFloat())

	axis := -1
	for i := 0; i < 3; i++ {
		if math.Abs(float64(local[i])-math.Round(float64(local[i]))) < float64(w.opts.TargetEpsilon) {
			axis = i
			break
		}
	}
	if axis < 0 {
		return WorldTarget{}, false
	}

	upper := vec.Vec3{
		X: int(math.Floor(float64(local[0]))),
		Y: int(math.Floor(float64(local[1]))),
		Z: int(math.Floor(float64(local[2]))),
	}
	// Точка могла оказаться чуть ниже границы: выравниваем по ней
	upper = upper.WithAxis(axis, int(math.Round(float64(local[axis]))))
	lower := upper.WithAxis(axis, upper.Axis(axis)-1)

	upperID := c.GetOrAir(upper.X, upper.Y, upper.Z)
	lowerID := c.GetOrAir(lower.X, lower.Y, lower.Z)

	switch {
	case !block.IsEmpty(upperID) && block.IsEmpty(lowerID):
		return WorldTarget{Chunk: hit.Chunk, Local: upper, Block: upperID}, true
	case block.IsEmpty(upperID) && !block.IsEmpty(lowerID):
		return WorldTarget{Chunk: hit.Chunk, Local: lower, Block: lowerID}, true
	default:
		return WorldTarget{}, false
	}
}

// PickTarget - CastRay + TargetFromHit
func (w *World) PickTarget(r physics.Ray) (WorldHit, WorldTarget, bool) {
	hit, ok := w.CastRay(r)
	if !ok {
		return WorldHit{}, WorldTarget{}, false
	}
	target, ok := w.TargetFromHit(hit)
	return hit, target, ok
}

// BreakTarget заменяет целевой блок воздухом
func (w *World) BreakTarget(t WorldTarget) error {
	return w.SetLocalBlock(t.Chunk, t.Local, block.AirBlockID)
}

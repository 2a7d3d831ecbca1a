package mesh

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	verticesPerFace = 4
	indicesPerFace  = 6
)

// Шаблон индексов квада. Инвертированный вариант - тот же список в обратном порядке.
var (
	quadIndices         = [indicesPerFace]uint32{0, 3, 1, 3, 2, 1}
	invertedQuadIndices = [indicesPerFace]uint32{1, 2, 3, 1, 3, 0}
)

// Builder накапливает грани одного чанка. Одноразовый: после Complete не используется.
type Builder struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	uvs       []mgl32.Vec2
	indices   []uint32

	completed bool
}

// NewBuilder создаёт пустой построитель
func NewBuilder() *Builder {
	return &Builder{}
}

// AddFace добавляет одну грань блока в позиции pos, текстурированную блоком id.
// inverted разворачивает нормаль и порядок обхода треугольников.
func (mb *Builder) AddFace(pos vec.Vec3, dir Direction, id block.BlockID, inverted bool) {
	mb.mustBeOpen()

	base := uint32(len(mb.positions))
	origin := pos.ToFloat()
	uvs := block.UVs(id)

	normal := dir.Normal()
	pattern := &quadIndices
	if inverted {
		normal = normal.Mul(-1)
		pattern = &invertedQuadIndices
	}

	for i, corner := range dir.Corners() {
		mb.positions = append(mb.positions, origin.Add(corner))
		mb.normals = append(mb.normals, normal)
		mb.uvs = append(mb.uvs, uvs[i])
	}
	for _, idx := range pattern {
		mb.indices = append(mb.indices, base+idx)
	}
}

// MaybeAddFace рассматривает пару блоков: a в позиции pos и b в соседней клетке по dir.
// Грань появляется только если ровно один из них пустой. Текстура берётся
// у непустого блока, нормаль всегда смотрит в сторону пустого.
// Возвращает true, если грань добавлена.
func (mb *Builder) MaybeAddFace(pos vec.Vec3, dir Direction, a, b block.BlockID) bool {
	aEmpty, bEmpty := block.IsEmpty(a), block.IsEmpty(b)

	switch {
	case aEmpty == bEmpty:
		return false
	case bEmpty:
		mb.AddFace(pos, dir, a, false)
	default:
		mb.AddFace(pos, dir, b, true)
	}
	return true
}

// FaceCount возвращает количество уже добавленных граней
func (mb *Builder) FaceCount() int {
	return len(mb.indices) / indicesPerFace
}

// Complete отдаёт собранный меш. Повторный вызов - ошибка программиста.
func (mb *Builder) Complete() *Mesh {
	mb.mustBeOpen()
	mb.completed = true

	m := &Mesh{
		Positions: mb.positions,
		Normals:   mb.normals,
		UVs:       mb.uvs,
		Indices:   mb.indices,
	}
	mb.positions, mb.normals, mb.uvs, mb.indices = nil, nil, nil, nil
	return m
}

func (mb *Builder) mustBeOpen() {
	if mb.completed {
		panic("mesh: построитель уже завершён")
	}
}

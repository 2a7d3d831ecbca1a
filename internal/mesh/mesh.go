package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMalformedMesh возвращается, если меш нарушает собственные инварианты
var ErrMalformedMesh = errors.New("некорректный меш")

// Mesh - список треугольников с атрибутами вершин
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// Validate проверяет, что длины атрибутов совпадают, число индексов кратно 3
// и каждый индекс указывает на существующую вершину.
func (m *Mesh) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil", ErrMalformedMesh)
	}

	n := len(m.Positions)
	if len(m.Normals) != n || len(m.UVs) != n {
		return fmt.Errorf("%w: позиций %d, нормалей %d, uv %d",
			ErrMalformedMesh, n, len(m.Normals), len(m.UVs))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: число индексов %d не кратно 3", ErrMalformedMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: индекс %d = %d, вершин %d", ErrMalformedMesh, i, idx, n)
		}
	}
	return nil
}

// VertexCount возвращает количество вершин
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount возвращает количество треугольников
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// FaceCount возвращает количество граней (квадов)
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / indicesPerFace
}

// IsEmpty возвращает true, если в меше нет ни одного треугольника
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Triangle возвращает вершины i-го треугольника
func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	base := i * 3
	return m.Positions[m.Indices[base]], m.Positions[m.Indices[base+1]], m.Positions[m.Indices[base+2]]
}

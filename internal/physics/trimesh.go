package physics

import (
	"fmt"

	"github.com/annel0/blockverse/internal/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrMalformedMesh возвращается FromMesh для меша с нарушенными инвариантами
var ErrMalformedMesh = mesh.ErrMalformedMesh

// Пороги теста Мёллера-Трумбора
const (
	parallelEpsilon = 1e-7 // Вырожденный или параллельный лучу треугольник
	edgeEpsilon     = 1e-6 // Попадание в общее ребро двух треугольников не теряется
)

// RayHit - результат пересечения луча с формой
type RayHit struct {
	Distance float32    // Расстояние вдоль луча
	Point    mgl32.Vec3 // Точка попадания в мировых координатах
	Triangle int        // Индекс треугольника
}

// TriMesh - индексированный набор треугольников для запросов лучом.
// Используется только для пересечений, не для отрисовки.
type TriMesh struct {
	vertices  []mgl32.Vec3
	triangles [][3]uint32
	bounds    AABB
}

// FromMesh строит коллизионную форму из меша
func FromMesh(m *mesh.Mesh) (*TriMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("коллизия из меша: %w", err)
	}

	tm := &TriMesh{
		vertices:  make([]mgl32.Vec3, len(m.Positions)),
		triangles: make([][3]uint32, 0, m.TriangleCount()),
		bounds:    EmptyAABB(),
	}
	copy(tm.vertices, m.Positions)

	for i := 0; i+2 < len(m.Indices); i += 3 {
		tm.triangles = append(tm.triangles, [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]})
	}
	for _, v := range tm.vertices {
		tm.bounds = tm.bounds.Extend(v)
	}
	return tm, nil
}

// TriangleCount возвращает количество треугольников
func (tm *TriMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Bounds возвращает ограничивающий бокс в локальных координатах
func (tm *TriMesh) Bounds() AABB {
	return tm.bounds
}

// CastRay пересекает луч (в мировых координатах) с формой, сдвинутой на offset.
// Возвращает ближайшее попадание на расстоянии не больше maxDist.
func (tm *TriMesh) CastRay(r Ray, offset mgl32.Vec3, maxDist float32) (RayHit, bool) {
	if len(tm.triangles) == 0 || !r.IsValid() {
		return RayHit{}, false
	}

	local := r.Translate(offset.Mul(-1))
	if tmin, _, ok := tm.bounds.IntersectRay(local); !ok || tmin > maxDist {
		return RayHit{}, false
	}

	best := RayHit{Triangle: -1}
	for i, tri := range tm.triangles {
		t, ok := intersectTriangle(local, tm.vertices[tri[0]], tm.vertices[tri[1]], tm.vertices[tri[2]])
		if !ok || t > maxDist {
			continue
		}
		if best.Triangle < 0 || t < best.Distance {
			best.Distance = t
			best.Triangle = i
		}
	}

	if best.Triangle < 0 {
		return RayHit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}

// intersectTriangle - двусторонний тест Мёллера-Трумбора
func intersectTriangle(r Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -parallelEpsilon && det < parallelEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if !(u >= -edgeEpsilon && u <= 1+edgeEpsilon) {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if !(v >= -edgeEpsilon && u+v <= 1+edgeEpsilon) {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if !(t >= 0) {
		return 0, false
	}
	return t, true
}

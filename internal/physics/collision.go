package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB представляет выровненный по осям ограничивающий параллелепипед
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB возвращает "вывернутый" бокс, который расширяется первой же точкой
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty возвращает true, если бокс не содержит ни одной точки
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend расширяет бокс до точки p
func (b AABB) Extend(p mgl32.Vec3) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Translate сдвигает бокс
func (b AABB) Translate(offset mgl32.Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Contains проверяет, находится ли точка внутри бокса (границы включительно)
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Intersects проверяет пересечение двух боксов
func (b AABB) Intersects(other AABB) bool {
	return b.Min[0] <= other.Max[0] && b.Max[0] >= other.Min[0] &&
		b.Min[1] <= other.Max[1] && b.Max[1] >= other.Min[1] &&
		b.Min[2] <= other.Max[2] && b.Max[2] >= other.Min[2]
}

// IntersectRay возвращает параметрический отрезок [tmin, tmax] пересечения луча с боксом
// (метод плит). Начало луча внутри бокса даёт tmin = 0.
func (b AABB) IntersectRay(r Ray) (tmin, tmax float32, ok bool) {
	if b.IsEmpty() {
		return 0, 0, false
	}

	tmin, tmax = 0, float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Direction[i]

		if d == 0 {
			// Луч параллелен плитам: должен лежать между ними
			if o < b.Min[i] || o > b.Max[i] {
				return 0, 0, false
			}
			continue
		}

		inv := 1 / d
		t1 := (b.Min[i] - o) * inv
		t2 := (b.Max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}

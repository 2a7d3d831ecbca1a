package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray - луч с нормализованным направлением
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay создаёт луч. Нулевое направление даёт луч, который ни с чем не пересекается.
func NewRay(origin, direction mgl32.Vec3) Ray {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction}
}

// At возвращает точку луча на расстоянии t
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Translate сдвигает начало луча
func (r Ray) Translate(offset mgl32.Vec3) Ray {
	return Ray{Origin: r.Origin.Add(offset), Direction: r.Direction}
}

// IsValid возвращает false для луча без направления
func (r Ray) IsValid() bool {
	return r.Direction.Len() > 0
}

package vec

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize длина ребра чанка в блоках
const ChunkSize = 16

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется и как идентификатор чанка, и как локальная позиция блока.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale умножает все компоненты на k
func (v Vec3) Scale(k int) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Less задаёт лексикографический порядок (X, затем Y, затем Z)
func (v Vec3) Less(other Vec3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

// ChunkOrigin возвращает мировые координаты угла чанка с этим идентификатором
func (v Vec3) ChunkOrigin() Vec3 {
	return v.Scale(ChunkSize)
}

// ToChunkCoords преобразует глобальные координаты блока в координаты чанка
func (v Vec3) ToChunkCoords() Vec3 {
	return Vec3{X: v.X >> 4, Y: v.Y >> 4, Z: v.Z >> 4} // Деление на 16 с округлением вниз
}

// LocalInChunk возвращает локальные координаты внутри чанка
func (v Vec3) LocalInChunk() Vec3 {
	return Vec3{X: v.X & 0xF, Y: v.Y & 0xF, Z: v.Z & 0xF} // Модуль 16
}

// InChunk проверяет, что все координаты лежат в [0, ChunkSize)
func (v Vec3) InChunk() bool {
	return v.X >= 0 && v.X < ChunkSize &&
		v.Y >= 0 && v.Y < ChunkSize &&
		v.Z >= 0 && v.Z < ChunkSize
}

// ToFloat переводит вектор в mgl32.Vec3
func (v Vec3) ToFloat() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Axis возвращает компоненту по номеру оси (0 - X, 1 - Y, 2 - Z)
func (v Vec3) Axis(axis int) int {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithAxis возвращает копию вектора с заменённой компонентой
func (v Vec3) WithAxis(axis, value int) Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

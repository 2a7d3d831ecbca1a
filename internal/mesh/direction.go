package mesh

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction направление грани блока
type Direction uint8

const (
	PosX Direction = iota
	PosY
	PosZ
	NegX
	NegY
	NegZ
)

// Directions все шесть направлений в порядке объявления
var Directions = [6]Direction{PosX, PosY, PosZ, NegX, NegY, NegZ}

// Углы единичного куба для каждой грани. Порядок вершин согласован с block.UVs
// и с шаблоном индексов quadIndices: треугольники обходятся против часовой стрелки,
// если смотреть снаружи по нормали.
var faceCorners = [6][4]mgl32.Vec3{
	PosX: {{1, 0, 1}, {1, 1, 1}, {1, 1, 0}, {1, 0, 0}},
	PosY: {{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}},
	PosZ: {{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}},
	NegX: {{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
	NegY: {{0, 0, 1}, {1, 0, 1}, {1, 0, 0}, {0, 0, 0}},
	NegZ: {{1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}},
}

var faceOffsets = [6]vec.Vec3{
	PosX: {X: 1},
	PosY: {Y: 1},
	PosZ: {Z: 1},
	NegX: {X: -1},
	NegY: {Y: -1},
	NegZ: {Z: -1},
}

// Offset возвращает смещение к соседней клетке
func (d Direction) Offset() vec.Vec3 {
	return faceOffsets[d]
}

// Normal возвращает внешнюю нормаль грани
func (d Direction) Normal() mgl32.Vec3 {
	return d.Offset().ToFloat()
}

// Corners возвращает 4 угла грани относительно минимального угла блока
func (d Direction) Corners() [4]mgl32.Vec3 {
	return faceCorners[d]
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

// Axis возвращает индекс оси (0 - X, 1 - Y, 2 - Z)
func (d Direction) Axis() int {
	return int(d % 3)
}

func (d Direction) String() string {
	switch d {
	case PosX:
		return "+X"
	case PosY:
		return "+Y"
	case PosZ:
		return "+Z"
	case NegX:
		return "-X"
	case NegY:
		return "-Y"
	case NegZ:
		return "-Z"
	default:
		return "?"
	}
}

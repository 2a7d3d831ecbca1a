package block

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// AtlasSize количество ячеек атласа текстур по каждой оси
const AtlasSize = 16

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// MustGet возвращает поведение блока или паникует.
// Незарегистрированный ID - ошибка программиста, а не состояние времени выполнения.
func MustGet(id BlockID) BlockBehavior {
	behavior, exists := registry[id]
	if !exists {
		panic(fmt.Sprintf("block: незарегистрированный тип блока %d", id))
	}
	return behavior
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// IsEmpty возвращает true для воздуха. Пустой блок никогда не даёт ни геометрии, ни коллизий.
func IsEmpty(id BlockID) bool {
	return id == AirBlockID
}

// UVs возвращает 4 текстурные координаты ячейки атласа для блока.
// Порядок углов совпадает с порядком вершин грани в mesh.Direction.Corners.
func UVs(id BlockID) [4]mgl32.Vec2 {
	cx, cy := MustGet(id).AtlasCell()

	const cell = float32(1) / AtlasSize
	offset := mgl32.Vec2{float32(cx), float32(cy)}.Mul(cell)

	return [4]mgl32.Vec2{
		offset.Add(mgl32.Vec2{0, cell}),
		offset,
		offset.Add(mgl32.Vec2{cell, 0}),
		offset.Add(mgl32.Vec2{cell, cell}),
	}
}

// BlockID представляет идентификатор блока
type BlockID uint16

// Константы ID блоков
const (
	AirBlockID   BlockID = iota // 0
	StoneBlockID                // 1
	GrassBlockID                // 2
	DirtBlockID                 // 3 - почва, верхний слой рельефа
)

func (id BlockID) String() string {
	if behavior, ok := registry[id]; ok {
		return behavior.Name()
	}
	return fmt.Sprintf("Block(%d)", uint16(id))
}

package implementations

import "github.com/annel0/blockverse/internal/world/block"

// DirtBehavior описывает блок почвы
type DirtBehavior struct{}

// ID возвращает идентификатор блока
func (b *DirtBehavior) ID() block.BlockID {
	return block.DirtBlockID
}

// Name возвращает имя блока
func (b *DirtBehavior) Name() string {
	return "Dirt"
}

// AtlasCell возвращает ячейку атласа
func (b *DirtBehavior) AtlasCell() (x, y int) {
	return 2, 0
}

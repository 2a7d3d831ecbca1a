package implementations

import "github.com/annel0/blockverse/internal/world/block"

// StoneBehavior описывает блок камня
type StoneBehavior struct{}

func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

// Name возвращает имя блока
func (b *StoneBehavior) Name() string {
	return "Stone"
}

// AtlasCell возвращает ячейку атласа
func (b *StoneBehavior) AtlasCell() (x, y int) {
	return 3, 0
}

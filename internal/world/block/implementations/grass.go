package implementations

import "github.com/annel0/blockverse/internal/world/block"

// GrassBehavior описывает блок травы
type GrassBehavior struct{}

// ID возвращает идентификатор блока
func (b *GrassBehavior) ID() block.BlockID {
	return block.GrassBlockID
}

// Name возвращает имя блока
func (b *GrassBehavior) Name() string {
	return "Grass"
}

// AtlasCell возвращает ячейку атласа
func (b *GrassBehavior) AtlasCell() (x, y int) {
	return 1, 0
}

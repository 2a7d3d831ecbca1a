package implementations

import "github.com/annel0/blockverse/internal/world/block"

// AirBehavior описывает пустой блок (воздух)
type AirBehavior struct{}

// ID возвращает идентификатор блока
func (b *AirBehavior) ID() block.BlockID {
	return block.AirBlockID
}

// Name возвращает имя блока
func (b *AirBehavior) Name() string {
	return "Air"
}

// AtlasCell для воздуха не используется при отрисовке, ячейка (0,0) только для полноты регистра
func (b *AirBehavior) AtlasCell() (x, y int) {
	return 0, 0
}

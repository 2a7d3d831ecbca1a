package block

// BlockBehavior описывает статические свойства типа блока.
// Сам BlockID не несёт данных: всё, что зависит от типа, берётся отсюда.
type BlockBehavior interface {
	ID() BlockID
	Name() string
	// AtlasCell возвращает координаты ячейки в атласе текстур 16x16
	AtlasCell() (x, y int)
}

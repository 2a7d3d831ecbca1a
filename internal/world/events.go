package world

import (
	"github.com/annel0/blockverse/internal/render"
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// EventType определяет тип события
type EventType uint8

const (
	EventTypeBlockSet            EventType = iota // Установка блока
	EventTypeBlockRemoved                         // Удаление блока (замена на воздух)
	EventTypeChunkInserted                        // Чанк добавлен в мир
	EventTypeChunkRebuilt                         // Меш и коллизия чанка перестроены
	EventTypeChunkRemoved                         // Чанк выгружен
	EventTypeTerrainRegenerated                   // Рельеф перегенерирован
)

func (t EventType) String() string {
	switch t {
	case EventTypeBlockSet:
		return "BlockSet"
	case EventTypeBlockRemoved:
		return "BlockRemoved"
	case EventTypeChunkInserted:
		return "ChunkInserted"
	case EventTypeChunkRebuilt:
		return "ChunkRebuilt"
	case EventTypeChunkRemoved:
		return "ChunkRemoved"
	case EventTypeTerrainRegenerated:
		return "TerrainRegenerated"
	default:
		return "Unknown"
	}
}

// Event представляет собой интерфейс для всех событий
type Event interface {
	GetType() EventType
}

// EventSink получает события мира. Вызывается синхронно в потоке симуляции.
type EventSink func(Event)

// BlockEvent представляет событие, связанное с блоком
type BlockEvent struct {
	EventType EventType
	Chunk     vec.Vec3      // Координаты чанка
	Local     vec.Vec3      // Локальные координаты блока
	Previous  block.BlockID // Блок до изменения
	Block     block.BlockID // Блок после изменения
}

// GetType возвращает тип события
func (e BlockEvent) GetType() EventType {
	return e.EventType
}

// ChunkEvent представляет событие, связанное с чанком
type ChunkEvent struct {
	EventType EventType
	Chunk     vec.Vec3
	Faces     int           // Граней в новом меше (для ChunkRebuilt)
	Handle    render.Handle // Новый объект рендера (для ChunkRebuilt)
}

// GetType возвращает тип события
func (e ChunkEvent) GetType() EventType {
	return e.EventType
}

// TerrainEvent - рельеф перегенерирован с новыми параметрами
type TerrainEvent struct {
	Generator string
	Params    util.NoiseParams
	Chunks    int // Сколько чанков помечено грязными
}

// GetType возвращает тип события
func (e TerrainEvent) GetType() EventType {
	return EventTypeTerrainRegenerated
}

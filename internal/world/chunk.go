package world

import (
	"fmt"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// ChunkSize размер чанка по каждой оси
const ChunkSize = vec.ChunkSize

// HeightSampler возвращает высоту рельефа для глобальной колонки (x, z)
type HeightSampler interface {
	SampleHeight(gx, gz int) int
}

// Chunk представляет участок мира размером 16x16x16 блоков
type Chunk struct {
	Coords vec.Vec3 // Координаты чанка в мире (в чанках)

	// Blocks[x][y][z]
	Blocks [ChunkSize][ChunkSize][ChunkSize]block.BlockID
}

// NewChunk создаёт пустой чанк (только воздух) с указанными координатами.
// Рельеф не генерируется, для этого есть FillTerrain.
func NewChunk(coords vec.Vec3) *Chunk {
	return &Chunk{Coords: coords}
}

// Origin возвращает глобальные координаты блока (0,0,0) чанка
func (c *Chunk) Origin() vec.Vec3 {
	return c.Coords.ChunkOrigin()
}

// FillTerrain заполняет чанк по карте высот: камень ниже высоты, земля на высоте, воздух выше.
// Повторный вызов с тем же генератором даёт тот же результат.
func (c *Chunk) FillTerrain(gen HeightSampler) {
	origin := c.Origin()

	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			height := gen.SampleHeight(origin.X+x, origin.Z+z)

			for y := 0; y < ChunkSize; y++ {
				gy := origin.Y + y

				switch {
				case gy < height:
					c.Blocks[x][y][z] = block.StoneBlockID
				case gy == height:
					c.Blocks[x][y][z] = block.DirtBlockID
				default:
					c.Blocks[x][y][z] = block.AirBlockID
				}
			}
		}
	}
}

// TryGet возвращает блок по локальным координатам.
// Координаты вне [0,16) по любой оси дают false.
func (c *Chunk) TryGet(x, y, z int) (block.BlockID, bool) {
	if !inBounds(x) || !inBounds(y) || !inBounds(z) {
		return block.AirBlockID, false
	}
	return c.Blocks[x][y][z], true
}

// GetOrAir возвращает блок или воздух, если координаты вне чанка
func (c *Chunk) GetOrAir(x, y, z int) block.BlockID {
	id, _ := c.TryGet(x, y, z)
	return id
}

// Set записывает блок. Вызывающий гарантирует корректные координаты.
func (c *Chunk) Set(x, y, z int, id block.BlockID) {
	if !inBounds(x) || !inBounds(y) || !inBounds(z) {
		panic(fmt.Sprintf("world: запись за пределы чанка %s: (%d,%d,%d)", c.Coords, x, y, z))
	}
	c.Blocks[x][y][z] = id
}

// SolidCount возвращает количество непустых блоков в чанке
func (c *Chunk) SolidCount() int {
	count := 0
	for x := range c.Blocks {
		for y := range c.Blocks[x] {
			for z := range c.Blocks[x][y] {
				if !block.IsEmpty(c.Blocks[x][y][z]) {
					count++
				}
			}
		}
	}
	return count
}

func inBounds(v int) bool {
	return v >= 0 && v < ChunkSize
}

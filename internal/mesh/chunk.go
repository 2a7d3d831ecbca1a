package mesh

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	_ "github.com/annel0/blockverse/internal/world/block/implementations" // регистрация блоков для UV
)

// BlockSource - чанк с чтением по локальным координатам.
// Для координат вне [0,16) возвращает воздух.
type BlockSource interface {
	GetOrAir(x, y, z int) block.BlockID
}

// BuildChunk строит меш чанка в локальных координатах.
// Соседние чанки не учитываются: на границе чанка всегда считается воздух.
func BuildChunk(src BlockSource) *Mesh {
	mb := NewBuilder()
	const n = vec.ChunkSize

	// Грани на отрицательных границах чанка
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			mb.MaybeAddFace(vec.Vec3{X: 0, Y: i, Z: j}, NegX, src.GetOrAir(0, i, j), block.AirBlockID)
			mb.MaybeAddFace(vec.Vec3{X: i, Y: 0, Z: j}, NegY, src.GetOrAir(i, 0, j), block.AirBlockID)
			mb.MaybeAddFace(vec.Vec3{X: i, Y: j, Z: 0}, NegZ, src.GetOrAir(i, j, 0), block.AirBlockID)
		}
	}

	// Для каждой клетки - грань с соседом в положительном направлении по каждой оси
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				cur := src.GetOrAir(x, y, z)

				mb.MaybeAddFace(pos, PosX, cur, src.GetOrAir(x+1, y, z))
				mb.MaybeAddFace(pos, PosY, cur, src.GetOrAir(x, y+1, z))
				mb.MaybeAddFace(pos, PosZ, cur, src.GetOrAir(x, y, z+1))
			}
		}
	}

	return mb.Complete()
}

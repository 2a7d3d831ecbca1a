package render

import (
	"github.com/annel0/blockverse/internal/mesh"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Handle идентифицирует отрисовываемый объект у рендерера
type Handle uuid.UUID

// NilHandle - отсутствующий объект
var NilHandle = Handle(uuid.Nil)

// IsNil возвращает true для пустого хэндла
func (h Handle) IsNil() bool {
	return h == NilHandle
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Material - общий материал для всех чанков
type Material struct {
	Name    string
	Texture string // Путь к атласу текстур
}

// DefaultMaterial возвращает материал рельефа по умолчанию
func DefaultMaterial() *Material {
	return &Material{Name: "terrain", Texture: "Texture.png"}
}

// Instance - всё, что нужно рендереру для отрисовки одного чанка
type Instance struct {
	Chunk     vec.Vec3
	Mesh      *mesh.Mesh
	Transform mgl32.Mat4
	Material  *Material
}

// ChunkTransform возвращает мировую матрицу чанка: сдвиг на 16 * id
func ChunkTransform(id vec.Vec3) mgl32.Mat4 {
	o := id.ChunkOrigin().ToFloat()
	return mgl32.Translate3D(o[0], o[1], o[2])
}

// Sink - рендерер с точки зрения мира: принимает новые объекты и удаляет старые.
// Как именно рендерер освобождает ресурсы, мир не знает.
type Sink interface {
	Spawn(inst Instance) Handle
	Retire(h Handle) bool
}

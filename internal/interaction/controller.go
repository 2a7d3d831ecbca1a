package interaction

import (
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/world"
)

// Input - состояние устройств ввода за один шаг
type Input struct {
	Keys         MoveKeys
	MouseDX      float32 // Смещение мыши за шаг
	MouseDY      float32
	RotateHeld   bool // Правая кнопка: поворот камеры только пока зажата
	BreakPressed bool // Левая кнопка нажата в этом шаге (фронт, не удержание)
}

// Outcome - результат обработки ввода
type Outcome struct {
	Hit       world.WorldHit
	HasHit    bool
	Target    world.WorldTarget
	HasTarget bool
	Removed   bool // Блок удалён в этом шаге
}

// Controller связывает камеру с миром: двигает камеру, выбирает блок под прицелом и ломает его
type Controller struct {
	Camera *FlyCam
	logger *logging.Logger
}

// NewController создаёт контроллер для камеры
func NewController(cam *FlyCam) *Controller {
	return &Controller{
		Camera: cam,
		logger: logging.GetInteractionLogger(),
	}
}

// Apply применяет ввод одного шага: движение и поворот камеры, затем луч из прицела
// и, при нажатии, удаление целевого блока. Не более одной правки за вызов.
func (ic *Controller) Apply(w *world.World, in Input) Outcome {
	ic.Camera.Move(in.Keys)
	if in.RotateHeld {
		ic.Camera.Rotate(in.MouseDX, in.MouseDY)
	}

	var out Outcome
	out.Hit, out.HasHit = w.CastRay(ic.Camera.PickRay())
	if !out.HasHit {
		return out
	}

	out.Target, out.HasTarget = w.TargetFromHit(out.Hit)
	if !out.HasTarget || !in.BreakPressed {
		return out
	}

	if err := w.BreakTarget(out.Target); err != nil {
		ic.logger.Warn("⚠️ Не удалось удалить блок %s: %v", out.Target.Global(), err)
		return out
	}
	out.Removed = true
	return out
}

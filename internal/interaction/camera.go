package interaction

import (
	"math"

	"github.com/annel0/blockverse/internal/physics"
	"github.com/go-gl/mathgl/mgl32"
)

// Предел наклона камеры, чтобы не перевернуться через зенит
const maxPitch = math.Pi/2 - 0.01

// MoveKeys - зажатые клавиши движения в текущем кадре
type MoveKeys struct {
	Forward, Back bool // W / S
	Right, Left   bool // D / A
	Up, Down      bool // E / Q
	Sprint        bool // Shift
}

// FlyCam - свободная камера: позиция плюс рыскание и тангаж
type FlyCam struct {
	Position  mgl32.Vec3
	Yaw       float32 // Поворот вокруг Y, 0 - взгляд вдоль -Z
	Pitch     float32 // Наклон, положительный - вверх
	MoveSpeed float32
	SprintMod float32
	LookSpeed float32
}

// NewFlyCam создаёт камеру в позиции pos, смотрящую на target
func NewFlyCam(pos, target mgl32.Vec3) *FlyCam {
	cam := &FlyCam{
		Position:  pos,
		MoveSpeed: 1,
		SprintMod: 3,
		LookSpeed: 0.01,
	}
	cam.LookAt(target)
	return cam
}

// LookAt поворачивает камеру на точку
func (c *FlyCam) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()

	c.Pitch = clampPitch(float32(math.Asin(float64(d.Y()))))
	c.Yaw = float32(math.Atan2(float64(-d.X()), float64(-d.Z())))
}

// Forward возвращает направление взгляда
func (c *FlyCam) Forward() mgl32.Vec3 {
	sy, cy := sincos(c.Yaw)
	sp, cp := sincos(c.Pitch)
	return mgl32.Vec3{-sy * cp, sp, -cy * cp}
}

// Right возвращает правую ось камеры (всегда горизонтальна)
func (c *FlyCam) Right() mgl32.Vec3 {
	sy, cy := sincos(c.Yaw)
	return mgl32.Vec3{cy, 0, -sy}
}

// Up возвращает верхнюю ось камеры
func (c *FlyCam) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

// Move сдвигает камеру по зажатым клавишам в осях камеры
func (c *FlyCam) Move(keys MoveKeys) {
	speed := c.MoveSpeed
	if keys.Sprint {
		speed *= c.SprintMod
	}

	forward, right, up := c.Forward(), c.Right(), c.Up()
	var delta mgl32.Vec3
	if keys.Forward {
		delta = delta.Add(forward)
	}
	if keys.Back {
		delta = delta.Sub(forward)
	}
	if keys.Right {
		delta = delta.Add(right)
	}
	if keys.Left {
		delta = delta.Sub(right)
	}
	if keys.Up {
		delta = delta.Add(up)
	}
	if keys.Down {
		delta = delta.Sub(up)
	}

	c.Position = c.Position.Add(delta.Mul(speed))
}

// Rotate поворачивает камеру на смещение мыши (dx, dy) в пикселях
func (c *FlyCam) Rotate(dx, dy float32) {
	c.Yaw -= dx * c.LookSpeed
	c.Pitch = clampPitch(c.Pitch - dy*c.LookSpeed)
}

// View возвращает матрицу вида
func (c *FlyCam) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), c.Up())
}

// PickRay возвращает луч из камеры вдоль направления взгляда (через прицел в центре экрана)
func (c *FlyCam) PickRay() physics.Ray {
	return physics.NewRay(c.Position, c.Forward())
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -maxPitch, maxPitch)
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

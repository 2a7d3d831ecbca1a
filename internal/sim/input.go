package sim

import (
	"github.com/annel0/blockverse/internal/interaction"
)

// InputSource выдаёт ввод для шага симуляции
type InputSource interface {
	Next(step uint64) interaction.Input
}

// InputFunc адаптер функции к InputSource
type InputFunc func(step uint64) interaction.Input

// Next вызывает f(step)
func (f InputFunc) Next(step uint64) interaction.Input {
	return f(step)
}

// IdleInput ввод без действий
var IdleInput = InputFunc(func(uint64) interaction.Input { return interaction.Input{} })

// DemoInput сценарий без игрока: камера медленно поворачивается
// и ломает блок под прицелом раз в BreakEvery шагов.
type DemoInput struct {
	BreakEvery uint64  // 0 - не ломать
	TurnRate   float32 // Смещение мыши по X за шаг
}

// Next возвращает ввод шага step
func (d DemoInput) Next(step uint64) interaction.Input {
	in := interaction.Input{
		MouseDX:    d.TurnRate,
		RotateHeld: d.TurnRate != 0,
	}
	if d.BreakEvery > 0 && step%d.BreakEvery == 0 {
		in.BreakPressed = true
	}
	return in
}

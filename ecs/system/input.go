package system

import (
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/milk9111/minigames/input"
)

// InputSystem polls the input session once per frame and hands the result
// to every entity with an Input component.
type InputSystem struct {
	input *input.System
}

func NewInputSystem(in *input.System) *InputSystem {
	return &InputSystem{input: in}
}

func (i *InputSystem) Update(w *ecs.World, dt float64) {
	if w == nil || i.input == nil {
		return
	}

	state := i.input.Poll()
	jumpPressed := i.input.JustPressed(input.ActionJump)

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, in *component.Input) {
		in.State = state
		in.JumpPressed = jumpPressed
	})
}

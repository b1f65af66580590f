package component

import "github.com/milk9111/minigames/input"

// Input stores the action vector polled this frame. JumpPressed is the
// rising edge of the jump button.
type Input struct {
	State       input.ActionState
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()

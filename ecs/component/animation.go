package component

import "github.com/milk9111/minigames/animation"

// Animation drives one actor's state machine with its transition table.
type Animation struct {
	Machine     *animation.HFSM
	Transitions []animation.Transition
}

var AnimationComponent = NewComponent[Animation]()

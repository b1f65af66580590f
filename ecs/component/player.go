package component

import "github.com/milk9111/minigames/character"

type Player struct {
	Controller *character.Controller
	Motor      *character.Motor

	// grounded state seen last frame, for landing events
	WasGrounded bool
}

var PlayerComponent = NewComponent[Player]()

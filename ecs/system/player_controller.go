package system

import (
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
)

// PlayerControllerSystem runs each player's character controller against the
// physics world and reports jumps and ground changes as frame events.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	events := w.Events()
	ecs.ForEach2(w, component.PlayerComponent, component.InputComponent, func(e ecs.Entity, player *component.Player, in *component.Input) {
		if player.Controller == nil || player.Motor == nil {
			return
		}

		jumped := player.Motor.Move(player.Controller, in.State, dt)
		grounded := player.Controller.OnGround

		switch {
		case jumped:
			events.Push(ecs.Event{Kind: ecs.EventJumped, Entity: e, Data: player.Controller.Velocity.Y})
		case grounded && !player.WasGrounded:
			events.Push(ecs.Event{Kind: ecs.EventLanded, Entity: e})
		case !grounded && player.WasGrounded:
			events.Push(ecs.Event{Kind: ecs.EventLeftGround, Entity: e})
		}
		player.WasGrounded = grounded && !jumped
	})
}

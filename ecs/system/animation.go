package system

import (
	"github.com/milk9111/minigames/animation"
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/rs/zerolog/log"
)

// AnimationChange is the payload of an ecs.EventAnimation event.
type AnimationChange struct {
	From, To   animation.State
	Transition string
}

// AnimationSystem feeds controller motion into each actor's state machine.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	events := w.Events()
	ecs.ForEach3(w, component.AnimationComponent, component.PlayerComponent, component.InputComponent, func(e ecs.Entity, anim *component.Animation, player *component.Player, in *component.Input) {
		if anim.Machine == nil || player.Controller == nil {
			return
		}

		data := TransitionData(player, in)
		from := anim.Machine.Current
		tr, ok := anim.Machine.Update(data, dt, anim.Transitions)
		if !ok {
			return
		}

		log.Trace().Str("entity", e.String()).Str("from", from.String()).Str("to", tr.To.String()).Msg("Animation: transition")
		events.Push(ecs.Event{
			Kind:   ecs.EventAnimation,
			Entity: e,
			Data:   AnimationChange{From: from, To: tr.To, Transition: tr.Name},
		})
	})
}

// TransitionData summarizes a player's motion for the state machine.
func TransitionData(player *component.Player, in *component.Input) animation.TransitionData {
	c := player.Controller
	return animation.TransitionData{
		Speed:            c.HorizontalSpeed(),
		VerticalVelocity: c.Velocity.Y,
		Grounded:         c.OnGround,
		CoyoteTime:       c.CoyoteTime,
		AttackRequested:  in.State.Attack,
	}
}

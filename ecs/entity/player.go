package entity

import (
	"fmt"

	"github.com/milk9111/minigames/animation"
	"github.com/milk9111/minigames/character"
	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/milk9111/minigames/physics"
	"github.com/milk9111/minigames/prefabs"
)

const (
	PlayerName = "player"

	defaultPlayerWidth  = 0.8
	defaultPlayerHeight = 1.6
	playerMass          = 1
)

// NewPlayer spawns the player from the controller and animation prefabs at
// the prefab's spawn point.
func NewPlayer(w *ecs.World, pw *physics.World) (ecs.Entity, error) {
	ctrl, err := prefabs.LoadControllerSpec()
	if err != nil {
		return 0, err
	}
	return NewPlayerAt(w, pw, common.Vec3{X: ctrl.Spawn.X, Y: ctrl.Spawn.Y})
}

// NewPlayerAt spawns the player from prefabs at pos.
func NewPlayerAt(w *ecs.World, pw *physics.World, pos common.Vec3) (ecs.Entity, error) {
	ctrl, err := prefabs.LoadControllerSpec()
	if err != nil {
		return 0, err
	}
	anim, err := prefabs.LoadAnimationSpec()
	if err != nil {
		return 0, err
	}
	return BuildPlayer(w, pw, pos, *ctrl, *anim)
}

// BuildPlayer wires a character body, controller, motor and animation state
// machine onto a new entity.
func BuildPlayer(w *ecs.World, pw *physics.World, pos common.Vec3, ctrl prefabs.ControllerSpec, anim prefabs.AnimationSpec) (ecs.Entity, error) {
	width, height := ctrl.Width, ctrl.Height
	if width <= 0 {
		width = defaultPlayerWidth
	}
	if height <= 0 {
		height = defaultPlayerHeight
	}

	machine, transitions, err := animation.FromSpec(anim)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	pos.Z = 0
	body := pw.CreateCharacterBody(pos, playerMass)
	collider, err := pw.CreateBoxCollider(body, common.Vec3{X: width / 2, Y: height / 2})
	if err != nil {
		pw.DestroyBody(body)
		return 0, fmt.Errorf("player: collider: %w", err)
	}

	e := ecs.CreateEntity(w)
	motor := &character.Motor{World: pw, Body: body, HalfWidth: width / 2, HalfHeight: height / 2}

	adds := []func() error{
		func() error { return ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}) },
		func() error { return ecs.Add(w, e, component.NameComponent, component.Name{Value: PlayerName}) },
		func() error { return ecs.Add(w, e, component.InputComponent, component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.PlayerComponent, component.Player{
				Controller: character.NewFromSpec(ctrl),
				Motor:      motor,
			})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
				Body:     body,
				Collider: collider,
				Width:    width,
				Height:   height,
			})
		},
		func() error {
			return ecs.Add(w, e, component.TransformComponent, component.Transform{Transform: common.NewTransform(pos)})
		},
		func() error { return ecs.Add(w, e, component.VelocityComponent, component.Velocity{}) },
		func() error {
			return ecs.Add(w, e, component.AnimationComponent, component.Animation{Machine: machine, Transitions: transitions})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			pw.DestroyBody(body)
			return 0, fmt.Errorf("player: %w", err)
		}
	}
	return e, nil
}

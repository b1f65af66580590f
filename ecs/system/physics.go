package system

import (
	"github.com/milk9111/minigames/camera"
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/milk9111/minigames/physics"
)

// PhysicsSystem steps the physics world and copies body poses back onto
// Transform and Velocity components, pinned to the Z=0 plane.
type PhysicsSystem struct {
	world   *physics.World
	adapter camera.Side2DAdapter
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world, adapter: camera.NewSide2DAdapter()}
}

func (p *PhysicsSystem) World() *physics.World {
	return p.world
}

func (p *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if w == nil || p.world == nil || p.world.Closed() {
		return
	}

	p.world.Step(dt)
	w.Events().Push(ecs.Event{Kind: ecs.EventStepped, Data: dt})

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if !p.world.HasBody(body.Body) {
			return
		}
		t.Transform = p.adapter.ConstrainTransform(p.world.Transform(body.Body))
	})

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.VelocityComponent, func(e ecs.Entity, body *component.PhysicsBody, v *component.Velocity) {
		v.Linear = p.adapter.ConstrainVelocity(p.world.Velocity(body.Body))
	})
}

package component

import (
	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/physics"
)

// PhysicsBody links an entity to its body in the physics world.
type PhysicsBody struct {
	Body     physics.BodyHandle
	Collider physics.ColliderHandle
	Width    float64
	Height   float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Velocity mirrors the body's velocity after the physics step.
type Velocity struct {
	common.Velocity
}

var VelocityComponent = NewComponent[Velocity]()

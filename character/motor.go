package character

import (
	"math"

	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/input"
	"github.com/milk9111/minigames/physics"
)

const (
	groundedVelocityEpsilon = 0.01
	stepProbeLift           = 0.05
	stepProbeReach          = 0.1
	stepProbeInset          = 0.02
)

// Motor drives a controller through a physics body. The body should be a
// character body (see physics.World.CreateCharacterBody) so the engine
// resolves contacts while the controller owns gravity.
type Motor struct {
	World      *physics.World
	Body       physics.BodyHandle
	HalfWidth  float64
	HalfHeight float64
	Probe      float64
}

// Move runs one controller frame against the world: it reads back the
// body's vertical velocity, probes the ground, applies slope and step rules,
// then writes the new velocity to the body. It reports whether a jump fired.
func (m *Motor) Move(c *Controller, in input.ActionState, dt float64) bool {
	if m == nil || c == nil || !m.World.HasBody(m.Body) {
		return false
	}

	c.Velocity.Y = m.World.Velocity(m.Body).Y

	hit, ok := m.World.GroundProbe(m.Body, m.HalfHeight+m.probe())
	c.OnGround = ok && c.Velocity.Y <= groundedVelocityEpsilon
	if c.OnGround {
		ResolveSlopeCollision(c, hit.Normal)
	}

	jumped := Update(c, in, dt, m.World.Gravity())

	if c.OnGround && c.Velocity.X != 0 {
		if h, ok := m.ObstacleHeight(math.Copysign(1, c.Velocity.X), c.StepOffset); ok {
			pos := m.World.Position(m.Body)
			if lifted := HandleStepOffset(c, pos, h); lifted != pos {
				m.World.SetPosition(m.Body, lifted)
			}
		}
	}

	m.World.SetVelocity(m.Body, c.Velocity)
	return jumped
}

// ObstacleHeight looks just ahead of the actor's feet in direction dir
// (+1 right, -1 left) and returns the height of the obstacle there, measured
// from the feet, provided its top is within maxHeight.
func (m *Motor) ObstacleHeight(dir, maxHeight float64) (float64, bool) {
	feet := common.Vec3{Y: -m.HalfHeight + stepProbeLift}
	front, ok := m.World.RaycastFromOffset(m.Body, feet, common.Vec3{X: dir}, m.HalfWidth+stepProbeReach)
	if !ok {
		return 0, false
	}

	feetY := m.World.Position(m.Body).Y - m.HalfHeight
	top := common.Vec3{X: front.Point.X + dir*stepProbeInset, Y: feetY + maxHeight + stepProbeInset}
	surface, ok := m.World.Raycast(top, common.Vec3{Y: -1}, maxHeight+stepProbeInset)
	if !ok {
		return 0, false
	}
	h := surface.Point.Y - feetY
	if h < 1e-6 {
		return 0, false
	}
	return h, true
}

func (m *Motor) probe() float64 {
	if m.Probe > 0 {
		return m.Probe
	}
	if b := m.World.Backend(); b != nil {
		return b.GroundProbe
	}
	return 0.1
}

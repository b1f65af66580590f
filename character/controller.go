package character

import (
	"math"

	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/input"
	"github.com/milk9111/minigames/prefabs"
)

const (
	// DefaultCoyoteFrames is ~100 ms at 60 Hz.
	DefaultCoyoteFrames     = 6
	DefaultJumpBufferFrames = 6

	defaultSlopeLimit = math.Pi / 4
	defaultStepOffset = 0.3
)

// Controller is the per-actor kinematic state. Only Update, ResolveSlope and
// a Motor mutate it. Forgiveness windows are counted in frames, so they
// shrink in wall-clock terms when the frame rate drops.
type Controller struct {
	Velocity       common.Vec3
	OnGround       bool
	CoyoteTime     int
	JumpBuffer     int
	GroundedFrames int

	SlopeLimit float64 // radians
	StepOffset float64
	Speed      float64
	JumpForce  float64

	CoyoteFrames     int
	JumpBufferFrames int
}

func New(speed, jumpForce float64) *Controller {
	return &Controller{
		Speed:            speed,
		JumpForce:        jumpForce,
		SlopeLimit:       defaultSlopeLimit,
		StepOffset:       defaultStepOffset,
		CoyoteFrames:     DefaultCoyoteFrames,
		JumpBufferFrames: DefaultJumpBufferFrames,
	}
}

// NewFromSpec builds a controller from a prefab spec, keeping defaults for
// zero fields.
func NewFromSpec(spec prefabs.ControllerSpec) *Controller {
	c := New(spec.Speed, spec.JumpForce)
	c.Apply(spec)
	return c
}

// Apply retunes the controller in place without touching its runtime state.
// Zero fields keep the current tuning.
func (c *Controller) Apply(spec prefabs.ControllerSpec) {
	if spec.Speed > 0 {
		c.Speed = spec.Speed
	}
	if spec.JumpForce > 0 {
		c.JumpForce = spec.JumpForce
	}
	if spec.CoyoteFrames > 0 {
		c.CoyoteFrames = spec.CoyoteFrames
	}
	if spec.JumpBufferFrames > 0 {
		c.JumpBufferFrames = spec.JumpBufferFrames
	}
	if spec.SlopeLimitDeg > 0 {
		c.SlopeLimit = spec.SlopeLimitDeg * math.Pi / 180
	}
	if spec.StepOffset > 0 {
		c.StepOffset = spec.StepOffset
	}
}

// HorizontalSpeed is the magnitude of planar movement.
func (c *Controller) HorizontalSpeed() float64 {
	return math.Abs(c.Velocity.X)
}

// Update advances the controller by one frame and reports whether a jump
// fired. On the jump frame gravity is not applied, so Velocity.Y equals
// JumpForce afterwards.
func Update(c *Controller, in input.ActionState, dt float64, gravity common.Vec3) bool {
	if c == nil {
		return false
	}

	if c.OnGround {
		c.GroundedFrames++
		c.CoyoteTime = c.CoyoteFrames
	} else {
		c.GroundedFrames = 0
		c.CoyoteTime = max(c.CoyoteTime-1, 0)
	}

	if in.Jump {
		c.JumpBuffer = c.JumpBufferFrames
	} else {
		c.JumpBuffer = max(c.JumpBuffer-1, 0)
	}

	jumped := false
	if c.JumpBuffer > 0 && c.CoyoteTime > 0 {
		c.Velocity.Y = c.JumpForce
		c.JumpBuffer = 0
		c.CoyoteTime = 0
		c.OnGround = false
		jumped = true
	}

	c.Velocity.X = in.MoveX * c.Speed

	switch {
	case jumped:
	case !c.OnGround:
		c.Velocity.Y += gravity.Y * dt
	case c.Velocity.Y < 0:
		c.Velocity.Y = 0
	}
	c.Velocity.Z = 0
	return jumped
}

// ResolveSlopeCollision clears OnGround when the contact normal is steeper
// than SlopeLimit, and reports whether the surface is walkable.
func ResolveSlopeCollision(c *Controller, normal common.Vec3) bool {
	n := normal.Normalize()
	if n == (common.Vec3{}) {
		return c.OnGround
	}
	angle := math.Acos(common.Clamp(n.Y, -1, 1))
	if angle > c.SlopeLimit {
		c.OnGround = false
		return false
	}
	return true
}

// HandleStepOffset lifts pos onto an obstacle no taller than StepOffset.
// Taller obstacles leave pos unchanged; blocking them is the physics
// engine's job.
func HandleStepOffset(c *Controller, pos common.Vec3, obstacleHeight float64) common.Vec3 {
	if obstacleHeight <= 0 || obstacleHeight > c.StepOffset {
		return pos
	}
	pos.Y += obstacleHeight
	return pos
}

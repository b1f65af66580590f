package system

import (
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/input"
	"github.com/milk9111/minigames/physics"
)

// NewPipeline returns the per-frame schedule. The order is fixed: input,
// character controller, physics step, animation, camera. Each stage reads
// only what earlier stages wrote this frame.
func NewPipeline(in *input.System, world *physics.World) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewInputSystem(in),
		NewPlayerControllerSystem(),
		NewPhysicsSystem(world),
		NewAnimationSystem(),
		NewCameraSystem(),
	)
}

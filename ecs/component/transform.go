package component

import "github.com/milk9111/minigames/common"

// Transform is the pose written back from the physics world each frame.
type Transform struct {
	common.Transform
}

var TransformComponent = NewComponent[Transform]()

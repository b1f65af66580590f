package component

import "github.com/milk9111/minigames/camera"

// Camera follows the entity tagged TargetName.
type Camera struct {
	Rig        *camera.OrthoCameraRig
	Adapter    camera.Side2DAdapter
	TargetName string
}

var CameraComponent = NewComponent[Camera]()

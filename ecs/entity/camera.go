package entity

import (
	"fmt"

	"github.com/milk9111/minigames/camera"
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/milk9111/minigames/prefabs"
)

// NewCamera creates a camera entity following the entity named target.
func NewCamera(w *ecs.World, target string) (ecs.Entity, error) {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, err
	}
	return BuildCamera(w, spec, target)
}

func BuildCamera(w *ecs.World, spec *prefabs.CameraSpec, target string) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent, component.Camera{
		Rig:        camera.NewFromSpec(spec),
		Adapter:    camera.NewSide2DAdapter(),
		TargetName: target,
	}); err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return e, nil
}

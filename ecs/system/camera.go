package system

import (
	"github.com/milk9111/minigames/camera"
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
)

// CameraSystem makes each camera follow the entity named by its TargetName.
type CameraSystem struct {
	targets map[ecs.Entity]ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{targets: make(map[ecs.Entity]ecs.Entity)}
}

func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	_, lb, hasBounds := ecs.First(w, component.LevelBoundsComponent)

	ecs.ForEach(w, component.CameraComponent, func(camEntity ecs.Entity, cam *component.Camera) {
		if cam.Rig == nil {
			return
		}
		if hasBounds {
			if _, set := cam.Rig.WorldBounds(); !set {
				cam.Rig.SetWorldBounds(&camera.Bounds{MinX: lb.MinX, MinY: lb.MinY, MaxX: lb.MaxX, MaxY: lb.MaxY})
			}
		}

		target, ok := cs.targets[camEntity]
		if !ok || !ecs.IsAlive(w, target) {
			target = findEntityByName(w, cam.TargetName)
			if !target.Valid() {
				return
			}
			cs.targets[camEntity] = target
		}

		t, ok := ecs.Get(w, target, component.TransformComponent)
		if !ok {
			return
		}
		cam.Rig.Follow(cam.Adapter.ConstrainPosition(t.Position), dt)
	})
}

func findEntityByName(w *ecs.World, name string) ecs.Entity {
	if name == "" {
		return 0
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent, func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found
}

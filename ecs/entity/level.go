package entity

import (
	"fmt"

	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/milk9111/minigames/levels"
	"github.com/milk9111/minigames/physics"
)

// LoadLevel builds the named embedded level into both worlds.
func LoadLevel(w *ecs.World, pw *physics.World, name string) (*levels.Level, error) {
	lvl, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	if err := BuildLevel(w, pw, lvl); err != nil {
		return nil, err
	}
	return lvl, nil
}

// BuildLevel adds one StaticTile entity per merged collider and a
// LevelBounds entity for the camera. On error neither world keeps anything
// from the level.
func BuildLevel(w *ecs.World, pw *physics.World, lvl *levels.Level) error {
	bodies, err := lvl.Build(pw)
	if err != nil {
		return err
	}

	var created []ecs.Entity
	fail := func(err error) error {
		for _, e := range created {
			ecs.DestroyEntity(w, e)
		}
		for _, body := range bodies {
			pw.DestroyBody(body)
		}
		return fmt.Errorf("level: %w", err)
	}

	rects := lvl.SolidRects()
	for i, body := range bodies {
		half := rects[i].HalfExtents()
		e := ecs.CreateEntity(w)
		created = append(created, e)
		if err := ecs.Add(w, e, component.StaticTileComponent, component.StaticTile{Body: body, HalfW: half.X, HalfH: half.Y}); err != nil {
			return fail(err)
		}
	}

	b := lvl.Bounds()
	e := ecs.CreateEntity(w)
	created = append(created, e)
	if err := ecs.Add(w, e, component.LevelBoundsComponent, component.LevelBounds{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}); err != nil {
		return fail(err)
	}
	return nil
}

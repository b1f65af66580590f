package levels

import (
	"fmt"

	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/physics"
)

const (
	EntityPlayerSpawn = "player_spawn"

	// friction of merged tile colliders
	tileFriction = 0.9
)

// TileRect is a run of solid tiles in grid coordinates.
type TileRect struct {
	X, Y int
	W, H int
}

// Rect is an axis-aligned world rectangle, Y up.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (r Rect) Center() common.Vec3 {
	return common.Vec3{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

func (r Rect) HalfExtents() common.Vec3 {
	return common.Vec3{X: (r.MaxX - r.MinX) / 2, Y: (r.MaxY - r.MinY) / 2}
}

// MergeTiles covers the positive cells of layer with as few rectangles as a
// greedy scan finds: each unvisited tile grows right as far as possible, then
// down while whole rows match.
func MergeTiles(layer []int, width, height int) []TileRect {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	solid := func(x, y int) bool {
		idx := index(x, y)
		return idx < len(layer) && !visited[idx] && layer[idx] > 0
	}

	var rects []TileRect
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && solid(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !solid(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}
			rects = append(rects, TileRect{X: x, Y: y, W: maxW, H: maxH})
		}
	}
	return rects
}

// physicsLayer ORs every physics layer into one grid. Levels without layer
// metadata treat the first layer as solid.
func (l *Level) physicsLayer() []int {
	grid := make([]int, l.Width*l.Height)
	for i, layer := range l.Layers {
		if len(l.LayerMeta) == 0 {
			if i > 0 {
				break
			}
		} else if i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics {
			continue
		}
		for j := 0; j < len(layer) && j < len(grid); j++ {
			if layer[j] > 0 {
				grid[j] = 1
			}
		}
	}
	return grid
}

// WorldRect converts grid coordinates into world space with Y up and the
// bottom-left of the level at the origin.
func (l *Level) WorldRect(t TileRect) Rect {
	ts := l.TileSize
	return Rect{
		MinX: float64(t.X) * ts,
		MaxX: float64(t.X+t.W) * ts,
		MinY: float64(l.Height-t.Y-t.H) * ts,
		MaxY: float64(l.Height-t.Y) * ts,
	}
}

// SolidRects returns the merged colliders of every physics layer.
func (l *Level) SolidRects() []Rect {
	tiles := MergeTiles(l.physicsLayer(), l.Width, l.Height)
	rects := make([]Rect, 0, len(tiles))
	for _, t := range tiles {
		rects = append(rects, l.WorldRect(t))
	}
	return rects
}

func (l *Level) Bounds() Rect {
	return Rect{MaxX: float64(l.Width) * l.TileSize, MaxY: float64(l.Height) * l.TileSize}
}

// Spawn returns the centre of the player spawn tile.
func (l *Level) Spawn() (common.Vec3, bool) {
	for _, e := range l.Entities {
		if e.Type != EntityPlayerSpawn {
			continue
		}
		return l.WorldRect(TileRect{X: e.X, Y: e.Y, W: 1, H: 1}).Center(), true
	}
	return common.Vec3{}, false
}

// ColliderBuilder is the part of *physics.World a level needs.
type ColliderBuilder interface {
	CreateFixedBody(pos common.Vec3) physics.BodyHandle
	CreateBoxCollider(body physics.BodyHandle, halfExtents common.Vec3) (physics.ColliderHandle, error)
	SetFriction(h physics.ColliderHandle, friction float64)
	DestroyBody(h physics.BodyHandle) bool
}

// Build adds one fixed body with a box collider per merged rectangle. If any
// collider fails, every body created so far is destroyed again.
func (l *Level) Build(world ColliderBuilder) ([]physics.BodyHandle, error) {
	rects := l.SolidRects()
	bodies := make([]physics.BodyHandle, 0, len(rects))
	for _, r := range rects {
		body := world.CreateFixedBody(r.Center())
		col, err := world.CreateBoxCollider(body, r.HalfExtents())
		if err != nil {
			world.DestroyBody(body)
			for _, b := range bodies {
				world.DestroyBody(b)
			}
			return nil, fmt.Errorf("levels: collider at %.1f,%.1f: %w", r.MinX, r.MinY, err)
		}
		world.SetFriction(col, tileFriction)
		bodies = append(bodies, body)
	}
	return bodies, nil
}

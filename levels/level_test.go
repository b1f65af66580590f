package levels

import (
	"context"
	"errors"
	"testing"

	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/physics"
	"github.com/stretchr/testify/require"
)

func TestMergeTiles(t *testing.T) {
	cases := []struct {
		name   string
		layer  []int
		w, h   int
		expect []TileRect
	}{
		{name: "empty", layer: []int{0, 0, 0, 0}, w: 2, h: 2},
		{name: "single", layer: []int{0, 3, 0, 0}, w: 2, h: 2, expect: []TileRect{{X: 1, Y: 0, W: 1, H: 1}}},
		{name: "full block", layer: []int{1, 1, 1, 1, 1, 1}, w: 3, h: 2, expect: []TileRect{{X: 0, Y: 0, W: 3, H: 2}}},
		{name: "L shape", layer: []int{1, 0, 1, 0, 1, 1}, w: 2, h: 3, expect: []TileRect{{X: 0, Y: 0, W: 1, H: 3}, {X: 1, Y: 2, W: 1, H: 1}}},
		{name: "short layer", layer: []int{1, 1}, w: 2, h: 2, expect: []TileRect{{X: 0, Y: 0, W: 2, H: 1}}},
		{name: "bad size", layer: []int{1}, w: 0, h: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, MergeTiles(tc.layer, tc.w, tc.h))
		})
	}
}

func TestMergeCoversEveryTileOnce(t *testing.T) {
	lvl, err := Load(DefaultLevel)
	require.NoError(t, err)

	grid := lvl.physicsLayer()
	covered := make([]int, len(grid))
	for _, r := range MergeTiles(grid, lvl.Width, lvl.Height) {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				covered[y*lvl.Width+x]++
			}
		}
	}
	for i, v := range grid {
		require.Equal(t, v, covered[i], "tile %d", i)
	}
}

func TestWorldRect(t *testing.T) {
	lvl := &Level{Width: 10, Height: 4, TileSize: 2}
	r := lvl.WorldRect(TileRect{X: 1, Y: 3, W: 2, H: 1})
	require.Equal(t, Rect{MinX: 2, MinY: 0, MaxX: 6, MaxY: 2}, r)
	require.Equal(t, common.Vec3{X: 4, Y: 1}, r.Center())
	require.Equal(t, common.Vec3{X: 2, Y: 1}, r.HalfExtents())
	require.Equal(t, Rect{MaxX: 20, MaxY: 8}, lvl.Bounds())
}

func TestPhysicsLayers(t *testing.T) {
	lvl := &Level{
		Width:     2,
		Height:    1,
		Layers:    [][]int{{1, 0}, {0, 1}},
		LayerMeta: []LayerMeta{{Physics: false}, {Physics: true}},
	}
	require.Equal(t, []int{0, 1}, lvl.physicsLayer())

	lvl.LayerMeta = nil
	require.Equal(t, []int{1, 0}, lvl.physicsLayer())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("missing")
	require.Error(t, err)

	_, err = Parse([]byte(`{"width": 0, "height": 3}`))
	require.Error(t, err)

	_, err = Parse([]byte(`{`))
	require.Error(t, err)

	lvl, err := Parse([]byte(`{"width": 1, "height": 1}`))
	require.NoError(t, err)
	require.Equal(t, 1.0, lvl.TileSize)

	bad := []struct {
		name string
		data string
	}{
		{"short layer", `{"width": 4, "height": 2, "layers": [[1, 1]]}`},
		{"long layer", `{"width": 1, "height": 1, "layers": [[1, 1]]}`},
		{"second layer short", `{"width": 2, "height": 1, "layers": [[1, 1], [1]]}`},
		{"extra layer_meta", `{"width": 1, "height": 1, "layers": [[1]], "layer_meta": [{"physics": true}, {"physics": false}]}`},
		{"entity right of grid", `{"width": 2, "height": 2, "entities": [{"type": "player_spawn", "x": 2, "y": 0}]}`},
		{"entity above grid", `{"width": 2, "height": 2, "entities": [{"type": "player_spawn", "x": 0, "y": -1}]}`},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.Error(t, err)
		})
	}

	lvl, err = Parse([]byte(`{"width": 2, "height": 1, "layers": [[1, 0]], "entities": [{"type": "player_spawn", "x": 1, "y": 0}]}`))
	require.NoError(t, err)
	_, ok := lvl.Spawn()
	require.True(t, ok)
}

func TestArenaBuild(t *testing.T) {
	lvl, err := Load(DefaultLevel)
	require.NoError(t, err)

	spawn, ok := lvl.Spawn()
	require.True(t, ok)
	require.Equal(t, common.Vec3{X: 3.5, Y: 4.5}, spawn)

	loader := physics.NewLoader(func() (*physics.Backend, error) {
		return &physics.Backend{Iterations: 10, Friction: 0.8, GroundProbe: 0.1}, nil
	})
	world, err := loader.CreateWorld(context.Background(), common.Vec3{Y: -30})
	require.NoError(t, err)
	defer world.Close()

	bodies, err := lvl.Build(world)
	require.NoError(t, err)
	require.Len(t, bodies, len(lvl.SolidRects()))
	for _, b := range bodies {
		require.Equal(t, physics.BodyFixed, world.Kind(b))
	}

	hit, ok := world.Raycast(spawn, common.Vec3{Y: -1}, 10)
	require.True(t, ok)
	require.InDelta(t, 2.0, hit.Point.Y, 1e-6)
	require.InDelta(t, 2.5, hit.Distance, 1e-6)
}

var errColliderFull = errors.New("collider table full")

// failingBuilder refuses the collider after ok successful ones.
type failingBuilder struct {
	*physics.World
	ok      int
	created []physics.BodyHandle
}

func (b *failingBuilder) CreateFixedBody(pos common.Vec3) physics.BodyHandle {
	h := b.World.CreateFixedBody(pos)
	b.created = append(b.created, h)
	return h
}

func (b *failingBuilder) CreateBoxCollider(body physics.BodyHandle, half common.Vec3) (physics.ColliderHandle, error) {
	if b.ok == 0 {
		return 0, errColliderFull
	}
	b.ok--
	return b.World.CreateBoxCollider(body, half)
}

func TestBuildCleansUpOnError(t *testing.T) {
	lvl, err := Load(DefaultLevel)
	require.NoError(t, err)
	require.Greater(t, len(lvl.SolidRects()), 2)

	loader := physics.NewLoader(func() (*physics.Backend, error) {
		return &physics.Backend{Iterations: 10, Friction: 0.8, GroundProbe: 0.1}, nil
	})
	world, err := loader.CreateWorld(context.Background(), common.Vec3{Y: -30})
	require.NoError(t, err)
	defer world.Close()

	fb := &failingBuilder{World: world, ok: 2}
	bodies, err := lvl.Build(fb)
	require.ErrorIs(t, err, errColliderFull)
	require.Nil(t, bodies)
	require.Len(t, fb.created, 3)
	for _, h := range fb.created {
		require.False(t, world.HasBody(h))
	}

	world.Close()
	bodies, err = lvl.Build(world)
	require.ErrorIs(t, err, physics.ErrClosed)
	require.Nil(t, bodies)
}

func TestSpawnMissing(t *testing.T) {
	lvl := &Level{Width: 1, Height: 1, TileSize: 1}
	_, ok := lvl.Spawn()
	require.False(t, ok)
}

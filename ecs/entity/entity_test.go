package entity

import (
	"context"
	"testing"

	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/milk9111/minigames/levels"
	"github.com/milk9111/minigames/physics"
	"github.com/milk9111/minigames/prefabs"
	"github.com/stretchr/testify/require"
)

func testWorlds(t *testing.T) (*ecs.World, *physics.World) {
	t.Helper()
	loader := physics.NewLoader(func() (*physics.Backend, error) {
		return &physics.Backend{Iterations: 10, Friction: 0.8, GroundProbe: 0.1}, nil
	})
	pw, err := loader.CreateWorld(context.Background(), common.Vec3{Y: -30})
	require.NoError(t, err)
	t.Cleanup(pw.Close)
	return ecs.NewWorld(), pw
}

func TestBuildPlayer(t *testing.T) {
	w, pw := testWorlds(t)

	e, err := NewPlayerAt(w, pw, common.Vec3{X: 2, Y: 3, Z: 9})
	require.NoError(t, err)

	require.True(t, ecs.Has(w, e, component.PlayerTagComponent))
	require.True(t, ecs.Has(w, e, component.InputComponent))
	require.True(t, ecs.Has(w, e, component.VelocityComponent))

	name, ok := ecs.Get(w, e, component.NameComponent)
	require.True(t, ok)
	require.Equal(t, PlayerName, name.Value)

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	require.True(t, ok)
	require.Equal(t, physics.BodyDynamic, pw.Kind(body.Body))
	require.Equal(t, common.Vec3{X: 2, Y: 3}, pw.Position(body.Body))
	require.Equal(t, 0.8, body.Width)

	player, ok := ecs.Get(w, e, component.PlayerComponent)
	require.True(t, ok)
	require.Equal(t, 6.0, player.Controller.Speed)
	require.Equal(t, body.Body, player.Motor.Body)

	anim, ok := ecs.Get(w, e, component.AnimationComponent)
	require.True(t, ok)
	require.NotEmpty(t, anim.Transitions)
}

func TestBuildPlayerBadAnimation(t *testing.T) {
	w, pw := testWorlds(t)

	anim := prefabs.AnimationSpec{Transitions: []prefabs.TransitionSpec{{From: "idle", To: "walk", When: "speed >"}}}
	_, err := BuildPlayer(w, pw, common.Vec3{}, prefabs.ControllerSpec{Speed: 1}, anim)
	require.Error(t, err)
	require.Empty(t, ecs.Entities(w))
}

func TestBuildLevel(t *testing.T) {
	w, pw := testWorlds(t)

	lvl, err := LoadLevel(w, pw, levels.DefaultLevel)
	require.NoError(t, err)

	var tiles int
	ecs.ForEach(w, component.StaticTileComponent, func(_ ecs.Entity, st *component.StaticTile) {
		tiles++
		require.True(t, pw.HasBody(st.Body))
		require.Greater(t, st.HalfW, 0.0)
	})
	require.Equal(t, len(lvl.SolidRects()), tiles)

	_, lb, ok := ecs.First(w, component.LevelBoundsComponent)
	require.True(t, ok)
	require.Equal(t, float64(lvl.Width), lb.MaxX)
}

func TestBuildLevelClosedWorld(t *testing.T) {
	w, pw := testWorlds(t)
	pw.Close()

	lvl, err := LoadLevel(w, pw, levels.DefaultLevel)
	require.ErrorIs(t, err, physics.ErrClosed)
	require.Nil(t, lvl)
	require.Empty(t, ecs.Entities(w))
}

func TestBuildCamera(t *testing.T) {
	w, _ := testWorlds(t)

	e, err := NewCamera(w, PlayerName)
	require.NoError(t, err)

	cam, ok := ecs.Get(w, e, component.CameraComponent)
	require.True(t, ok)
	require.True(t, cam.Adapter.ClampZ)
	require.Equal(t, PlayerName, cam.TargetName)
	require.Equal(t, 7.0, cam.Rig.Size)
}

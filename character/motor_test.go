package character

import (
	"context"
	"testing"

	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/input"
	"github.com/milk9111/minigames/physics"
	"github.com/stretchr/testify/require"
)

func testLoader() *physics.Loader {
	return physics.NewLoader(func() (*physics.Backend, error) {
		return &physics.Backend{Iterations: 10, Friction: 0.8, GroundProbe: 0.1}, nil
	})
}

func newArena(t *testing.T) (*physics.World, *Motor) {
	t.Helper()
	w, err := testLoader().CreateWorld(context.Background(), gravity)
	require.NoError(t, err)

	floor := w.CreateFixedBody(common.Vec3{Y: -0.5})
	_, err = w.CreateBoxCollider(floor, common.Vec3{X: 50, Y: 0.5})
	require.NoError(t, err)

	body := w.CreateCharacterBody(common.Vec3{Y: 0.8}, 1)
	_, err = w.CreateBoxCollider(body, common.Vec3{X: 0.4, Y: 0.8})
	require.NoError(t, err)

	return w, &Motor{World: w, Body: body, HalfWidth: 0.4, HalfHeight: 0.8}
}

func addBlock(t *testing.T, w *physics.World, left, height float64) {
	t.Helper()
	b := w.CreateFixedBody(common.Vec3{X: left + 1, Y: height / 2})
	_, err := w.CreateBoxCollider(b, common.Vec3{X: 1, Y: height / 2})
	require.NoError(t, err)
}

func TestMotorGroundsAndJumps(t *testing.T) {
	w, m := newArena(t)
	c := New(6, 12)

	for _i := 0; _i < 10; _i++ {
		m.Move(c, input.ActionState{}, frame)
		w.Step(frame)
	}
	require.True(t, c.OnGround)
	require.InDelta(t, 0.8, w.Position(m.Body).Y, 0.15)

	require.True(t, m.Move(c, input.ActionState{Jump: true}, frame))
	require.Equal(t, 12.0, w.Velocity(m.Body).Y)
	w.Step(frame)

	require.False(t, m.Move(c, input.ActionState{Jump: true}, frame), "no double jump while rising")
	require.False(t, c.OnGround)
}

func TestMotorUnknownBody(t *testing.T) {
	w, m := newArena(t)
	w.DestroyBody(m.Body)
	c := New(6, 12)
	require.False(t, m.Move(c, input.ActionState{Jump: true, MoveX: 1}, frame))
	require.Equal(t, common.Vec3{}, c.Velocity)
}

func TestObstacleHeight(t *testing.T) {
	cases := []struct {
		name   string
		left   float64
		height float64
		dir    float64
		want   float64
		found  bool
	}{
		{"low_step_ahead", 0.45, 0.2, 1, 0.2, true},
		{"step_behind", 0.45, 0.2, -1, 0, false},
		{"step_out_of_reach", 2, 0.2, 1, 0, false},
		{"wall_too_tall", 0.45, 2, 1, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, m := newArena(t)
			addBlock(t, w, tc.left, tc.height)

			h, ok := m.ObstacleHeight(tc.dir, 0.3)
			if !tc.found {
				if ok {
					require.Greater(t, h, 0.3, "anything found must be too tall to climb")
				}
				return
			}
			require.True(t, ok)
			require.InDelta(t, tc.want, h, 1e-6)
		})
	}
}

func TestMotorBlockedByWall(t *testing.T) {
	w, m := newArena(t)
	addBlock(t, w, 1, 3)
	c := New(6, 12)

	for _i := 0; _i < 90; _i++ {
		m.Move(c, input.ActionState{MoveX: 1}, frame)
		w.Step(frame)
	}
	require.Less(t, w.Position(m.Body).X, 0.8)
	require.Zero(t, w.Position(m.Body).Z)
}

package physics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/milk9111/minigames/common"
	"github.com/stretchr/testify/require"
)

func testWorld(gravity common.Vec3) *World {
	return newWorld(&Backend{Iterations: 10, Friction: 0.8, GroundProbe: 0.1}, gravity)
}

func TestLoaderRunsOnce(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(func() (*Backend, error) {
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return &Backend{Iterations: 4}, nil
	})

	var wg sync.WaitGroup
	worlds := make([]*World, 8)
	errs := make([]error, len(worlds))
	for i := range worlds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			worlds[i], errs[i] = l.CreateWorld(context.Background(), common.Vec3{Y: -9.8})
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for i, w := range worlds {
		require.NoError(t, errs[i])
		require.Same(t, worlds[0].Backend(), w.Backend())
		if i > 0 {
			require.NotSame(t, worlds[0], w, "each caller gets its own world")
		}
	}
}

func TestLoaderFailurePropagates(t *testing.T) {
	var calls atomic.Int32
	cause := errors.New("module missing")
	l := NewLoader(func() (*Backend, error) {
		calls.Add(1)
		return nil, cause
	})

	for _i := 0; _i < 3; _i++ {
		w, err := l.CreateWorld(context.Background(), common.Vec3{})
		require.Nil(t, w)
		require.ErrorIs(t, err, ErrBackendUnavailable)
		require.ErrorIs(t, err, cause)
	}
	require.Equal(t, int32(1), calls.Load(), "a failed load is not retried")
}

func TestLoaderHonoursContext(t *testing.T) {
	release := make(chan struct{})
	l := NewLoader(func() (*Backend, error) {
		<-release
		return &Backend{Iterations: 1}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	b, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, b.Iterations)
}

func TestCreateWorldDefaultBackend(t *testing.T) {
	w, err := CreateWorld(context.Background(), common.Vec3{Y: -30, Z: 4})
	require.NoError(t, err)
	require.Equal(t, common.Vec3{Y: -30}, w.Gravity(), "Z is dropped")
	require.Positive(t, w.Backend().Iterations)
}

func TestUnknownHandlesReadZero(t *testing.T) {
	w := testWorld(common.Vec3{})
	cases := []struct {
		name string
		h    BodyHandle
	}{
		{"zero", 0},
		{"never_issued", BodyHandle(makeHandle(42, 0))},
		{"wrong_generation", BodyHandle(makeHandle(0, 7))},
	}
	w.CreateDynamicBody(common.Vec3{X: 1, Y: 2}, 1)

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.False(t, w.HasBody(c.h))
			require.Equal(t, common.Vec3{}, w.Position(c.h))
			require.Equal(t, common.Vec3{}, w.Velocity(c.h))
			require.Equal(t, common.IdentityQuat, w.Rotation(c.h))
			w.SetVelocity(c.h, common.Vec3{X: 1})
			w.SetPosition(c.h, common.Vec3{X: 1})
			require.False(t, w.DestroyBody(c.h))

			_, err := w.CreateBoxCollider(c.h, common.Vec3{X: 1, Y: 1})
			require.ErrorIs(t, err, ErrUnknownBody)
		})
	}
}

func TestDestroyBodyInvalidatesHandles(t *testing.T) {
	w := testWorld(common.Vec3{})
	b := w.CreateDynamicBody(common.Vec3{X: 3, Y: 4}, 1)
	c, err := w.CreateSphereCollider(b, 0.5)
	require.NoError(t, err)
	require.Equal(t, common.Vec3{X: 3, Y: 4}, w.Position(b))
	require.Equal(t, []ColliderHandle{c}, w.Colliders(b))

	require.True(t, w.DestroyBody(b))
	require.False(t, w.DestroyBody(b))
	require.False(t, w.HasBody(b))
	require.False(t, w.HasCollider(c))
	require.Equal(t, common.Vec3{}, w.Position(b))

	reused := w.CreateFixedBody(common.Vec3{X: 9})
	require.NotEqual(t, b, reused, "slot reuse bumps the generation")
	require.Equal(t, common.Vec3{}, w.Position(b))
	require.Equal(t, common.Vec3{X: 9}, w.Position(reused))
}

func TestCloseInvalidatesWorld(t *testing.T) {
	w := testWorld(common.Vec3{Y: -10})
	b := w.CreateDynamicBody(common.Vec3{Y: 1}, 1)
	w.Close()
	w.Close()

	require.True(t, w.Closed())
	require.False(t, w.HasBody(b))
	require.False(t, w.CreateDynamicBody(common.Vec3{}, 1).Valid())
	w.Step(1.0 / 60)
	_, err := w.CreateBoxCollider(b, common.Vec3{X: 1, Y: 1})
	require.ErrorIs(t, err, ErrClosed)
}

func TestCheckGrounded(t *testing.T) {
	w := testWorld(common.Vec3{Y: -10})
	floor := w.CreateFixedBody(common.Vec3{})
	_, err := w.CreateBoxCollider(floor, common.Vec3{X: 10, Y: 0.5})
	require.NoError(t, err)

	cases := []struct {
		name     string
		from     common.Vec3
		distance float64
		want     bool
	}{
		{"reaches_floor", common.Vec3{Y: 1}, 0.6, true},
		{"too_short", common.Vec3{Y: 1}, 0.4, false},
		{"past_edge", common.Vec3{X: 12, Y: 1}, 0.6, false},
		{"z_ignored", common.Vec3{Y: 1, Z: 50}, 0.6, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, w.CheckGrounded(c.from, c.distance))
		})
	}
}

func TestGroundProbeSkipsOwnCollider(t *testing.T) {
	w := testWorld(common.Vec3{})
	floor := w.CreateFixedBody(common.Vec3{})
	_, err := w.CreateBoxCollider(floor, common.Vec3{X: 10, Y: 0.5})
	require.NoError(t, err)

	actor := w.CreateCharacterBody(common.Vec3{Y: 1.5}, 1)
	_, err = w.CreateBoxCollider(actor, common.Vec3{X: 0.4, Y: 0.9})
	require.NoError(t, err)

	hit, ok := w.GroundProbe(actor, 1.1)
	require.True(t, ok)
	require.Equal(t, floor, hit.Body)
	require.InDelta(t, 0.5, hit.Point.Y, 1e-6)
	require.InDelta(t, 1.0, hit.Normal.Y, 1e-6)
	require.InDelta(t, 1.0, hit.Distance, 1e-6)

	require.False(t, w.CheckGroundedFrom(actor, 0.9))
}

func TestStepIntegration(t *testing.T) {
	w := testWorld(common.Vec3{Y: -10})
	falling := w.CreateDynamicBody(common.Vec3{Y: 10}, 1)
	_, err := w.CreateSphereCollider(falling, 0.5)
	require.NoError(t, err)

	floating := w.CreateCharacterBody(common.Vec3{X: 5, Y: 10}, 1)
	_, err = w.CreateCapsuleCollider(floating, 0.5, 0.3)
	require.NoError(t, err)
	w.SetVelocity(floating, common.Vec3{X: 2, Z: 9})

	for _i := 0; _i < 30; _i++ {
		w.Step(1.0 / 60)
	}

	require.Less(t, w.Position(falling).Y, 10.0)
	require.Less(t, w.Velocity(falling).Y, 0.0)

	require.InDelta(t, 10.0, w.Position(floating).Y, 1e-9, "character bodies ignore world gravity")
	require.InDelta(t, 6.0, w.Position(floating).X, 1e-6)
	require.Zero(t, w.Position(floating).Z)
}

func TestKinematicBodyMoves(t *testing.T) {
	w := testWorld(common.Vec3{Y: -10})
	platform := w.CreateKinematicBody(common.Vec3{})
	require.Equal(t, BodyKinematic, w.Kind(platform))
	w.SetVelocity(platform, common.Vec3{X: 1})
	for _i := 0; _i < 60; _i++ {
		w.Step(1.0 / 60)
	}
	require.InDelta(t, 1.0, w.Position(platform).X, 1e-6)
	require.InDelta(t, 0.0, w.Position(platform).Y, 1e-9)
}

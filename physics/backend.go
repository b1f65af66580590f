package physics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/prefabs"
	"github.com/rs/zerolog/log"
)

// ErrBackendUnavailable wraps every backend load failure.
var ErrBackendUnavailable = errors.New("physics: backend unavailable")

// Backend is the loaded, process-wide physics engine configuration.
type Backend struct {
	Iterations     int
	Friction       float64
	GroundProbe    float64
	DefaultGravity common.Vec3
}

// Loader memoizes a backend load. The load function runs at most once; every
// caller, including those that arrive while it is running, observes the same
// result.
type Loader struct {
	load func() (*Backend, error)

	once    sync.Once
	done    chan struct{}
	backend *Backend
	err     error
}

func NewLoader(load func() (*Backend, error)) *Loader {
	return &Loader{load: load, done: make(chan struct{})}
}

// Load starts the backend load on first use and waits for it. Cancelling ctx
// abandons the wait, not the load.
func (l *Loader) Load(ctx context.Context) (*Backend, error) {
	l.once.Do(func() {
		go func() {
			defer close(l.done)
			b, err := l.load()
			if err != nil {
				l.err = fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
				log.Error().Err(err).Msg("Physics: backend load failed")
				return
			}
			if b == nil {
				l.err = fmt.Errorf("%w: nil backend", ErrBackendUnavailable)
				return
			}
			l.backend = b
			log.Info().Int("iterations", b.Iterations).Msg("Physics: backend loaded")
		}()
	})

	select {
	case <-l.done:
		return l.backend, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CreateWorld waits for the backend and builds a world with gravity.
func (l *Loader) CreateWorld(ctx context.Context, gravity common.Vec3) (*World, error) {
	b, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return newWorld(b, gravity), nil
}

var defaultLoader = NewLoader(loadBackend)

// CreateWorld builds a world on the process-wide backend, loading it on the
// first call.
func CreateWorld(ctx context.Context, gravity common.Vec3) (*World, error) {
	return defaultLoader.CreateWorld(ctx, gravity)
}

// DefaultBackend returns the process-wide backend, loading it if needed.
func DefaultBackend(ctx context.Context) (*Backend, error) {
	return defaultLoader.Load(ctx)
}

func loadBackend() (*Backend, error) {
	spec, err := prefabs.LoadPhysicsSpec()
	if err != nil {
		return nil, err
	}
	b := &Backend{
		Iterations:  spec.Iterations,
		Friction:    spec.Friction,
		GroundProbe: spec.GroundProbe,
		DefaultGravity: common.Vec3{
			X: spec.Gravity.X,
			Y: spec.Gravity.Y,
		},
	}
	if b.Iterations <= 0 {
		b.Iterations = 10
	}
	if b.GroundProbe <= 0 {
		b.GroundProbe = 0.1
	}
	return b, nil
}

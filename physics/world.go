package physics

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/minigames/common"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownBody = errors.New("physics: unknown body")
	ErrClosed      = errors.New("physics: world closed")
)

type bodySlot struct {
	body      *cp.Body
	kind      BodyKind
	colliders []ColliderHandle
	gen       uint32
	alive     bool
}

type colliderSlot struct {
	shape *cp.Shape
	body  BodyHandle
	gen   uint32
	alive bool
}

// World owns a Chipmunk space and every body and collider in it. The
// simulation runs in the XY plane: Z components of inputs are ignored and
// every returned vector has Z == 0. Callers only ever hold handles; a handle
// that is unknown or stale reads as the zero value.
type World struct {
	backend *Backend
	space   *cp.Space
	gravity common.Vec3

	bodies        []bodySlot
	freeBodies    []int
	colliders     []colliderSlot
	freeColliders []int

	shapeToBody map[*cp.Shape]BodyHandle
}

func newWorld(b *Backend, gravity common.Vec3) *World {
	space := cp.NewSpace()
	space.Iterations = uint(b.Iterations)
	space.SetGravity(toCP(gravity))
	return &World{
		backend: b,
		space:   space,
		gravity: common.Vec3{X: gravity.X, Y: gravity.Y},

		shapeToBody: make(map[*cp.Shape]BodyHandle),
	}
}

// Gravity returns the plane-constrained gravity vector.
func (w *World) Gravity() common.Vec3 {
	if w == nil {
		return common.Vec3{}
	}
	return w.gravity
}

// Backend returns the backend the world was built on.
func (w *World) Backend() *Backend {
	if w == nil {
		return nil
	}
	return w.backend
}

// Closed reports whether Close has been called.
func (w *World) Closed() bool {
	return w == nil || w.space == nil
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w.Closed() || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// DrawDebug walks every shape of the space through d. Coordinates handed
// to d are world units.
func (w *World) DrawDebug(d cp.Drawer) {
	if w.Closed() || d == nil {
		return
	}
	cp.DrawSpace(w.space, d)
}

// Close destroys every body and releases the space. Handles issued by the
// world become stale.
func (w *World) Close() {
	if w.Closed() {
		return
	}
	for i := range w.bodies {
		if w.bodies[i].alive {
			w.DestroyBody(BodyHandle(makeHandle(i, w.bodies[i].gen)))
		}
	}
	w.space = nil
	log.Debug().Msg("Physics: world closed")
}

func (w *World) CreateDynamicBody(pos common.Vec3, mass float64) BodyHandle {
	if mass <= 0 {
		mass = 1
	}
	return w.addBody(cp.NewBody(mass, cp.MomentForBox(mass, 1, 1)), BodyDynamic, pos)
}

// CreateCharacterBody creates a dynamic body that never rotates and ignores
// world gravity; its owner integrates vertical velocity itself.
func (w *World) CreateCharacterBody(pos common.Vec3, mass float64) BodyHandle {
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, 1, dt)
	})
	return w.addBody(body, BodyDynamic, pos)
}

func (w *World) CreateFixedBody(pos common.Vec3) BodyHandle {
	return w.addBody(cp.NewStaticBody(), BodyFixed, pos)
}

func (w *World) CreateKinematicBody(pos common.Vec3) BodyHandle {
	return w.addBody(cp.NewKinematicBody(), BodyKinematic, pos)
}

func (w *World) addBody(body *cp.Body, kind BodyKind, pos common.Vec3) BodyHandle {
	if w.Closed() {
		return 0
	}
	body.SetPosition(toCP(pos))
	w.space.AddBody(body)

	var idx int
	if n := len(w.freeBodies); n > 0 {
		idx = w.freeBodies[n-1]
		w.freeBodies = w.freeBodies[:n-1]
	} else {
		w.bodies = append(w.bodies, bodySlot{})
		idx = len(w.bodies) - 1
	}
	slot := &w.bodies[idx]
	slot.body = body
	slot.kind = kind
	slot.colliders = slot.colliders[:0]
	slot.alive = true
	return BodyHandle(makeHandle(idx, slot.gen))
}

func (w *World) bodySlot(h BodyHandle) *bodySlot {
	if w.Closed() {
		return nil
	}
	idx, gen, ok := splitHandle(uint64(h))
	if !ok || idx >= len(w.bodies) {
		return nil
	}
	slot := &w.bodies[idx]
	if !slot.alive || slot.gen != gen {
		return nil
	}
	return slot
}

func (w *World) colliderSlot(h ColliderHandle) *colliderSlot {
	if w.Closed() {
		return nil
	}
	idx, gen, ok := splitHandle(uint64(h))
	if !ok || idx >= len(w.colliders) {
		return nil
	}
	slot := &w.colliders[idx]
	if !slot.alive || slot.gen != gen {
		return nil
	}
	return slot
}

// HasBody reports whether h refers to a live body.
func (w *World) HasBody(h BodyHandle) bool {
	return w.bodySlot(h) != nil
}

// HasCollider reports whether h refers to a live collider.
func (w *World) HasCollider(h ColliderHandle) bool {
	return w.colliderSlot(h) != nil
}

// Kind returns the body kind, BodyDynamic for unknown handles.
func (w *World) Kind(h BodyHandle) BodyKind {
	if slot := w.bodySlot(h); slot != nil {
		return slot.kind
	}
	return BodyDynamic
}

// DestroyBody removes a body and all of its colliders. It reports false for
// unknown or already destroyed handles.
func (w *World) DestroyBody(h BodyHandle) bool {
	slot := w.bodySlot(h)
	if slot == nil {
		return false
	}
	for _, ch := range slot.colliders {
		w.destroyCollider(ch)
	}
	w.space.RemoveBody(slot.body)
	idx, _, _ := splitHandle(uint64(h))
	slot.body = nil
	slot.colliders = slot.colliders[:0]
	slot.alive = false
	slot.gen++
	w.freeBodies = append(w.freeBodies, idx)
	return true
}

func (w *World) destroyCollider(h ColliderHandle) {
	slot := w.colliderSlot(h)
	if slot == nil {
		return
	}
	w.space.RemoveShape(slot.shape)
	delete(w.shapeToBody, slot.shape)
	idx, _, _ := splitHandle(uint64(h))
	slot.shape = nil
	slot.alive = false
	slot.gen++
	w.freeColliders = append(w.freeColliders, idx)
}

// Position returns the body position, or the zero vector for unknown handles.
func (w *World) Position(h BodyHandle) common.Vec3 {
	if slot := w.bodySlot(h); slot != nil {
		return fromCP(slot.body.Position())
	}
	return common.Vec3{}
}

// Velocity returns the linear velocity, or the zero vector for unknown handles.
func (w *World) Velocity(h BodyHandle) common.Vec3 {
	if slot := w.bodySlot(h); slot != nil {
		return fromCP(slot.body.Velocity())
	}
	return common.Vec3{}
}

// Rotation returns the body rotation about Z as a quaternion.
func (w *World) Rotation(h BodyHandle) common.Quat {
	if slot := w.bodySlot(h); slot != nil {
		return common.QuatFromAngleZ(slot.body.Angle())
	}
	return common.IdentityQuat
}

// Transform composes position and rotation for the renderer.
func (w *World) Transform(h BodyHandle) common.Transform {
	t := common.NewTransform(w.Position(h))
	t.Rotation = w.Rotation(h)
	return t
}

func (w *World) SetPosition(h BodyHandle, pos common.Vec3) {
	slot := w.bodySlot(h)
	if slot == nil {
		return
	}
	slot.body.SetPosition(toCP(pos))
	if slot.kind == BodyFixed {
		w.space.ReindexShapesForBody(slot.body)
	}
}

func (w *World) SetVelocity(h BodyHandle, vel common.Vec3) {
	slot := w.bodySlot(h)
	if slot == nil || slot.kind == BodyFixed {
		return
	}
	slot.body.SetVelocityVector(toCP(vel))
}

func toCP(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) common.Vec3 {
	return common.Vec3{X: v.X, Y: v.Y}
}

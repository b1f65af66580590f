package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/minigames/common"
)

// CreateBoxCollider attaches an axis-aligned box centred on the body.
func (w *World) CreateBoxCollider(body BodyHandle, halfExtents common.Vec3) (ColliderHandle, error) {
	return w.attach(body, func(b *cp.Body) *cp.Shape {
		return cp.NewBox(b, 2*halfExtents.X, 2*halfExtents.Y, 0)
	})
}

// CreateSphereCollider attaches a circle, the plane section of a sphere.
func (w *World) CreateSphereCollider(body BodyHandle, radius float64) (ColliderHandle, error) {
	return w.attach(body, func(b *cp.Body) *cp.Shape {
		return cp.NewCircle(b, radius, cp.Vector{})
	})
}

// CreateCapsuleCollider attaches a vertical capsule: a segment from
// -halfHeight to +halfHeight swept by radius.
func (w *World) CreateCapsuleCollider(body BodyHandle, halfHeight, radius float64) (ColliderHandle, error) {
	return w.attach(body, func(b *cp.Body) *cp.Shape {
		return cp.NewSegment(b, cp.Vector{Y: -halfHeight}, cp.Vector{Y: halfHeight}, radius)
	})
}

// Colliders lists the live colliders attached to body.
func (w *World) Colliders(body BodyHandle) []ColliderHandle {
	slot := w.bodySlot(body)
	if slot == nil {
		return nil
	}
	return append([]ColliderHandle(nil), slot.colliders...)
}

// ColliderBody returns the body a collider is attached to.
func (w *World) ColliderBody(h ColliderHandle) (BodyHandle, bool) {
	slot := w.colliderSlot(h)
	if slot == nil {
		return 0, false
	}
	return slot.body, true
}

// SetSensor makes a collider report contacts without producing a response.
func (w *World) SetSensor(h ColliderHandle, sensor bool) {
	if slot := w.colliderSlot(h); slot != nil {
		slot.shape.SetSensor(sensor)
	}
}

func (w *World) SetFriction(h ColliderHandle, friction float64) {
	if slot := w.colliderSlot(h); slot != nil {
		slot.shape.SetFriction(friction)
	}
}

func (w *World) attach(body BodyHandle, build func(*cp.Body) *cp.Shape) (ColliderHandle, error) {
	if w.Closed() {
		return 0, ErrClosed
	}
	slot := w.bodySlot(body)
	if slot == nil {
		return 0, fmt.Errorf("physics: attach collider to %s: %w", body, ErrUnknownBody)
	}

	shape := build(slot.body)
	shape.SetFriction(w.backend.Friction)
	shape.SetFilter(bodyFilter(body))
	w.space.AddShape(shape)
	w.shapeToBody[shape] = body

	var idx int
	if n := len(w.freeColliders); n > 0 {
		idx = w.freeColliders[n-1]
		w.freeColliders = w.freeColliders[:n-1]
	} else {
		w.colliders = append(w.colliders, colliderSlot{})
		idx = len(w.colliders) - 1
	}
	cs := &w.colliders[idx]
	cs.shape = shape
	cs.body = body
	cs.alive = true
	h := ColliderHandle(makeHandle(idx, cs.gen))
	slot.colliders = append(slot.colliders, h)
	return h, nil
}

// bodyFilter puts all colliders of a body in one group so they never collide
// with each other and queries issued on behalf of the body skip them.
func bodyFilter(body BodyHandle) cp.ShapeFilter {
	idx, _, _ := splitHandle(uint64(body))
	return cp.NewShapeFilter(uint(idx+1), cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
}

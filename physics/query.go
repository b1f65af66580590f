package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/minigames/common"
)

// Hit describes the first shape a ray touched.
type Hit struct {
	Point    common.Vec3
	Normal   common.Vec3
	Distance float64
	Body     BodyHandle
}

// CheckGrounded casts a ray of length distance straight down from pos and
// reports whether it touched anything.
func (w *World) CheckGrounded(pos common.Vec3, distance float64) bool {
	_, ok := w.raycast(pos, pos.Add(common.Vec3{Y: -distance}), cp.SHAPE_FILTER_ALL)
	return ok
}

// CheckGroundedFrom is CheckGrounded from a body's position, ignoring the
// body's own colliders.
func (w *World) CheckGroundedFrom(body BodyHandle, distance float64) bool {
	_, ok := w.GroundProbe(body, distance)
	return ok
}

// GroundProbe casts down from the body and returns the surface it found.
func (w *World) GroundProbe(body BodyHandle, distance float64) (Hit, bool) {
	return w.RaycastFrom(body, common.Vec3{Y: -1}, distance)
}

// Raycast returns the first hit along dir from origin within distance.
func (w *World) Raycast(origin, dir common.Vec3, distance float64) (Hit, bool) {
	d := common.Vec3{X: dir.X, Y: dir.Y}.Normalize()
	return w.raycast(origin, origin.Add(d.Scale(distance)), cp.SHAPE_FILTER_ALL)
}

// RaycastFrom is Raycast from a body's position that skips the body's own
// colliders.
func (w *World) RaycastFrom(body BodyHandle, dir common.Vec3, distance float64) (Hit, bool) {
	return w.RaycastFromOffset(body, common.Vec3{}, dir, distance)
}

// RaycastFromOffset is RaycastFrom with the origin shifted by offset.
func (w *World) RaycastFromOffset(body BodyHandle, offset, dir common.Vec3, distance float64) (Hit, bool) {
	if w.bodySlot(body) == nil {
		return Hit{}, false
	}
	origin := w.Position(body).Add(offset)
	d := common.Vec3{X: dir.X, Y: dir.Y}.Normalize()
	return w.raycast(origin, origin.Add(d.Scale(distance)), bodyFilter(body))
}

func (w *World) raycast(from, to common.Vec3, filter cp.ShapeFilter) (Hit, bool) {
	if w.Closed() {
		return Hit{}, false
	}
	info := w.space.SegmentQueryFirst(toCP(from), toCP(to), 0, filter)
	if info.Shape == nil {
		return Hit{}, false
	}
	hit := Hit{
		Point:    fromCP(info.Point),
		Normal:   fromCP(info.Normal),
		Distance: info.Alpha * to.Sub(from).Length(),
	}
	if b, ok := w.shapeToBody[info.Shape]; ok {
		hit.Body = b
	}
	return hit, true
}

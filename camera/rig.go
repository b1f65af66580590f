package camera

import (
	"github.com/milk9111/minigames/common"
	"github.com/milk9111/minigames/prefabs"
)

// OrthoCameraRig is a damped-follow orthographic camera. Size is the half
// height of the view in world units; the half width is Size*Aspect.
type OrthoCameraRig struct {
	Size    float64
	Aspect  float64
	Near    float64
	Far     float64
	Damping float64

	Position common.Vec3
	Target   common.Vec3

	// Offset is added to the follow target. Zero by default.
	Offset common.Vec3

	// world bounds the view is kept inside; nil means unbounded
	bounds *Bounds
}

const (
	DefaultSize    = 7
	DefaultAspect  = 16.0 / 9.0
	DefaultNear    = 0.1
	DefaultFar     = 100
	DefaultDamping = 0.1
)

// NewRig returns a rig with the default projection at position.
func NewRig(position common.Vec3) *OrthoCameraRig {
	return &OrthoCameraRig{
		Size:     DefaultSize,
		Aspect:   DefaultAspect,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Damping:  DefaultDamping,
		Position: position,
	}
}

// NewFromSpec builds a rig from a camera prefab, keeping defaults for any
// non-positive projection field.
func NewFromSpec(spec *prefabs.CameraSpec) *OrthoCameraRig {
	r := NewRig(common.Vec3{})
	if spec == nil {
		return r
	}
	r.Apply(spec)
	r.Position = common.Vec3{X: spec.Position.X, Y: spec.Position.Y, Z: spec.Position.Z}
	return r
}

// Apply copies tuning from spec without moving the camera.
func (r *OrthoCameraRig) Apply(spec *prefabs.CameraSpec) {
	if spec == nil {
		return
	}
	if spec.Size > 0 {
		r.Size = spec.Size
	}
	if spec.Aspect > 0 {
		r.Aspect = spec.Aspect
	}
	if spec.Near > 0 {
		r.Near = spec.Near
	}
	if spec.Far > 0 {
		r.Far = spec.Far
	}
	if spec.Damping > 0 {
		r.Damping = spec.Damping
	}
	r.Offset = common.Vec3{X: spec.Offset.X, Y: spec.Offset.Y, Z: spec.Offset.Z}
}

// SetAspect updates the aspect ratio, usually from the window size.
func (r *OrthoCameraRig) SetAspect(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.Aspect = float64(w) / float64(h)
}

// SetWorldBounds keeps the view inside b. A nil b removes the limit.
func (r *OrthoCameraRig) SetWorldBounds(b *Bounds) {
	r.bounds = b
	r.clampToBounds()
}

func (r *OrthoCameraRig) WorldBounds() (Bounds, bool) {
	if r.bounds == nil {
		return Bounds{}, false
	}
	return *r.bounds, true
}

// FollowTarget moves the rig toward target+offset using exponential damping
// that does not depend on the frame rate. The rig keeps its own Z.
func FollowTarget(r *OrthoCameraRig, target, offset common.Vec3, damping, dt float64) {
	desired := target.Add(offset)
	desired.Z = r.Position.Z

	t := common.DampFactor(damping, dt)
	r.Position = common.LerpVec3(r.Position, desired, t)
	r.Target = common.Vec3{X: target.X, Y: target.Y}
	r.clampToBounds()
}

// Follow is FollowTarget with the rig's own offset and damping.
func (r *OrthoCameraRig) Follow(target common.Vec3, dt float64) {
	FollowTarget(r, target, r.Offset, r.Damping, dt)
}

// SnapTo places the camera on target+offset immediately, for level loads.
func (r *OrthoCameraRig) SnapTo(target common.Vec3) {
	z := r.Position.Z
	r.Position = target.Add(r.Offset)
	r.Position.Z = z
	r.Target = common.Vec3{X: target.X, Y: target.Y}
	r.clampToBounds()
}

func (r *OrthoCameraRig) clampToBounds() {
	if r.bounds == nil {
		return
	}
	halfW, halfH := r.halfExtents()
	b := *r.bounds

	if b.Width() <= 2*halfW {
		// world narrower than the view: center on it
		r.Position.X = (b.MinX + b.MaxX) / 2
	} else {
		r.Position.X = common.Clamp(r.Position.X, b.MinX+halfW, b.MaxX-halfW)
	}
	if b.Height() <= 2*halfH {
		r.Position.Y = (b.MinY + b.MaxY) / 2
	} else {
		r.Position.Y = common.Clamp(r.Position.Y, b.MinY+halfH, b.MaxY-halfH)
	}
}

func (r *OrthoCameraRig) halfExtents() (float64, float64) {
	return r.Size * r.Aspect, r.Size
}

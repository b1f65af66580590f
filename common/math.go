package common

import "math"

// Epsilon is the tolerance used by ApproxEqual.
const Epsilon = 1e-9

// Vec3 is a plain 3D vector. Values are copied between systems.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat is the no-rotation quaternion.
var IdentityQuat = Quat{W: 1}

// QuatFromAngleZ builds a rotation around the Z axis, which is the only axis a
// plane-constrained body can rotate about.
func QuatFromAngleZ(angle float64) Quat {
	s, c := math.Sincos(angle / 2)
	return Quat{Z: s, W: c}
}

// AngleZ extracts the rotation around the Z axis.
func (q Quat) AngleZ() float64 {
	return 2 * math.Atan2(q.Z, q.W)
}

type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// NewTransform returns a transform at pos with identity rotation and unit scale.
func NewTransform(pos Vec3) Transform {
	return Transform{Position: pos, Rotation: IdentityQuat, Scale: Vec3{X: 1, Y: 1, Z: 1}}
}

type Velocity struct {
	Linear  Vec3
	Angular Vec3
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t), Z: Lerp(a.Z, b.Z, t)}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// MaxAbs returns whichever of a and b has the larger magnitude, preferring a
// on ties.
func MaxAbs(a, b float64) float64 {
	if math.Abs(b) > math.Abs(a) {
		return b
	}
	return a
}

// DampFactor is the frame-rate independent exponential smoothing factor,
// normalised so that damping is expressed per 60 Hz frame.
func DampFactor(damping, dt float64) float64 {
	return 1 - math.Exp(-damping*dt*60)
}

func ApproxEqual(a, b, tol float64) bool {
	if tol <= 0 {
		tol = Epsilon
	}
	return math.Abs(a-b) <= tol
}

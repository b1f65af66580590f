package camera

import "github.com/milk9111/minigames/common"

// Side2DAdapter pins everything it touches to the Z=0 plane. ClampZ is
// always true; it is a field so callers can inspect it.
type Side2DAdapter struct {
	ClampZ bool
}

func NewSide2DAdapter() Side2DAdapter {
	return Side2DAdapter{ClampZ: true}
}

func (a Side2DAdapter) ConstrainPosition(p common.Vec3) common.Vec3 {
	p.Z = 0
	return p
}

func (a Side2DAdapter) ConstrainVelocity(v common.Vec3) common.Vec3 {
	v.Z = 0
	return v
}

// ConstrainTransform zeroes the translation Z and keeps rotation and scale.
func (a Side2DAdapter) ConstrainTransform(t common.Transform) common.Transform {
	t.Position = a.ConstrainPosition(t.Position)
	return t
}

package camera

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/minigames/common"
)

// Bounds is an axis-aligned world rectangle.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Contains is inclusive on every edge.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

func (b Bounds) Intersects(o Bounds) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Degenerate reports whether the rig cannot project: a non-positive size or
// aspect.
func (r *OrthoCameraRig) Degenerate() bool {
	return r.Size <= 0 || r.Aspect <= 0
}

// VisibleBounds is the world rectangle the camera currently shows.
func (r *OrthoCameraRig) VisibleBounds() Bounds {
	halfW, halfH := r.halfExtents()
	return Bounds{
		MinX: r.Position.X - halfW,
		MinY: r.Position.Y - halfH,
		MaxX: r.Position.X + halfW,
		MaxY: r.Position.Y + halfH,
	}
}

// WorldToScreen projects p into a w×h pixel screen. Screen Y grows downward.
// Z is ignored.
func WorldToScreen(p common.Vec3, r *OrthoCameraRig, w, h int) (float64, float64) {
	sw, sh := float64(w), float64(h)
	if r.Degenerate() {
		return sw / 2, sh / 2
	}
	halfW, halfH := r.halfExtents()
	nx := (p.X - r.Position.X) / halfW
	ny := (p.Y - r.Position.Y) / halfH
	return (nx + 1) / 2 * sw, (1 - ny) / 2 * sh
}

// ScreenToWorld is the inverse of WorldToScreen. The result lies on Z=0.
func ScreenToWorld(x, y float64, r *OrthoCameraRig, w, h int) common.Vec3 {
	if r.Degenerate() || w <= 0 || h <= 0 {
		return common.Vec3{X: r.Position.X, Y: r.Position.Y}
	}
	halfW, halfH := r.halfExtents()
	nx := x/float64(w)*2 - 1
	ny := 1 - y/float64(h)*2
	return common.Vec3{
		X: r.Position.X + nx*halfW,
		Y: r.Position.Y + ny*halfH,
	}
}

// IsVisible tests p against VisibleBounds.
func IsVisible(p common.Vec3, r *OrthoCameraRig) bool {
	if r.Degenerate() {
		return false
	}
	return r.VisibleBounds().Contains(p.X, p.Y)
}

// WorldGeoM maps world coordinates onto a w×h screen, matching
// WorldToScreen, for drawing with ebiten.
func (r *OrthoCameraRig) WorldGeoM(w, h int) ebiten.GeoM {
	var g ebiten.GeoM
	if r.Degenerate() {
		return g
	}
	halfW, halfH := r.halfExtents()
	g.Translate(-r.Position.X, -r.Position.Y)
	g.Scale(float64(w)/(2*halfW), -float64(h)/(2*halfH))
	g.Translate(float64(w)/2, float64(h)/2)
	return g
}

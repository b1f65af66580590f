package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/minigames/animation"
	"github.com/milk9111/minigames/camera"
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/milk9111/minigames/physics"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 0.1
)

// DrawPhysicsDebug outlines every collider of pw as seen through rig.
func DrawPhysicsDebug(pw *physics.World, rig *camera.OrthoCameraRig, screen *ebiten.Image) {
	if pw == nil || rig == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	drawer := &physicsDebugDrawer{screen: screen, geo: rig.WorldGeoM(b.Dx(), b.Dy())}
	pw.DrawDebug(drawer)
}

// DrawPlayerStateDebug prints the first player's controller and animation
// state in the top-left corner.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	e, _, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	player, ok := ecs.Get(w, e, component.PlayerComponent)
	if !ok || player.Controller == nil {
		return
	}
	c := player.Controller

	state := "none"
	weights := ""
	if anim, ok := ecs.Get(w, e, component.AnimationComponent); ok && anim.Machine != nil {
		state = anim.Machine.Current.String()
		weights = formatWeights(anim.Machine.Weights)
	}

	text := fmt.Sprintf("State: %s\nWeights: %s\nGrounded: %v\nVelocity: %.2f, %.2f\nCoyote: %d JumpBuffer: %d",
		state, weights, c.OnGround, c.Velocity.X, c.Velocity.Y, c.CoyoteTime, c.JumpBuffer)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func formatWeights(weights map[animation.State]float64) string {
	states := make([]animation.State, 0, len(weights))
	for s := range weights {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	parts := make([]string, 0, len(states))
	for _, s := range states {
		parts = append(parts, fmt.Sprintf("%s=%.2f", s, weights[s]))
	}
	return strings.Join(parts, " ")
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	geo    ebiten.GeoM
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := debugDotSize / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return paletteColor(colornames.Lime, 0.9)
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if body := shape.Body(); body != nil && body.GetType() == cp.BODY_STATIC {
		return paletteColor(colornames.Slategray, 0.8)
	}
	return paletteColor(colornames.Forestgreen, 0.5)
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return paletteColor(colornames.Darkorange, 0.9)
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return paletteColor(colornames.Tomato, 0.9)
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.geo.Apply(a.X, a.Y)
	x2, y2 := d.geo.Apply(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func paletteColor(c color.RGBA, alpha float32) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: alpha}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/minigames/animation"
	"github.com/milk9111/minigames/assets"
	"github.com/milk9111/minigames/ecs"
	"github.com/milk9111/minigames/ecs/component"
	"github.com/milk9111/minigames/ecs/entity"
	"github.com/milk9111/minigames/ecs/system"
	"github.com/milk9111/minigames/input"
	"github.com/milk9111/minigames/physics"
	"github.com/milk9111/minigames/prefabs"
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	frameDt         = 1.0 / 60.0
	backendTimeout  = 5 * time.Second
	registryTimeout = 3 * time.Second
)

type Options struct {
	Level       string
	Debug       bool
	Watch       bool
	RegistryURL string
}

type Game struct {
	frames int
	debug  bool
	paused bool

	// set when the simulation could not be built; Draw shows it instead
	unavailable error

	world    *ecs.World
	physics  *physics.World
	source   *input.EbitenSource
	input    *input.System
	pipeline *ecs.Scheduler
	watcher  *prefabs.Watcher

	registry *assets.Registry
	outfit   []string
}

func NewGame(opts Options) *Game {
	g := &Game{debug: opts.Debug}
	g.loadRegistry(opts.RegistryURL)

	if err := g.buildSimulation(opts.Level); err != nil {
		log.Error().Err(err).Msg("Game: simulation unavailable")
		g.unavailable = err
		return g
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("Game: hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) buildSimulation(level string) error {
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	backend, err := physics.DefaultBackend(ctx)
	if err != nil {
		return err
	}
	pw, err := physics.CreateWorld(ctx, backend.DefaultGravity)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	lvl, err := entity.LoadLevel(w, pw, level)
	if err != nil {
		pw.Close()
		return err
	}
	spawn, ok := lvl.Spawn()
	if !ok {
		pw.Close()
		return fmt.Errorf("level %s: no player_spawn", level)
	}
	if _, err := entity.NewPlayerAt(w, pw, spawn); err != nil {
		pw.Close()
		return err
	}
	if _, err := entity.NewCamera(w, entity.PlayerName); err != nil {
		pw.Close()
		return err
	}

	mapping := input.DefaultMapping()
	if spec, err := prefabs.LoadInputSpec(); err != nil {
		log.Warn().Err(err).Msg("Game: using default input mapping")
	} else {
		mapping = spec.Mapping
	}

	g.source = input.NewEbitenSource(baseWidth, baseHeight)
	g.input = input.NewSystem(mapping, g.source)
	g.world = w
	g.physics = pw
	g.pipeline = system.NewPipeline(g.input, pw)
	g.syncAspect(baseWidth, baseHeight)

	log.Info().
		Str("level", level).
		Int("entities", len(ecs.Entities(w))).
		Msg("Game: simulation ready")
	return nil
}

func (g *Game) loadRegistry(url string) {
	if url != "" {
		ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
		defer cancel()
		g.registry = assets.LoadRegistry(ctx, http.DefaultClient, url)
	} else {
		reg, err := assets.DefaultRegistry()
		if err != nil {
			log.Error().Err(err).Msg("Game: embedded asset registry")
			reg = assets.EmptyRegistry()
		}
		g.registry = reg
	}

	for _, problem := range g.registry.Validate() {
		log.Warn().Str("problem", problem).Msg("Game: asset registry")
	}

	g.outfit = g.outfit[:0]
	for _, slot := range g.registry.Slots() {
		fallback := g.registry.Fallback(slot)
		if opt.IsNone(fallback) {
			continue
		}
		safe := g.registry.SafeAlternative(fallback.Value.ID, false)
		if opt.IsSome(safe) {
			g.outfit = append(g.outfit, slot+"="+safe.Value.ID)
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	if g.unavailable != nil {
		return nil
	}

	g.applyReloads()

	g.source.Update()
	if focused := g.source.Focused(); focused != g.input.Enabled() {
		g.input.SetEnabled(focused)
	}

	if g.paused {
		// keep the key snapshots moving so the unpause press is seen
		g.input.Poll()
		if g.input.JustPressed(input.ActionPause) {
			g.paused = false
			log.Debug().Msg("Game: resumed")
		}
		return nil
	}

	g.pipeline.Update(g.world, frameDt)

	for _, evt := range g.world.Events().Drain() {
		if evt.Kind == ecs.EventStepped {
			continue
		}
		log.Debug().
			Str("kind", string(evt.Kind)).
			Stringer("entity", evt.Entity).
			Interface("data", evt.Data).
			Msg("Game: event")
	}

	if g.input.JustPressed(input.ActionPause) {
		g.paused = true
		log.Debug().Msg("Game: paused")
	}
	return nil
}

// applyReloads retunes live entities from any prefab edited since the last
// frame. A file that fails to parse leaves the running values untouched.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		var err error
		switch name {
		case prefabs.ControllerFile:
			err = g.reloadController()
		case prefabs.CameraFile:
			err = g.reloadCamera()
		case prefabs.AnimationFile:
			err = g.reloadAnimation()
		case prefabs.InputFile:
			err = g.reloadInput()
		case prefabs.PhysicsFile:
			log.Info().Msg("Game: physics.yaml is read once; restart to apply")
			continue
		default:
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Game: hot reload failed")
			continue
		}
		log.Info().Str("file", name).Msg("Game: hot reloaded")
	}
}

func (g *Game) reloadController() error {
	spec, err := prefabs.LoadControllerSpec()
	if err != nil {
		return err
	}
	ecs.ForEach(g.world, component.PlayerComponent, func(_ ecs.Entity, p *component.Player) {
		if p.Controller != nil {
			p.Controller.Apply(*spec)
		}
	})
	return nil
}

func (g *Game) reloadCamera() error {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return err
	}
	ecs.ForEach(g.world, component.CameraComponent, func(_ ecs.Entity, c *component.Camera) {
		if c.Rig != nil {
			c.Rig.Apply(spec)
		}
	})
	g.syncAspect(baseWidth, baseHeight)
	return nil
}

func (g *Game) reloadAnimation() error {
	spec, err := prefabs.LoadAnimationSpec()
	if err != nil {
		return err
	}
	// compile once to surface errors before touching any entity
	if _, _, err := animation.FromSpec(*spec); err != nil {
		return err
	}
	ecs.ForEach(g.world, component.AnimationComponent, func(_ ecs.Entity, a *component.Animation) {
		machine, transitions, err := animation.FromSpec(*spec)
		if err != nil {
			return
		}
		if a.Machine != nil {
			machine.TransitionTo(a.Machine.Current, 0)
		}
		a.Machine = machine
		a.Transitions = transitions
	})
	return nil
}

func (g *Game) reloadInput() error {
	spec, err := prefabs.LoadInputSpec()
	if err != nil {
		return err
	}
	g.input.SetMapping(spec.Mapping)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	if g.unavailable != nil {
		ebitenutil.DebugPrintAt(screen, "game unavailable: "+g.unavailable.Error(), 10, 10)
		return
	}

	_, cam, ok := ecs.First(g.world, component.CameraComponent)
	if ok && cam.Rig != nil {
		system.DrawPhysicsDebug(g.physics, cam.Rig, screen)
	}

	if g.debug {
		system.DrawPlayerStateDebug(g.world, screen)
	}

	status := fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS())
	if g.paused {
		status += "    PAUSED"
	}
	if len(g.outfit) > 0 {
		status += "\nOutfit: " + strings.Join(g.outfit, " ")
	}
	b := screen.Bounds()
	ebitenutil.DebugPrintAt(screen, status, 10, b.Dy()-40)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return baseWidth, baseHeight
	}
	g.syncAspect(int(outsideWidth), int(outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) syncAspect(width, height int) {
	if g.source != nil {
		g.source.SetLayout(width, height)
	}
	if g.world == nil {
		return
	}
	ecs.ForEach(g.world, component.CameraComponent, func(_ ecs.Entity, c *component.Camera) {
		if c.Rig != nil {
			c.Rig.SetAspect(width, height)
		}
	})
}

// Close releases the watcher and the physics world.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.input != nil {
		g.input.Detach()
	}
	if g.physics != nil {
		g.physics.Close()
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/milk9111/minigames/animation"
	"github.com/milk9111/minigames/assets"
	"github.com/milk9111/minigames/levels"
	"github.com/milk9111/minigames/prefabs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Level struct {
		Name string `arg:"" optional:"" name:"name" help:"Level name in levels/ (.json optional)."`
	} `cmd:"" help:"Print the merged collider rectangles of a level."`

	Registry struct {
		URL string `help:"Fetch the manifest from this URL instead of the embedded one."`
	} `cmd:"" help:"Validate the asset registry manifest."`

	Transitions struct{} `cmd:"" help:"Compile prefabs/animation.yaml and list its transition table."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("inspect"),
		kong.Description("check levels, prefabs and the asset registry"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	switch ctx.Command() {
	case "level", "level <name>":
		err = levelCommand(CLI.Level.Name)
	case "registry":
		err = registryCommand(CLI.Registry.URL)
	case "transitions":
		err = transitionsCommand()
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		writeError(err)
	}
}

func levelCommand(name string) error {
	if name == "" {
		name = levels.DefaultLevel
	}
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}

	b := lvl.Bounds()
	fmt.Printf("%s: %dx%d tiles, bounds (%.2f,%.2f)-(%.2f,%.2f)\n",
		name, lvl.Width, lvl.Height, b.MinX, b.MinY, b.MaxX, b.MaxY)
	if spawn, ok := lvl.Spawn(); ok {
		fmt.Printf("spawn: (%.2f, %.2f)\n", spawn.X, spawn.Y)
	} else {
		fmt.Println("spawn: none")
	}

	rects := lvl.SolidRects()
	fmt.Printf("colliders: %d\n", len(rects))
	for _, r := range rects {
		c := r.Center()
		h := r.HalfExtents()
		fmt.Printf("  centre (%.2f, %.2f) half (%.2f, %.2f)\n", c.X, c.Y, h.X, h.Y)
	}
	return nil
}

func registryCommand(url string) error {
	var reg *assets.Registry
	if url != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r, err := assets.FetchRegistry(ctx, http.DefaultClient, url)
		if err != nil {
			return err
		}
		reg = r
	} else {
		r, err := assets.DefaultRegistry()
		if err != nil {
			return err
		}
		reg = r
	}

	problems := reg.Validate()
	fmt.Printf("%d assets across %d slots\n", len(reg.Assets), len(reg.Slots()))
	for _, p := range problems {
		fmt.Println("  " + p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("registry: %d problems", len(problems))
	}
	return nil
}

func transitionsCommand() error {
	spec, err := prefabs.LoadAnimationSpec()
	if err != nil {
		return err
	}
	machine, transitions, err := animation.FromSpec(*spec)
	if err != nil {
		return err
	}
	fmt.Printf("initial: %s, %d transitions\n", machine.Current, len(transitions))
	for i, tr := range transitions {
		fmt.Printf("  %2d %-24s %-7s -> %-7s %.2fs\n", i, tr.Name, tr.From, tr.To, tr.Duration)
	}
	return nil
}

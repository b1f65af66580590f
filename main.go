package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/minigames/levels"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug    bool   `help:"Enable debug logging and collider outlines."`
	Level    string `help:"Level name in levels/ (basename, .json optional)." default:"arena"`
	NoWatch  bool   `help:"Disable hot reload of prefabs/*.yaml." name:"no-watch"`
	Registry string `help:"URL of the asset registry manifest. Empty uses the embedded one."`
	Monitor  bool   `help:"Use the first monitor instead of the primary one." short:"m"`
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("minigames"),
		kong.Description("side-scrolling simulation sandbox"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Monitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("minigames")

	level := CLI.Level
	if level == "" {
		level = levels.DefaultLevel
	}

	game := NewGame(Options{
		Level:       level,
		Debug:       CLI.Debug,
		Watch:       !CLI.NoWatch,
		RegistryURL: CLI.Registry,
	})
	err := ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Error().Err(err).Msg("game exited")
		os.Exit(1)
	}
}

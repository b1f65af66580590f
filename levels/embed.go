package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLevel is loaded when the host is not told otherwise.
const DefaultLevel = "arena"

// Level is a tile grid. Each entry of Layers is a row-major width×height
// grid with row 0 at the top; a positive value is a tile.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Name    string `json:"name,omitempty"`
	Physics bool   `json:"physics"`
}

// Entity marks a tile cell, for example the player spawn.
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Load reads an embedded level by name, with or without the .json suffix.
func Load(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: bad size %dx%d", lvl.Width, lvl.Height)
	}
	cells := lvl.Width * lvl.Height
	for i, layer := range lvl.Layers {
		if len(layer) != cells {
			return nil, fmt.Errorf("levels: layer %d has %d cells, want %d", i, len(layer), cells)
		}
	}
	if len(lvl.LayerMeta) > len(lvl.Layers) {
		return nil, fmt.Errorf("levels: %d layer_meta entries for %d layers", len(lvl.LayerMeta), len(lvl.Layers))
	}
	for _, e := range lvl.Entities {
		if e.X < 0 || e.X >= lvl.Width || e.Y < 0 || e.Y >= lvl.Height {
			return nil, fmt.Errorf("levels: entity %q at %d,%d outside %dx%d", e.Type, e.X, e.Y, lvl.Width, lvl.Height)
		}
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = 1
	}
	return &lvl, nil
}

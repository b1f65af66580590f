package component

import "github.com/milk9111/minigames/physics"

// StaticTile is one merged run of level tiles and the fixed body built for
// it. HalfW and HalfH are world half extents.
type StaticTile struct {
	Body         physics.BodyHandle
	HalfW, HalfH float64
}

var StaticTileComponent = NewComponent[StaticTile]()

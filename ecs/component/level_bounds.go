package component

// LevelBounds is the world rectangle of the loaded level. The camera keeps
// its view inside it.
type LevelBounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()

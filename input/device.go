package input

// TouchPoint is an active touch in normalized screen coordinates, origin at
// the top-left corner.
type TouchPoint struct {
	ID int
	X  float64
	Y  float64
}

// Listener receives raw device events.
type Listener interface {
	KeyDown(key string)
	KeyUp(key string)
	GamepadConnected(id int)
	GamepadDisconnected(id int)
	TouchStart(id int)
}

// Source delivers device events to registered listeners and exposes the
// analog state that is sampled during a poll.
type Source interface {
	Register(l Listener)
	Unregister(l Listener)

	HasGamepad(id int) bool
	GamepadAxis(id, axis int) float64
	GamepadButton(id, button int) bool
	Touches() []TouchPoint
}

package input

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSource adapts ebiten's polled device state into listener events.
// Update must run once per tick before the registered systems poll.
type EbitenSource struct {
	listeners []Listener

	keys     []ebiten.Key
	gamepads []ebiten.GamepadID
	touchIDs []ebiten.TouchID
	known    []ebiten.GamepadID

	width   int
	height  int
	focused bool
}

// NewEbitenSource creates a source whose touch coordinates are normalized
// against a width x height layout.
func NewEbitenSource(width, height int) *EbitenSource {
	return &EbitenSource{width: width, height: height, focused: true}
}

// SetLayout updates the layout size used to normalize touches.
func (s *EbitenSource) SetLayout(width, height int) {
	s.width = width
	s.height = height
}

func (s *EbitenSource) Register(l Listener) {
	if l == nil || slices.Contains(s.listeners, l) {
		return
	}
	s.listeners = append(s.listeners, l)
}

func (s *EbitenSource) Unregister(l Listener) {
	s.listeners = slices.DeleteFunc(s.listeners, func(x Listener) bool { return x == l })
}

// Focused reports the window focus observed by the last Update.
func (s *EbitenSource) Focused() bool {
	return s.focused
}

// Update dispatches key, gamepad and touch edges observed this tick.
func (s *EbitenSource) Update() {
	s.focused = ebiten.IsFocused()

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		for _, l := range s.listeners {
			l.KeyDown(k.String())
		}
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		for _, l := range s.listeners {
			l.KeyUp(k.String())
		}
	}

	s.gamepads = inpututil.AppendJustConnectedGamepadIDs(s.gamepads[:0])
	for _, id := range s.gamepads {
		s.known = append(s.known, id)
		for _, l := range s.listeners {
			l.GamepadConnected(int(id))
		}
	}
	s.known = slices.DeleteFunc(s.known, func(id ebiten.GamepadID) bool {
		if !inpututil.IsGamepadJustDisconnected(id) {
			return false
		}
		for _, l := range s.listeners {
			l.GamepadDisconnected(int(id))
		}
		return true
	})

	s.touchIDs = inpututil.AppendJustPressedTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		for _, l := range s.listeners {
			l.TouchStart(int(id))
		}
	}
}

func (s *EbitenSource) HasGamepad(id int) bool {
	return slices.Contains(s.known, ebiten.GamepadID(id))
}

func (s *EbitenSource) GamepadAxis(id, axis int) float64 {
	gid := ebiten.GamepadID(id)
	if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
		return 0
	}
	return ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxis(axis))
}

func (s *EbitenSource) GamepadButton(id, button int) bool {
	gid := ebiten.GamepadID(id)
	if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
		return false
	}
	return ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButton(button))
}

func (s *EbitenSource) Touches() []TouchPoint {
	if s.width <= 0 || s.height <= 0 {
		return nil
	}
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	out := make([]TouchPoint, 0, len(s.touchIDs))
	for _, id := range s.touchIDs {
		x, y := ebiten.TouchPosition(id)
		out = append(out, TouchPoint{
			ID: int(id),
			X:  float64(x) / float64(s.width),
			Y:  float64(y) / float64(s.height),
		})
	}
	return out
}

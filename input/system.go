package input

import (
	"maps"
	"math"

	"github.com/milk9111/minigames/common"
	"github.com/rs/zerolog/log"
)

const noGamepad = -1

// System is the mutable input session for one input context. It must be
// detached before its Source goes away.
type System struct {
	mapping Mapping
	src     Source

	// keys is the live set written by events; held/prev are the snapshots of
	// the current and previous poll used for edge detection.
	keys map[string]struct{}
	held map[string]struct{}
	prev map[string]struct{}

	gamepad     int
	touches     map[int]TouchPoint
	touchActive bool

	enabled  bool
	attached bool
}

// NewSystem creates an input session and registers it with src.
func NewSystem(mapping Mapping, src Source) *System {
	s := &System{
		mapping: mapping.Clone(),
		src:     src,
		keys:    make(map[string]struct{}),
		held:    make(map[string]struct{}),
		prev:    make(map[string]struct{}),
		gamepad: noGamepad,
		touches: make(map[int]TouchPoint),
		enabled: true,
	}
	if src != nil {
		src.Register(s)
		s.attached = true
	}
	return s
}

// Detach unregisters the system from its source. A detached system polls an
// empty ActionState.
func (s *System) Detach() {
	if s == nil || !s.attached {
		return
	}
	s.src.Unregister(s)
	s.attached = false
	s.clear()
}

// Mapping returns a copy of the active bindings.
func (s *System) Mapping() Mapping {
	return s.mapping.Clone()
}

// Enabled reports whether the system accepts input.
func (s *System) Enabled() bool {
	return s != nil && s.enabled
}

// SetEnabled toggles input. Disabling drops all pressed state immediately so
// nothing stays stuck after a focus loss.
func (s *System) SetEnabled(enabled bool) {
	if s == nil || s.enabled == enabled {
		return
	}
	s.enabled = enabled
	if !enabled {
		s.clear()
	}
	log.Debug().Bool("enabled", enabled).Msg("Input: enabled changed")
}

// Remap replaces the keyboard binding for action. The key list is taken as
// is: empty and duplicate lists are accepted.
func (s *System) Remap(action Action, keys []string) {
	if s == nil {
		return
	}
	s.mapping.Keys[action] = append([]string(nil), keys...)
}

// SetMapping replaces every binding at once: keys, gamepad and touch. Actions
// missing from m become unbound. Pressed state is kept.
func (s *System) SetMapping(m Mapping) {
	if s == nil {
		return
	}
	s.mapping = m.Clone()
}

// ActiveGamepad returns the bound gamepad id and whether one is bound.
func (s *System) ActiveGamepad() (int, bool) {
	if s == nil || s.gamepad == noGamepad {
		return 0, false
	}
	return s.gamepad, true
}

// TouchActive reports whether touch input has been seen in this session.
func (s *System) TouchActive() bool {
	return s != nil && s.touchActive
}

func (s *System) KeyDown(key string) {
	if !s.enabled {
		return
	}
	s.keys[key] = struct{}{}
}

func (s *System) KeyUp(key string) {
	delete(s.keys, key)
}

func (s *System) GamepadConnected(id int) {
	if s.gamepad == noGamepad {
		s.gamepad = id
		log.Info().Int("gamepad", id).Msg("Input: gamepad bound")
	}
}

func (s *System) GamepadDisconnected(id int) {
	if s.gamepad == id {
		s.gamepad = noGamepad
		log.Info().Int("gamepad", id).Msg("Input: gamepad unbound")
	}
}

func (s *System) TouchStart(id int) {
	if !s.enabled {
		return
	}
	s.touchActive = true
}

// Poll builds this frame's ActionState. It must be called exactly once per
// simulation frame: it also advances the key snapshots used by JustPressed
// and JustReleased.
func (s *System) Poll() ActionState {
	if s == nil {
		return ActionState{}
	}
	s.prev = s.held
	s.held = maps.Clone(s.keys)

	if !s.enabled || !s.attached {
		return ActionState{}
	}

	var st ActionState
	s.pollKeyboard(&st)
	s.pollGamepad(&st)
	s.pollTouch(&st)
	return st
}

func (s *System) pollKeyboard(st *ActionState) {
	if s.anyHeld(s.held, ActionRight) {
		st.MoveX++
	}
	if s.anyHeld(s.held, ActionLeft) {
		st.MoveX--
	}
	if s.anyHeld(s.held, ActionUp) {
		st.MoveY++
	}
	if s.anyHeld(s.held, ActionDown) {
		st.MoveY--
	}
	for _, a := range ButtonActions {
		st.setButton(a, s.anyHeld(s.held, a))
	}
}

func (s *System) pollGamepad(st *ActionState) {
	if s.gamepad == noGamepad || !s.src.HasGamepad(s.gamepad) {
		return
	}
	gp := s.mapping.Gamepad
	st.MoveX = common.MaxAbs(st.MoveX, s.readAxis(gp.MoveX))
	st.MoveY = common.MaxAbs(st.MoveY, s.readAxis(gp.MoveY))
	for _, a := range ButtonActions {
		for _, b := range gp.Buttons[a] {
			if s.src.GamepadButton(s.gamepad, b) {
				st.setButton(a, true)
				break
			}
		}
	}
}

func (s *System) readAxis(b AxisBinding) float64 {
	v := s.src.GamepadAxis(s.gamepad, b.Axis)
	if math.Abs(v) < b.Deadzone {
		return 0
	}
	if b.Invert {
		v = -v
	}
	return common.Clamp(v, -1, 1)
}

func (s *System) pollTouch(st *ActionState) {
	if !s.touchActive {
		return
	}
	clear(s.touches)
	var sumX, sumY float64
	var n int
	for _, p := range s.src.Touches() {
		s.touches[p.ID] = p
		onButton := false
		for _, b := range s.mapping.Touch.Buttons {
			if b.contains(p) {
				st.setButton(b.Action, true)
				onButton = true
			}
		}
		if onButton {
			continue
		}
		sumX += p.X
		sumY += p.Y
		n++
	}

	js := s.mapping.Touch.Joystick
	if n == 0 || js.Radius <= 0 {
		return
	}
	avgX := sumX / float64(n)
	avgY := sumY / float64(n)
	x := common.Clamp((avgX-js.CenterX)/js.Radius, -1, 1)
	// screen Y grows downward, MoveY is up-positive
	y := common.Clamp(-(avgY-js.CenterY)/js.Radius, -1, 1)
	st.MoveX = common.MaxAbs(st.MoveX, x)
	st.MoveY = common.MaxAbs(st.MoveY, y)
}

// Held reports whether any key bound to action was down at the last poll.
func (s *System) Held(action Action) bool {
	return s != nil && s.anyHeld(s.held, action)
}

// JustPressed is true only on the poll where action's keys went from none
// held to at least one held.
func (s *System) JustPressed(action Action) bool {
	if s == nil {
		return false
	}
	return s.anyHeld(s.held, action) && !s.anyHeld(s.prev, action)
}

// JustReleased is true only on the poll where action's keys went from held
// to none held.
func (s *System) JustReleased(action Action) bool {
	if s == nil {
		return false
	}
	return !s.anyHeld(s.held, action) && s.anyHeld(s.prev, action)
}

func (s *System) anyHeld(set map[string]struct{}, action Action) bool {
	for _, k := range s.mapping.Keys[action] {
		if _, ok := set[k]; ok {
			return true
		}
	}
	return false
}

func (s *System) clear() {
	clear(s.keys)
	clear(s.held)
	clear(s.prev)
	clear(s.touches)
}

package animation

import (
	"fmt"
	"strings"
)

type State int

const (
	Idle State = iota
	Walk
	Run
	Jump
	Fall
	Land
	Attack
)

var stateNames = [...]string{
	Idle:   "idle",
	Walk:   "walk",
	Run:    "run",
	Jump:   "jump",
	Fall:   "fall",
	Land:   "land",
	Attack: "attack",
}

// States lists every state in declaration order.
var States = []State{Idle, Walk, Run, Jump, Fall, Land, Attack}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Locomotion reports whether the state takes part in speed blending.
func (s State) Locomotion() bool {
	return s == Idle || s == Walk || s == Run
}

// ParseState accepts the lower-case state names used in prefab files.
func ParseState(name string) (State, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range stateNames {
		if sn == n {
			return State(i), nil
		}
	}
	return Idle, fmt.Errorf("animation: unknown state %q", name)
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

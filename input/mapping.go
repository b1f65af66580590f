package input

// AxisBinding maps one analog gamepad axis.
type AxisBinding struct {
	Axis     int     `yaml:"axis"`
	Deadzone float64 `yaml:"deadzone"`
	Invert   bool    `yaml:"invert"`
}

// GamepadMapping binds standard-layout gamepad axes and buttons.
type GamepadMapping struct {
	MoveX   AxisBinding      `yaml:"move_x"`
	MoveY   AxisBinding      `yaml:"move_y"`
	Buttons map[Action][]int `yaml:"buttons"`
}

// TouchJoystick is a virtual stick in normalized screen coordinates.
type TouchJoystick struct {
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	Radius  float64 `yaml:"radius"`
}

// TouchButton is a circular on-screen button in normalized screen coordinates.
type TouchButton struct {
	Action Action  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

func (b TouchButton) contains(p TouchPoint) bool {
	dx := p.X - b.X
	dy := p.Y - b.Y
	return b.Radius > 0 && dx*dx+dy*dy <= b.Radius*b.Radius
}

type TouchMapping struct {
	Joystick TouchJoystick `yaml:"joystick"`
	Buttons  []TouchButton `yaml:"buttons"`
}

// Mapping is the static binding table for every device. Key names are
// ebiten key names ("A", "ArrowLeft", "Space").
type Mapping struct {
	Keys    map[Action][]string `yaml:"keys"`
	Gamepad GamepadMapping      `yaml:"gamepad"`
	Touch   TouchMapping        `yaml:"touch"`
}

// DefaultMapping returns the bindings used when no input spec is provided.
func DefaultMapping() Mapping {
	return Mapping{
		Keys: map[Action][]string{
			ActionLeft:   {"A", "ArrowLeft"},
			ActionRight:  {"D", "ArrowRight"},
			ActionUp:     {"W", "ArrowUp"},
			ActionDown:   {"S", "ArrowDown"},
			ActionJump:   {"Space"},
			ActionAttack: {"J"},
			ActionDash:   {"ShiftLeft", "K"},
			ActionPause:  {"Escape", "P"},
		},
		Gamepad: GamepadMapping{
			MoveX: AxisBinding{Axis: 0, Deadzone: 0.2},
			// standard layout reports stick-up as negative
			MoveY: AxisBinding{Axis: 1, Deadzone: 0.2, Invert: true},
			Buttons: map[Action][]int{
				ActionJump:   {0},
				ActionAttack: {2},
				ActionDash:   {1, 5},
				ActionPause:  {9},
			},
		},
		Touch: TouchMapping{
			Joystick: TouchJoystick{CenterX: 0.15, CenterY: 0.8, Radius: 0.12},
			Buttons: []TouchButton{
				{Action: ActionJump, X: 0.88, Y: 0.8, Radius: 0.07},
				{Action: ActionAttack, X: 0.75, Y: 0.85, Radius: 0.06},
			},
		},
	}
}

// Clone deep-copies the mapping so a System never shares slices or maps
// with its caller.
func (m Mapping) Clone() Mapping {
	out := Mapping{
		Keys: make(map[Action][]string, len(m.Keys)),
		Gamepad: GamepadMapping{
			MoveX:   m.Gamepad.MoveX,
			MoveY:   m.Gamepad.MoveY,
			Buttons: make(map[Action][]int, len(m.Gamepad.Buttons)),
		},
		Touch: TouchMapping{
			Joystick: m.Touch.Joystick,
			Buttons:  append([]TouchButton(nil), m.Touch.Buttons...),
		},
	}
	for a, keys := range m.Keys {
		out.Keys[a] = append([]string(nil), keys...)
	}
	for a, buttons := range m.Gamepad.Buttons {
		out.Gamepad.Buttons[a] = append([]int(nil), buttons...)
	}
	return out
}

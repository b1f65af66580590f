package animation

// TransitionData is the motion summary a transition condition may inspect.
type TransitionData struct {
	Speed            float64
	VerticalVelocity float64
	Grounded         bool
	CoyoteTime       int
	AttackRequested  bool
}

type Condition func(TransitionData) bool

// Transition is one rule of a transition table. Tables are scanned in order
// and the first rule whose From matches and whose Condition holds wins.
type Transition struct {
	Name      string
	From      State
	To        State
	Condition Condition
	Duration  float64
}

// Thresholds are the tunable speeds and vertical velocities that drive the
// default table and locomotion blending.
type Thresholds struct {
	IdleSpeed    float64
	WalkSpeed    float64
	RunSpeed     float64
	JumpVelocity float64
	FallVelocity float64
}

// DefaultThresholds match the default controller tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		IdleSpeed:    0.1,
		WalkSpeed:    2.0,
		RunSpeed:     6.0,
		JumpVelocity: 0.5,
		FallVelocity: -0.5,
	}
}

const (
	defaultFade = 0.15
	landFade    = 0.08
	attackFade  = 0.05
)

// DefaultTransitions builds the stock locomotion/air/attack table.
//
// Attack is entered from any grounded locomotion state and, once the request
// clears, returns to whichever locomotion state matches the current speed.
func DefaultTransitions(th Thresholds) []Transition {
	idle := func(d TransitionData) bool { return d.Speed <= th.IdleSpeed }
	walking := func(d TransitionData) bool { return d.Speed > th.IdleSpeed && d.Speed < th.WalkSpeed }
	running := func(d TransitionData) bool { return d.Speed >= th.WalkSpeed }

	// a jump taken on the ground, or inside the coyote window after leaving it
	jumping := func(d TransitionData) bool {
		return d.VerticalVelocity > th.JumpVelocity || (!d.Grounded && d.CoyoteTime > 0 && d.VerticalVelocity > 0)
	}
	attacking := func(d TransitionData) bool { return d.AttackRequested && d.Grounded }
	leftGround := func(d TransitionData) bool { return !d.Grounded && d.CoyoteTime == 0 }

	var table []Transition
	for _, from := range []State{Idle, Walk, Run} {
		table = append(table,
			Transition{Name: from.String() + "_attack", From: from, To: Attack, Condition: attacking, Duration: attackFade},
			Transition{Name: from.String() + "_jump", From: from, To: Jump, Condition: jumping, Duration: defaultFade},
			Transition{Name: from.String() + "_fall", From: from, To: Fall, Condition: leftGround, Duration: defaultFade},
		)
	}

	table = append(table,
		Transition{Name: "idle_walk", From: Idle, To: Walk, Duration: defaultFade, Condition: func(d TransitionData) bool {
			return d.Grounded && d.Speed > th.IdleSpeed
		}},
		Transition{Name: "walk_run", From: Walk, To: Run, Duration: defaultFade, Condition: func(d TransitionData) bool {
			return d.Grounded && running(d)
		}},
		Transition{Name: "walk_idle", From: Walk, To: Idle, Duration: defaultFade, Condition: func(d TransitionData) bool {
			return d.Grounded && idle(d)
		}},
		Transition{Name: "run_walk", From: Run, To: Walk, Duration: defaultFade, Condition: func(d TransitionData) bool {
			return d.Grounded && d.Speed < th.WalkSpeed
		}},

		Transition{Name: "jump_fall", From: Jump, To: Fall, Duration: defaultFade, Condition: func(d TransitionData) bool {
			return d.VerticalVelocity < th.FallVelocity
		}},
		Transition{Name: "jump_land", From: Jump, To: Land, Duration: landFade, Condition: func(d TransitionData) bool {
			return d.Grounded && d.VerticalVelocity <= 0
		}},
		Transition{Name: "fall_land", From: Fall, To: Land, Duration: landFade, Condition: func(d TransitionData) bool {
			return d.Grounded
		}},

		Transition{Name: "land_jump", From: Land, To: Jump, Condition: jumping, Duration: defaultFade},
		Transition{Name: "land_run", From: Land, To: Run, Condition: running, Duration: defaultFade},
		Transition{Name: "land_walk", From: Land, To: Walk, Condition: walking, Duration: defaultFade},
		Transition{Name: "land_idle", From: Land, To: Idle, Condition: idle, Duration: defaultFade},

		Transition{Name: "attack_run", From: Attack, To: Run, Duration: defaultFade, Condition: func(d TransitionData) bool {
			return !d.AttackRequested && running(d)
		}},
		Transition{Name: "attack_walk", From: Attack, To: Walk, Duration: defaultFade, Condition: func(d TransitionData) bool {
			return !d.AttackRequested && walking(d)
		}},
		Transition{Name: "attack_idle", From: Attack, To: Idle, Duration: defaultFade, Condition: func(d TransitionData) bool {
			return !d.AttackRequested && idle(d)
		}},
	)
	return table
}

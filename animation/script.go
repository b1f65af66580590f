package animation

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/minigames/prefabs"
	"github.com/rs/zerolog/log"
)

// Names visible to scripted conditions. Motion values change every
// evaluation; thresholds are fixed at compile time.
const (
	varSpeed    = "speed"
	varVY       = "vy"
	varGrounded = "grounded"
	varCoyote   = "coyote"
	varAttack   = "attack"
	varResult   = "__result"
)

type scriptCondition struct {
	expr     string
	compiled *tengo.Compiled
}

// CompileCondition compiles a tengo boolean expression into a Condition.
// Besides the motion variables (speed, vy, grounded, coyote, attack) the
// expression can read idle_speed, walk_speed, run_speed, jump_velocity and
// fall_velocity, and import the tengo math module.
func CompileCondition(expr string, th Thresholds) (Condition, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("animation: empty condition")
	}

	script := tengo.NewScript([]byte(varResult + " := (" + expr + ")"))
	script.SetImports(stdlib.GetModuleMap("math"))
	vars := map[string]any{
		varSpeed:        0.0,
		varVY:           0.0,
		varGrounded:     false,
		varCoyote:       0,
		varAttack:       false,
		"idle_speed":    th.IdleSpeed,
		"walk_speed":    th.WalkSpeed,
		"run_speed":     th.RunSpeed,
		"jump_velocity": th.JumpVelocity,
		"fall_velocity": th.FallVelocity,
	}
	for name, v := range vars {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("animation: bind %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("animation: compile %q: %w", expr, err)
	}
	sc := &scriptCondition{expr: expr, compiled: compiled}
	return sc.eval, nil
}

func (sc *scriptCondition) eval(d TransitionData) bool {
	c := sc.compiled
	if err := c.Set(varSpeed, d.Speed); err != nil {
		return sc.fail(err)
	}
	if err := c.Set(varVY, d.VerticalVelocity); err != nil {
		return sc.fail(err)
	}
	if err := c.Set(varGrounded, d.Grounded); err != nil {
		return sc.fail(err)
	}
	if err := c.Set(varCoyote, d.CoyoteTime); err != nil {
		return sc.fail(err)
	}
	if err := c.Set(varAttack, d.AttackRequested); err != nil {
		return sc.fail(err)
	}
	if err := c.Run(); err != nil {
		return sc.fail(err)
	}
	return c.Get(varResult).Bool()
}

func (sc *scriptCondition) fail(err error) bool {
	log.Warn().Err(err).Str("expr", sc.expr).Msg("Animation: condition failed")
	return false
}

// expandFrom resolves a From field: a state name, "locomotion" for
// Idle/Walk/Run, or "*" for every state, always in declaration order.
func expandFrom(from string) ([]State, error) {
	switch strings.ToLower(strings.TrimSpace(from)) {
	case "*", "any":
		return States, nil
	case "locomotion":
		return []State{Idle, Walk, Run}, nil
	}
	s, err := ParseState(from)
	if err != nil {
		return nil, err
	}
	return []State{s}, nil
}

// CompileTransitions turns prefab rows into a transition table, keeping row
// order. A zero duration takes defaultDuration; a negative one switches
// instantly.
func CompileTransitions(specs []prefabs.TransitionSpec, th Thresholds, defaultDuration float64) ([]Transition, error) {
	var table []Transition
	for i, spec := range specs {
		froms, err := expandFrom(spec.From)
		if err != nil {
			return nil, fmt.Errorf("animation: transition %d: %w", i, err)
		}
		to, err := ParseState(spec.To)
		if err != nil {
			return nil, fmt.Errorf("animation: transition %d: %w", i, err)
		}
		cond, err := CompileCondition(spec.When, th)
		if err != nil {
			return nil, fmt.Errorf("animation: transition %d: %w", i, err)
		}

		duration := spec.Duration
		if duration == 0 {
			duration = defaultDuration
		}
		for _, from := range froms {
			if from == to {
				continue
			}
			name := spec.Name
			if name == "" {
				name = from.String() + "_" + to.String()
			}
			table = append(table, Transition{Name: name, From: from, To: to, Condition: cond, Duration: duration})
		}
	}
	return table, nil
}

// ThresholdsFromSpec fills zero fields from DefaultThresholds.
func ThresholdsFromSpec(spec prefabs.ThresholdSpec) Thresholds {
	th := DefaultThresholds()
	if spec.IdleSpeed > 0 {
		th.IdleSpeed = spec.IdleSpeed
	}
	if spec.WalkSpeed > 0 {
		th.WalkSpeed = spec.WalkSpeed
	}
	if spec.RunSpeed > 0 {
		th.RunSpeed = spec.RunSpeed
	}
	if spec.JumpVelocity != 0 {
		th.JumpVelocity = spec.JumpVelocity
	}
	if spec.FallVelocity != 0 {
		th.FallVelocity = spec.FallVelocity
	}
	return th
}

// FromSpec builds a machine and its table from an animation prefab. With no
// transitions listed the default table is used.
func FromSpec(spec prefabs.AnimationSpec) (*HFSM, []Transition, error) {
	th := ThresholdsFromSpec(spec.Thresholds)

	initial := Idle
	if spec.Initial != "" {
		s, err := ParseState(spec.Initial)
		if err != nil {
			return nil, nil, err
		}
		initial = s
	}

	table := DefaultTransitions(th)
	if len(spec.Transitions) > 0 {
		fade := spec.DefaultDuration
		if fade == 0 {
			fade = defaultFade
		}
		t, err := CompileTransitions(spec.Transitions, th, fade)
		if err != nil {
			return nil, nil, err
		}
		table = t
	}
	return New(initial, th), table, nil
}

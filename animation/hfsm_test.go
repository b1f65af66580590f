package animation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func sumWeights(h *HFSM) float64 {
	var sum float64
	for _, w := range h.Weights {
		sum += w
	}
	return sum
}

func TestSettledLocomotionBlend(t *testing.T) {
	th := DefaultThresholds()
	h := New(Walk, th)

	_, took := h.Update(TransitionData{Speed: 1.0, Grounded: true}, frame, DefaultTransitions(th))
	require.False(t, took)
	require.True(t, h.Settled())

	idle, walk := h.Weight(Idle), h.Weight(Walk)
	require.InDelta(t, 1.0, idle+walk, 1e-9)
	require.Greater(t, idle, 0.0)
	require.Less(t, idle, 1.0)
	require.Greater(t, walk, 0.0)
	require.Less(t, walk, 1.0)
	require.Zero(t, h.Weight(Run))
}

func TestLocomotionWeights(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		name  string
		speed float64
		want  map[State]float64
	}{
		{name: "standing", speed: 0, want: map[State]float64{Idle: 1}},
		{name: "idle floor", speed: th.IdleSpeed, want: map[State]float64{Idle: 1}},
		{name: "half walk", speed: (th.IdleSpeed + th.WalkSpeed) / 2, want: map[State]float64{Idle: 0.5, Walk: 0.5}},
		{name: "walk boundary", speed: th.WalkSpeed, want: map[State]float64{Walk: 1}},
		{name: "half run", speed: (th.WalkSpeed + th.RunSpeed) / 2, want: map[State]float64{Walk: 0.5, Run: 0.5}},
		{name: "clamped above run", speed: th.RunSpeed * 3, want: map[State]float64{Run: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LocomotionWeights(tc.speed, th)
			require.Len(t, got, len(tc.want))
			for s, w := range tc.want {
				require.InDelta(t, w, got[s], 1e-9, s.String())
			}
		})
	}
}

func TestSettledWeightsSumToOne(t *testing.T) {
	th := DefaultThresholds()
	for _, s := range States {
		for _, speed := range []float64{0, 0.05, 0.7, 1.9, 2.0, 4.5, 9} {
			h := New(s, th)
			h.Update(TransitionData{Speed: speed, Grounded: true}, frame, nil)
			require.True(t, h.Settled())
			require.InDelta(t, 1.0, sumWeights(h), 1e-9, "%s at %.2f", s, speed)
		}
	}
}

func TestFirstMatchWins(t *testing.T) {
	always := func(TransitionData) bool { return true }
	toWalk := Transition{Name: "to_walk", From: Idle, To: Walk, Condition: always}
	toJump := Transition{Name: "to_jump", From: Idle, To: Jump, Condition: always}

	cases := []struct {
		name  string
		table []Transition
		want  State
	}{
		{name: "walk listed first", table: []Transition{toWalk, toJump}, want: Walk},
		{name: "jump listed first", table: []Transition{toJump, toWalk}, want: Jump},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := New(Idle, DefaultThresholds())
			tr, took := h.Update(TransitionData{}, frame, tc.table)
			require.True(t, took)
			require.Equal(t, tc.want, tr.To)
			require.Equal(t, tc.want, h.Current)
			require.Equal(t, Idle, h.Previous)
		})
	}
}

func TestSkipsRulesFromOtherStates(t *testing.T) {
	always := func(TransitionData) bool { return true }
	table := []Transition{
		{From: Run, To: Fall, Condition: always},
		{From: Idle, To: Walk, Condition: always},
	}
	h := New(Idle, DefaultThresholds())
	tr, took := h.Update(TransitionData{}, frame, table)
	require.True(t, took)
	require.Equal(t, Walk, tr.To)
}

func TestAttackReturnsToRun(t *testing.T) {
	th := DefaultThresholds()
	table := DefaultTransitions(th)
	h := New(Run, th)

	_, took := h.Update(TransitionData{Speed: 3.0, Grounded: true, AttackRequested: true}, frame, table)
	require.True(t, took)
	require.Equal(t, Attack, h.Current)

	// still attacking while the request is held
	_, took = h.Update(TransitionData{Speed: 3.0, Grounded: true, AttackRequested: true}, frame, table)
	require.False(t, took)
	require.Equal(t, Attack, h.Current)

	_, took = h.Update(TransitionData{Speed: 3.0, Grounded: true}, frame, table)
	require.True(t, took)
	require.Equal(t, Run, h.Current)
	require.Equal(t, Attack, h.Previous)
}

func TestCrossFade(t *testing.T) {
	h := New(Idle, DefaultThresholds())
	h.TransitionTo(Jump, 0.2)
	require.False(t, h.Settled())

	h.Update(TransitionData{}, 0.1, nil)
	require.InDelta(t, 0.5, h.TransitionProgress, 1e-9)
	require.InDelta(t, 0.5, h.Weight(Idle), 1e-9)
	require.InDelta(t, 0.5, h.Weight(Jump), 1e-9)

	h.Update(TransitionData{}, 0.15, nil)
	require.True(t, h.Settled())
	require.Equal(t, map[State]float64{Jump: 1}, h.Weights)
}

func TestOverrideAbandonsFade(t *testing.T) {
	h := New(Idle, DefaultThresholds())
	h.TransitionTo(Jump, 0.2)
	h.Update(TransitionData{}, 0.1, nil)

	h.TransitionTo(Fall, 0.2)
	require.Equal(t, Jump, h.Previous)
	require.Zero(t, h.TransitionProgress)
	require.Zero(t, h.StateTime)

	h.Update(TransitionData{}, 0.05, nil)
	require.InDelta(t, 0.75, h.Weight(Jump), 1e-9)
	require.InDelta(t, 0.25, h.Weight(Fall), 1e-9)
	require.Zero(t, h.Weight(Idle))
}

func TestInstantTransition(t *testing.T) {
	h := New(Idle, DefaultThresholds())
	h.TransitionTo(Attack, 0)
	require.True(t, h.Settled())

	h.Update(TransitionData{}, frame, nil)
	require.Equal(t, map[State]float64{Attack: 1}, h.Weights)
}

func TestAirborneCycle(t *testing.T) {
	th := DefaultThresholds()
	table := DefaultTransitions(th)
	h := New(Idle, th)

	steps := []struct {
		data TransitionData
		want State
	}{
		{data: TransitionData{VerticalVelocity: 12, Grounded: false, CoyoteTime: 6}, want: Jump},
		{data: TransitionData{VerticalVelocity: 4}, want: Jump},
		{data: TransitionData{VerticalVelocity: -3}, want: Fall},
		{data: TransitionData{Grounded: true, Speed: 4}, want: Land},
		{data: TransitionData{Grounded: true, Speed: 4}, want: Run},
	}
	for i, step := range steps {
		h.Update(step.data, frame, table)
		require.Equal(t, step.want, h.Current, "step %d", i)
	}
}

func TestWalkOffLedgeFalls(t *testing.T) {
	th := DefaultThresholds()
	table := DefaultTransitions(th)
	h := New(Walk, th)

	// coyote window still open: stay put
	h.Update(TransitionData{Speed: 1, CoyoteTime: 3}, frame, table)
	require.Equal(t, Walk, h.Current)

	h.Update(TransitionData{Speed: 1, VerticalVelocity: -1}, frame, table)
	require.Equal(t, Fall, h.Current)
}

func TestJumpCondition(t *testing.T) {
	th := DefaultThresholds()
	table := DefaultTransitions(th)

	cases := []struct {
		name string
		data TransitionData
		want State
	}{
		{name: "grounded, full coyote, resting", data: TransitionData{Grounded: true, CoyoteTime: 6}, want: Idle},
		{name: "grounded, small upward drift", data: TransitionData{Grounded: true, CoyoteTime: 6, VerticalVelocity: 0.3}, want: Idle},
		{name: "takeoff above threshold", data: TransitionData{Grounded: true, CoyoteTime: 6, VerticalVelocity: 8}, want: Jump},
		{name: "late jump inside coyote window", data: TransitionData{CoyoteTime: 2, VerticalVelocity: 0.3}, want: Jump},
		{name: "airborne, window closed", data: TransitionData{VerticalVelocity: 0.3}, want: Fall},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := New(Idle, th)
			h.Update(c.data, frame, table)
			require.Equal(t, c.want, h.Current)
		})
	}
}

func TestStateTime(t *testing.T) {
	h := New(Idle, DefaultThresholds())
	for _i := 0; _i < 30; _i++ {
		h.Update(TransitionData{}, frame, nil)
	}
	require.InDelta(t, 0.5, h.StateTime, 1e-9)
	require.False(t, math.IsNaN(sumWeights(h)))
}

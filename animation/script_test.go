package animation

import (
	"testing"

	"github.com/milk9111/minigames/prefabs"
	"github.com/stretchr/testify/require"
)

func TestCompileCondition(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		name string
		expr string
		data TransitionData
		want bool
	}{
		{name: "threshold constant", expr: "speed >= walk_speed", data: TransitionData{Speed: 3}, want: true},
		{name: "below threshold", expr: "speed >= walk_speed", data: TransitionData{Speed: 1}, want: false},
		{name: "bool vars", expr: "attack && grounded", data: TransitionData{AttackRequested: true, Grounded: true}, want: true},
		{name: "coyote int", expr: "!grounded && coyote > 0", data: TransitionData{CoyoteTime: 2}, want: true},
		{name: "math module", expr: `import("math").abs(vy) > 1`, data: TransitionData{VerticalVelocity: -2}, want: true},
		{name: "negative velocity", expr: "vy < fall_velocity", data: TransitionData{VerticalVelocity: -2}, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cond, err := CompileCondition(tc.expr, th)
			require.NoError(t, err)
			require.Equal(t, tc.want, cond(tc.data))
		})
	}
}

func TestCompileConditionReusable(t *testing.T) {
	cond, err := CompileCondition("speed > 1", DefaultThresholds())
	require.NoError(t, err)
	require.True(t, cond(TransitionData{Speed: 2}))
	require.False(t, cond(TransitionData{Speed: 0.5}))
	require.True(t, cond(TransitionData{Speed: 5}))
}

func TestCompileConditionErrors(t *testing.T) {
	cases := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: "  "},
		{name: "unknown variable", expr: "altitude > 3"},
		{name: "syntax", expr: "speed >"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompileCondition(tc.expr, DefaultThresholds())
			require.Error(t, err)
		})
	}
}

func TestCompileTransitionsExpandsFrom(t *testing.T) {
	specs := []prefabs.TransitionSpec{
		{From: "locomotion", To: "attack", When: "attack"},
		{From: "*", To: "fall", When: "false", Duration: -1},
	}
	table, err := CompileTransitions(specs, DefaultThresholds(), 0.2)
	require.NoError(t, err)

	// Fall -> Fall is dropped.
	require.Len(t, table, 3+len(States)-1)
	require.Equal(t, Idle, table[0].From)
	require.Equal(t, Walk, table[1].From)
	require.Equal(t, Run, table[2].From)
	require.Equal(t, "idle_attack", table[0].Name)
	require.InDelta(t, 0.2, table[0].Duration, 1e-9)
	require.Equal(t, -1.0, table[3].Duration)
}

func TestCompileTransitionsRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.TransitionSpec
	}{
		{name: "unknown from", spec: prefabs.TransitionSpec{From: "swim", To: "idle", When: "true"}},
		{name: "unknown to", spec: prefabs.TransitionSpec{From: "idle", To: "swim", When: "true"}},
		{name: "bad condition", spec: prefabs.TransitionSpec{From: "idle", To: "walk", When: "(speed > 1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompileTransitions([]prefabs.TransitionSpec{tc.spec}, DefaultThresholds(), 0.1)
			require.Error(t, err)
		})
	}
}

func TestFromSpecDefaults(t *testing.T) {
	h, table, err := FromSpec(prefabs.AnimationSpec{})
	require.NoError(t, err)
	require.Equal(t, Idle, h.Current)
	require.Equal(t, DefaultThresholds(), h.Thresholds)
	require.Len(t, table, len(DefaultTransitions(DefaultThresholds())))
}

func TestEmbeddedAnimationTable(t *testing.T) {
	spec, err := prefabs.LoadAnimationSpec()
	require.NoError(t, err)

	h, table, err := FromSpec(*spec)
	require.NoError(t, err)
	require.Equal(t, Idle, h.Current)

	h.Update(TransitionData{Speed: 4, Grounded: true}, frame, table)
	require.Equal(t, Walk, h.Current)
	h.Update(TransitionData{Speed: 4, Grounded: true}, frame, table)
	require.Equal(t, Run, h.Current)

	h.Update(TransitionData{Speed: 3, Grounded: true, AttackRequested: true}, frame, table)
	require.Equal(t, Attack, h.Current)
	h.Update(TransitionData{Speed: 3, Grounded: true}, frame, table)
	require.Equal(t, Run, h.Current)
}

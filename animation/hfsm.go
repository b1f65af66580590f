package animation

import "github.com/milk9111/minigames/common"

// HFSM selects and blends animation states for one actor. It has no
// terminal state.
type HFSM struct {
	Current            State
	Previous           State
	TransitionProgress float64
	TransitionDuration float64
	StateTime          float64
	Weights            map[State]float64
	Thresholds         Thresholds
}

// New returns a settled machine in initial with full weight on it.
func New(initial State, th Thresholds) *HFSM {
	h := &HFSM{
		Current:            initial,
		Previous:           initial,
		TransitionProgress: 1,
		Weights:            make(map[State]float64, 2),
		Thresholds:         th,
	}
	h.Weights[initial] = 1
	return h
}

// Settled reports whether no cross-fade is in progress.
func (h *HFSM) Settled() bool {
	return h.TransitionProgress >= 1
}

// Weight returns the blend weight of s, zero when s is not blended in.
func (h *HFSM) Weight(s State) float64 {
	return h.Weights[s]
}

// TransitionTo starts a cross-fade into to. A fade still in progress is
// abandoned. Non-positive durations switch instantly.
func (h *HFSM) TransitionTo(to State, duration float64) {
	h.Previous = h.Current
	h.Current = to
	h.StateTime = 0
	h.TransitionDuration = duration
	if duration <= 0 {
		h.TransitionProgress = 1
		return
	}
	h.TransitionProgress = 0
}

// Update advances the machine by dt, applies at most one transition from
// transitions and rebuilds the blend weights. It returns the transition taken,
// if any.
func (h *HFSM) Update(data TransitionData, dt float64, transitions []Transition) (*Transition, bool) {
	h.StateTime += dt
	if !h.Settled() {
		if h.TransitionDuration > 0 {
			h.TransitionProgress = common.Clamp01(h.TransitionProgress + dt/h.TransitionDuration)
		} else {
			h.TransitionProgress = 1
		}
	}

	var taken *Transition
	for i := range transitions {
		tr := &transitions[i]
		if tr.From != h.Current || tr.Condition == nil || !tr.Condition(data) {
			continue
		}
		h.TransitionTo(tr.To, tr.Duration)
		taken = tr
		break
	}

	h.rebuildWeights(data.Speed)
	return taken, taken != nil
}

func (h *HFSM) rebuildWeights(speed float64) {
	if h.Weights == nil {
		h.Weights = make(map[State]float64, 2)
	}
	clear(h.Weights)

	if !h.Settled() {
		t := h.TransitionProgress
		h.Weights[h.Previous] += 1 - t
		h.Weights[h.Current] += t
		return
	}

	if !h.Current.Locomotion() {
		h.Weights[h.Current] = 1
		return
	}
	for s, w := range LocomotionWeights(speed, h.Thresholds) {
		h.Weights[s] = w
	}
}

// LocomotionWeights blends Idle, Walk and Run continuously by speed. Zero
// weights are omitted; the result always sums to 1.
func LocomotionWeights(speed float64, th Thresholds) map[State]float64 {
	switch {
	case speed < th.IdleSpeed:
		return map[State]float64{Idle: 1}
	case speed < th.WalkSpeed:
		t := ratio(speed-th.IdleSpeed, th.WalkSpeed-th.IdleSpeed)
		return dropZero(map[State]float64{Idle: 1 - t, Walk: t})
	default:
		t := ratio(speed-th.WalkSpeed, th.RunSpeed-th.WalkSpeed)
		return dropZero(map[State]float64{Walk: 1 - t, Run: t})
	}
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 1
	}
	return common.Clamp01(num / den)
}

func dropZero(m map[State]float64) map[State]float64 {
	for s, w := range m {
		if w == 0 {
			delete(m, s)
		}
	}
	return m
}

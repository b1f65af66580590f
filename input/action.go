package input

// Action names a bindable input. Movement is split into four directional
// actions for keyboard bindings and collapses into MoveX/MoveY in ActionState.
type Action string

const (
	ActionLeft   Action = "left"
	ActionRight  Action = "right"
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionJump   Action = "jump"
	ActionAttack Action = "attack"
	ActionDash   Action = "dash"
	ActionPause  Action = "pause"
)

// ButtonActions lists the boolean actions in ActionState order.
var ButtonActions = []Action{ActionJump, ActionAttack, ActionDash, ActionPause}

// ActionState is the normalized per-frame input vector. It is rebuilt from
// scratch on every poll and handed out by value.
type ActionState struct {
	MoveX  float64
	MoveY  float64
	Jump   bool
	Attack bool
	Dash   bool
	Pause  bool
}

// Button reports the boolean value for a button action.
func (a ActionState) Button(action Action) bool {
	switch action {
	case ActionJump:
		return a.Jump
	case ActionAttack:
		return a.Attack
	case ActionDash:
		return a.Dash
	case ActionPause:
		return a.Pause
	}
	return false
}

func (a *ActionState) setButton(action Action, v bool) {
	switch action {
	case ActionJump:
		a.Jump = a.Jump || v
	case ActionAttack:
		a.Attack = a.Attack || v
	case ActionDash:
		a.Dash = a.Dash || v
	case ActionPause:
		a.Pause = a.Pause || v
	}
}

package engine

// Action is a player's declared action for the current round.
type Action uint8

const (
	ActionNone Action = iota // no recognized declaration
	ActionIdle
	ActionDare
	ActionDie
	ActionDone
	ActionDraw

	NumActions = 5 // recognized actions, ActionNone excluded
)

var actionNames = [...]string{"none", "idle", "dare", "die", "done", "draw"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction maps a lowercase action name to its Action. Unrecognized names
// yield ActionNone.
func ParseAction(name string) Action {
	for i := ActionIdle; i <= ActionDraw; i++ {
		if actionNames[i] == name {
			return i
		}
	}
	return ActionNone
}

// Shout is one player's declaration for the current round.
type Shout struct {
	Player uint8 // player id: PlayerRed or PlayerBlack
	Action Action
}

// ValidActions returns the actions the player may declare in the given round.
// Die and draw drop out of the set once the per-game caps are spent; they are
// not errors, the player simply can no longer choose them.
func (p *PlayerState) ValidActions(round uint8, r Rules) []Action {
	actions := []Action{ActionDone}
	switch round {
	case 1, 2:
		actions = append(actions, ActionDare)
		if p.DieShouts < r.MaxDie {
			actions = append(actions, ActionDie)
		}
	case 3:
		actions = append(actions, ActionIdle)
		if p.DrawShouts < r.MaxDraw {
			actions = append(actions, ActionDraw)
		}
	}
	return actions
}

func actionAllowed(actions []Action, a Action) bool {
	for _, v := range actions {
		if v == a {
			return true
		}
	}
	return false
}

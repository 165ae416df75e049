package engine

// Rules holds the configurable game parameters.
type Rules struct {
	RequiredPoints uint8 // points that end the game in favor of the scorer
	MaxDie         uint8 // die shouts allowed per player per game
	MaxDraw        uint8 // draw shouts allowed per player per game
}

// DefaultRules returns the standard Die or Dare rules.
func DefaultRules() Rules {
	return Rules{
		RequiredPoints: 5,
		MaxDie:         3,
		MaxDraw:        3,
	}
}

// Pace is the engine's hint for how long the display collaborator should
// linger on a step. The mapping to wall-clock durations is configuration,
// not a rule.
type Pace uint8

const (
	PaceNone Pace = iota
	PaceBeforeCoinToss
	PaceAfterCoinToss
	PaceBeforeGameStart
	PaceBeforeDeckChoice
	PaceAfterDeckChoice
	PaceBeforeAction
	PaceActionWindow
	PaceFinalActionWindow
	PaceBeforeCardOpen
	PaceAfterDuelEnd
	PaceAfterGameEnd
)

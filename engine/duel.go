package engine

// DuelState is the lifecycle state of one duel.
type DuelState uint8

const (
	DuelUnstarted DuelState = iota
	DuelOngoing
	DuelDied                 // someone shouted die; no point awarded
	DuelDrawn                // equal sums; point to the correct caller, or the defense
	DuelFinished             // decided by sum comparison
	DuelAbortedByCorrectDone // a correct done shout ended the whole game
	DuelAbortedByWrongChoice // reserved terminal state for an unplayable duel
)

var duelStateNames = [...]string{
	"unstarted", "ongoing", "died", "drawn", "finished",
	"aborted-by-correct-done", "aborted-by-wrong-choice",
}

func (s DuelState) String() string {
	if int(s) < len(duelStateNames) {
		return duelStateNames[s]
	}
	return "unknown"
}

// isTerminal reports whether s ends a duel.
func (s DuelState) isTerminal() bool {
	switch s {
	case DuelDied, DuelDrawn, DuelFinished, DuelAbortedByCorrectDone, DuelAbortedByWrongChoice:
		return true
	}
	return false
}

// Duel is one best-of contest between an offense deck and a defense deck.
// Role assignment is a pure function of index parity: red attacks in
// even-index duels, black in odd ones.
type Duel struct {
	Index  int8
	Round  uint8
	State  DuelState
	Winner int8 // player id, -1 until decided
	Loser  int8
	Over   bool
}

// Offense returns the attacking player's id.
func (d *Duel) Offense() uint8 {
	if d.Index%2 == 0 {
		return PlayerRed
	}
	return PlayerBlack
}

// Defense returns the defending player's id.
func (d *Duel) Defense() uint8 { return 1 - d.Offense() }

// start moves the duel to ONGOING.
func (d *Duel) start() { d.State = DuelOngoing }

// Package engine implements the Die or Dare rules.
//
// The engine is a self-contained state machine: a Game owns two players,
// nine duels, and the shout-resolution rules. All I/O, from rendering to
// snapshot export, lives with external collaborators that drive the
// Prepare/Commit/ProcessShouts step API.
package engine

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	DecksPerPile = 9 // decks per player, and duels per game
	CardsPerDeck = 3
)

// GameResult describes how a game ended.
type GameResult uint8

const (
	ResultNone     GameResult = iota
	ResultFinished            // a player reached the required points
	ResultDone                // a correct done shout ended the game early
)

func (r GameResult) String() string {
	switch r {
	case ResultFinished:
		return "finished"
	case ResultDone:
		return "done"
	default:
		return "none"
	}
}

// Phase describes what input the ongoing duel is waiting for.
type Phase uint8

const (
	PhaseChooseOffenseDeck Phase = iota
	PhaseChooseDefenseDeck
	PhaseShout      // rounds 1–2: dare / die / done
	PhaseFinalShout // round 3: idle / draw / done
	PhaseTerminal
)

// Game is one full Die or Dare session: nine sequential duels between the
// red and black players.
type Game struct {
	Players [2]PlayerState
	Duels   [DecksPerPile]Duel
	DuelIdx int8 // index of the ongoing duel, -1 before the first

	Over   bool
	Result GameResult
	Winner int8 // player id, -1 until the game ends
	Loser  int8

	Rules Rules

	StartedAt time.Time
	EndedAt   time.Time

	rng *rand.Rand
}

// NewGame creates a game between the two players. The explicit RNG drives
// shuffling and every randomized strategy, so a seeded source reproduces a
// full game deterministically.
func NewGame(red, black PlayerState, rules Rules, rng *rand.Rand) *Game {
	g := &Game{
		Players:   [2]PlayerState{red, black},
		DuelIdx:   -1,
		Winner:    -1,
		Loser:     -1,
		Rules:     rules,
		StartedAt: time.Now(),
		rng:       rng,
	}
	for i := range g.Duels {
		g.Duels[i] = Duel{Index: int8(i), Round: 1, State: DuelUnstarted, Winner: -1, Loser: -1}
	}
	g.Players[PlayerRed].InDuel = -1
	g.Players[PlayerBlack].InDuel = -1
	return g
}

// RNG exposes the game's random source for strategy calls and the session
// layer (coin toss, generated names).
func (g *Game) RNG() *rand.Rand { return g.rng }

// SetRNG attaches a random source. Restored games need one before any
// further play; serialization cannot carry it.
func (g *Game) SetRNG(rng *rand.Rand) { g.rng = rng }

// Deal distributes the two piles and builds both players' decks.
func (g *Game) Deal() {
	g.Players[PlayerRed].BuildDecks(RedPile(), g.rng)
	g.Players[PlayerBlack].BuildDecks(BlackPile(), g.rng)
}

// CurrentDuel returns the ongoing duel, or nil before the first duel starts.
func (g *Game) CurrentDuel() *Duel {
	if g.DuelIdx < 0 {
		return nil
	}
	return &g.Duels[g.DuelIdx]
}

// ToNextDuel advances to the next duel and starts it.
func (g *Game) ToNextDuel() (*Duel, error) {
	if g.Over {
		return nil, fmt.Errorf("game is already over")
	}
	if int(g.DuelIdx) >= DecksPerPile-1 {
		return nil, fmt.Errorf("no duels remain after duel %d", g.DuelIdx)
	}
	g.DuelIdx++
	duel := &g.Duels[g.DuelIdx]
	duel.start()
	g.Players[PlayerRed].Recent = ActionNone
	g.Players[PlayerBlack].Recent = ActionNone
	return duel, nil
}

// Offense returns the attacking player of the ongoing duel.
func (g *Game) Offense() *PlayerState { return &g.Players[g.CurrentDuel().Offense()] }

// Defense returns the defending player of the ongoing duel.
func (g *Game) Defense() *PlayerState { return &g.Players[g.CurrentDuel().Defense()] }

// Phase reports what the ongoing duel is waiting for.
func (g *Game) Phase() Phase {
	duel := g.CurrentDuel()
	if duel == nil || duel.Over || g.Over {
		return PhaseTerminal
	}
	switch {
	case g.Offense().InDuel < 0:
		return PhaseChooseOffenseDeck
	case g.Defense().InDuel < 0:
		return PhaseChooseDefenseDeck
	case duel.Round < 3:
		return PhaseShout
	default:
		return PhaseFinalShout
	}
}

// Prepare advances the ongoing duel to its next decision point and returns
// the message and pacing hint for the display collaborator. In rounds 1 and
// 2 it reveals both players' next card and advances the round counter, so
// shouts are collected in rounds 2 and 3.
func (g *Game) Prepare() (string, Pace, error) {
	duel := g.CurrentDuel()
	if duel == nil {
		return "", PaceNone, fmt.Errorf("no ongoing duel")
	}
	switch {
	case g.Offense().InDuel < 0:
		msg := fmt.Sprintf("Duel #%d started! Time to choose the offense deck.", duel.Index+1)
		return msg, PaceBeforeDeckChoice, nil
	case g.Defense().InDuel < 0:
		return "Time to choose the defense deck.", PaceBeforeDeckChoice, nil
	case duel.Round == 1 || duel.Round == 2:
		if err := g.Players[PlayerRed].RevealNextCard(); err != nil {
			return "", PaceNone, err
		}
		if err := g.Players[PlayerBlack].RevealNextCard(); err != nil {
			return "", PaceNone, err
		}
		duel.Round++
		return "What will you two do?\nEnter your action!", PaceBeforeAction, nil
	default:
		return "", PaceNone, fmt.Errorf("prepare called with duel %d in round %d", duel.Index, duel.Round)
	}
}

// DecideOffenseDeck returns the offense deck index to commit: the automated
// strategy's choice, except on the final duel where the sole remaining deck
// is auto-selected for either player kind.
func (g *Game) DecideOffenseDeck() int8 {
	offense := g.Offense()
	if int(g.DuelIdx) == DecksPerPile-1 {
		return offense.UndisclosedDecks()[0]
	}
	return chooseOffenseDeck(offense.Strategy.OffenseDeck, offense, g.rng)
}

// DecideDefenseDeck returns the defense deck index to commit, chosen by the
// offense player (the attacker picks which enemy deck to fight).
func (g *Game) DecideDefenseDeck() int8 {
	defense := g.Defense()
	if int(g.DuelIdx) == DecksPerPile-1 {
		return defense.UndisclosedDecks()[0]
	}
	offense := g.Offense()
	return chooseDefenseDeck(offense.Strategy.DefenseDeck, defense, offense, g.Rules, g.rng)
}

// FinalDuel reports whether the ongoing duel is the ninth, where deck choice
// is skipped.
func (g *Game) FinalDuel() bool { return int(g.DuelIdx) == DecksPerPile-1 }

// CommitOffenseDeck commits the offense player's deck at idx. Choosing an
// already-disclosed deck is user-correctable: the phase does not advance and
// the returned message asks for another pick.
func (g *Game) CommitOffenseDeck(idx int8) (string, Pace, error) {
	if idx < 0 || int(idx) >= DecksPerPile {
		return "", PaceNone, fmt.Errorf("offense deck index %d out of range", idx)
	}
	offense := g.Offense()
	if !offense.Decks[idx].IsUndisclosed() {
		return "Choose an undisclosed deck.", PaceAfterDeckChoice, nil
	}
	offense.sendToDuel(idx)
	return fmt.Sprintf("Deck #%d chosen as the offense deck.", idx+1), PaceAfterDeckChoice, nil
}

// CommitDefenseDeck commits the defense player's deck at idx and links the
// two committed decks to each other. Both back-references are set here, in
// one step, so a deck pair is either fully linked or not linked at all.
func (g *Game) CommitDefenseDeck(idx int8) (string, Pace, error) {
	if idx < 0 || int(idx) >= DecksPerPile {
		return "", PaceNone, fmt.Errorf("defense deck index %d out of range", idx)
	}
	offense, defense := g.Offense(), g.Defense()
	if offense.InDuel < 0 {
		return "", PaceNone, fmt.Errorf("defense deck committed before the offense deck")
	}
	if !defense.Decks[idx].IsUndisclosed() {
		return "Choose an undisclosed deck.", PaceAfterDeckChoice, nil
	}
	defense.sendToDuel(idx)
	defense.Decks[idx].OppIndex = offense.InDuel
	offense.Decks[offense.InDuel].OppIndex = idx
	return fmt.Sprintf("Deck #%d chosen as the defense deck.", idx+1), PaceAfterDeckChoice, nil
}

// AutoShouts collects the computer players' declarations for the current
// action window. Offense shouts are listed first so that, resolved in
// arrival order, simultaneous declarations keep the offense-first tie-break.
func (g *Game) AutoShouts() ([]Shout, error) {
	duel := g.CurrentDuel()
	if duel == nil || duel.Over {
		return nil, fmt.Errorf("no ongoing duel to shout in")
	}
	var shouts []Shout
	for _, id := range [2]uint8{duel.Offense(), duel.Defense()} {
		p := &g.Players[id]
		if p.Kind != KindComputer {
			continue
		}
		opponent := &g.Players[1-id]
		action, err := chooseAction(p.Strategy.Action, duel.Round, id == duel.Offense(), p, opponent, g.Rules, g.rng)
		if err != nil {
			return nil, err
		}
		if action != ActionNone {
			shouts = append(shouts, Shout{Player: id, Action: action})
		}
	}
	return shouts, nil
}

// IsDrawn reports whether the two committed decks have equal summed value.
func (g *Game) IsDrawn() bool {
	offense, defense := g.Offense(), g.Defense()
	return offense.Decks[offense.InDuel].Sum() == defense.Decks[defense.InDuel].Sum()
}

// ProcessShouts reduces the collected declarations to at most one recognized
// action per player and resolves the round. Priority is strict (done > die >
// draw > fallthrough) and within each tier the offense is evaluated before
// the defense; that ordering is an observable tie-break rule.
func (g *Game) ProcessShouts(shouts []Shout) (string, Pace, error) {
	duel := g.CurrentDuel()
	if duel == nil || duel.Over {
		return "", PaceNone, fmt.Errorf("no ongoing duel to process shouts for")
	}
	round := duel.Round

	// Keep only the first shout heard from each player.
	heard := [2]bool{}
	for _, s := range shouts {
		if s.Player > PlayerBlack || heard[s.Player] {
			continue
		}
		heard[s.Player] = true
		g.Players[s.Player].Recent = s.Action
	}

	order := [2]uint8{duel.Offense(), duel.Defense()}

	// Done tier. A wrong done only spends the counter; evaluation continues.
	for _, id := range order {
		p := &g.Players[id]
		if !actionAllowed(p.ValidActions(round, g.Rules), ActionDone) || p.Recent != ActionDone {
			continue
		}
		p.DoneShouts++
		if p.IsDone() {
			if err := g.endDuel(duel, DuelAbortedByCorrectDone, -1, -1); err != nil {
				return "", PaceNone, err
			}
			g.end(ResultDone, int8(id), -1)
			msg := fmt.Sprintf("%[1]s is done, so Duel #%[2]d is aborted.\n%[1]s wins! The game has ended as %[1]s first shouted done correctly.",
				p.Name, duel.Index+1)
			return msg, PaceAfterGameEnd, nil
		}
	}

	// Die tier. The first qualifying player in offense-then-defense order is
	// authoritative; a simultaneous die from the other side is not processed.
	for _, id := range order {
		p := &g.Players[id]
		if !actionAllowed(p.ValidActions(round, g.Rules), ActionDie) || p.Recent != ActionDie {
			continue
		}
		p.DieShouts++
		if err := g.endDuel(duel, DuelDied, -1, -1); err != nil {
			return "", PaceNone, err
		}
		msg := fmt.Sprintf("%s died, so no one gets a point. Duel #%d ended.", p.Name, duel.Index+1)
		return g.closeOut(msg)
	}

	// Draw tier. A wrong draw spends the counter and falls through.
	for _, id := range order {
		p := &g.Players[id]
		if !actionAllowed(p.ValidActions(round, g.Rules), ActionDraw) || p.Recent != ActionDraw {
			continue
		}
		p.DrawShouts++
		if g.IsDrawn() {
			if err := g.endDuel(duel, DuelDrawn, int8(id), -1); err != nil {
				return "", PaceNone, err
			}
			msg := fmt.Sprintf("%s shouted draw correctly and gets a point. Duel #%d ended.", p.Name, duel.Index+1)
			return g.checkRequiredPoints(duel, msg)
		}
	}

	// Fallthrough: nobody ended the duel this round.
	if round == 1 || round == 2 {
		return "Ooh, double dare! Time to open the next cards!", PaceBeforeCardOpen, nil
	}

	offense, defense := g.Offense(), g.Defense()
	sumOffense := offense.Decks[offense.InDuel].Sum()
	sumDefense := defense.Decks[defense.InDuel].Sum()
	switch {
	case sumOffense > sumDefense:
		if err := g.endDuel(duel, DuelFinished, int8(duel.Offense()), -1); err != nil {
			return "", PaceNone, err
		}
	case sumOffense < sumDefense:
		if err := g.endDuel(duel, DuelFinished, int8(duel.Defense()), -1); err != nil {
			return "", PaceNone, err
		}
	default:
		// Equal sums that no one called: the defense takes the point.
		if err := g.endDuel(duel, DuelDrawn, int8(duel.Defense()), -1); err != nil {
			return "", PaceNone, err
		}
	}
	winner := &g.Players[duel.Winner]
	var msg string
	if duel.State == DuelDrawn {
		msg = fmt.Sprintf("The sums are equal, but no one shouted draw, so the defense (%s) gets a point. Duel #%d ended.",
			winner.Name, duel.Index+1)
	} else {
		msg = fmt.Sprintf("%[1]s has a greater sum, so %[1]s gets a point. Duel #%d ended.", winner.Name, duel.Index+1)
	}
	return g.checkRequiredPoints(duel, msg)
}

// closeOut ends the game once the final duel resolves with neither player at
// the required points: the higher score wins, and equal scores go to black,
// the final duel's defense, matching the round tie rule.
func (g *Game) closeOut(msg string) (string, Pace, error) {
	if g.Over || int(g.DuelIdx) != DecksPerPile-1 {
		return msg, PaceAfterDuelEnd, nil
	}
	red, black := g.Players[PlayerRed].Points, g.Players[PlayerBlack].Points
	winner := int8(PlayerBlack)
	if red > black {
		winner = PlayerRed
	}
	g.end(ResultFinished, winner, -1)
	msg += fmt.Sprintf("\nAll nine duels are spent. %s wins %d points to %d.",
		g.Players[g.Winner].Name, g.Players[g.Winner].Points, g.Players[g.Loser].Points)
	return msg, PaceAfterGameEnd, nil
}

// checkRequiredPoints ends the game when the duel winner has just reached
// the required point total.
func (g *Game) checkRequiredPoints(duel *Duel, msg string) (string, Pace, error) {
	winner := &g.Players[duel.Winner]
	if winner.Points < g.Rules.RequiredPoints {
		return g.closeOut(msg)
	}
	g.end(ResultFinished, duel.Winner, -1)
	msg += fmt.Sprintf("\n%[1]s wins! The game has ended as %[1]s first scored %d points.",
		winner.Name, g.Rules.RequiredPoints)
	return msg, PaceAfterGameEnd, nil
}

// endDuel closes the duel: it records the terminal state, infers the missing
// side of the winner/loser pair, awards the point, and finishes and fully
// reveals both committed decks.
func (g *Game) endDuel(duel *Duel, state DuelState, winner, loser int8) error {
	if !state.isTerminal() {
		return fmt.Errorf("endDuel: %v is not a terminal duel state", state)
	}
	duel.Over = true
	duel.State = state
	duel.Winner, duel.Loser = winner, loser
	if winner < 0 && loser < 0 {
		switch state {
		case DuelDied, DuelAbortedByCorrectDone, DuelAbortedByWrongChoice:
			// no point awarded
		default:
			return fmt.Errorf("duel %d ended %v without a winner or loser", duel.Index, state)
		}
	} else {
		if duel.Winner < 0 {
			duel.Winner = int8(1 - uint8(loser))
		} else if duel.Loser < 0 {
			duel.Loser = int8(1 - uint8(winner))
		}
		g.Players[duel.Winner].Points++
	}
	for id := range g.Players {
		p := &g.Players[id]
		if p.InDuel < 0 {
			continue
		}
		deck := &p.Decks[p.InDuel]
		deck.finish()
		deck.RevealAll()
		p.InDuel = -1
	}
	return nil
}

// end finishes the game, inferring whichever of winner/loser was not given.
func (g *Game) end(result GameResult, winner, loser int8) {
	g.Over = true
	g.Result = result
	g.EndedAt = time.Now()
	g.Winner, g.Loser = winner, loser
	if g.Winner < 0 && g.Loser >= 0 {
		g.Winner = int8(1 - uint8(g.Loser))
	} else if g.Loser < 0 && g.Winner >= 0 {
		g.Loser = int8(1 - uint8(g.Winner))
	}
}

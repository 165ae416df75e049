// Package session drives complete games: player setup, the coin toss, the
// prepare/accept/process loop of every duel, and the export of recorded
// states once the game ends.
package session

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/config"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/console"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/input"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/replay"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/snapshot"
)

// Prompter is the interactive surface the runner needs for human players.
type Prompter interface {
	Name(prompt, forbidden string) (string, error)
	JokerValueStrategy(player string) (engine.JokerValueStrategy, error)
	JokerPositionStrategy(player string) (engine.JokerPositionStrategy, error)
	DeckIndex(player string, opponent bool, undisclosed []int8) (int8, error)
}

// Options selects how a session runs.
type Options struct {
	Humans         int // 0, 1, or 2
	Quiet          bool
	SaveAll        bool
	SaveResultOnly bool
	ExportDir      string
}

// Runner plays one game per Run call.
type Runner struct {
	Cfg      config.Config
	Opts     Options
	Log      *logrus.Entry
	Prompt   Prompter
	Renderer *console.Renderer
	Stdin    io.Reader     // shout keypresses
	Store    *replay.Store // optional persistence, best effort
	RNG      *rand.Rand
}

// New builds a runner with the interactive defaults.
func New(cfg config.Config, opts Options, log *logrus.Entry, rng *rand.Rand) *Runner {
	opts.Quiet = opts.Quiet || cfg.Quiet
	cfg.Quiet = opts.Quiet
	return &Runner{
		Cfg:      cfg,
		Opts:     opts,
		Log:      log,
		Prompt:   input.Prompter{},
		Renderer: console.New(cfg.Delay),
		Stdin:    os.Stdin,
		RNG:      rng,
	}
}

func (r *Runner) setupPlayers() (first, second engine.PlayerState, err error) {
	switch r.Opts.Humans {
	case 2:
		first, err = r.humanPlayer("Player 1, enter your name: ", "")
		if err != nil {
			return
		}
		second, err = r.humanPlayer("Player 2, enter your name: ", first.Name)
	case 1:
		first, err = r.humanPlayer("Player 1, enter your name: ", "")
		if err != nil {
			return
		}
		second = r.computerPlayer(first.Name)
	case 0:
		first = r.computerPlayer("")
		second = r.computerPlayer(first.Name)
	default:
		err = fmt.Errorf("invalid number of human players: %d", r.Opts.Humans)
	}
	return
}

func (r *Runner) humanPlayer(prompt, forbidden string) (engine.PlayerState, error) {
	name, err := r.Prompt.Name(prompt, forbidden)
	if err != nil {
		return engine.PlayerState{}, err
	}
	jokerValue, err := r.Prompt.JokerValueStrategy(name)
	if err != nil {
		return engine.PlayerState{}, err
	}
	jokerPosition, err := r.Prompt.JokerPositionStrategy(name)
	if err != nil {
		return engine.PlayerState{}, err
	}
	return engine.PlayerState{
		Name: name,
		Kind: engine.KindHuman,
		Strategy: engine.StrategySet{
			JokerValue:    jokerValue,
			JokerPosition: jokerPosition,
		},
	}, nil
}

func (r *Runner) computerPlayer(forbidden string) engine.PlayerState {
	presets := engine.Presets()
	preset := presets[r.RNG.IntN(len(presets))]
	return engine.PlayerState{
		Name:     input.GenerateComputerName(r.RNG, forbidden),
		Kind:     engine.KindComputer,
		Strategy: preset.Strategy,
	}
}

// show renders a message, optionally with the board, honoring quiet mode.
func (r *Runner) show(g *engine.Game, msg string, pace engine.Pace) {
	if r.Opts.Quiet {
		return
	}
	if g == nil {
		r.Renderer.Message(msg, pace)
		return
	}
	r.Renderer.Board(g, msg, pace)
}

// record saves a state step when saving is on.
func (r *Runner) record(rec *snapshot.Recorder, g *engine.Game, msg string) error {
	if !r.Opts.SaveAll && !r.Opts.SaveResultOnly {
		return nil
	}
	return rec.Save(g, msg)
}

// Run plays one full game.
func (r *Runner) Run(ctx context.Context) error {
	first, second, err := r.setupPlayers()
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("All right, %s and %s. Let's get started!", first.Name, second.Name)
	msg += "\nLet's flip a coin to decide who will be the Player Red!"
	r.show(nil, msg, engine.PaceBeforeCoinToss)

	red, black := first, second
	if r.RNG.IntN(2) == 1 {
		red, black = second, first
	}
	msg = fmt.Sprintf("%s, you are the Player Red, so you will go first.", red.Name)
	msg += fmt.Sprintf("\n%s, you are the Player Black.", black.Name)
	r.show(nil, msg, engine.PaceAfterCoinToss)

	g := engine.NewGame(red, black, r.Cfg.Rules(), r.RNG)
	g.Deal()
	rec := snapshot.NewRecorder()
	log := r.Log.WithField("game_id", rec.GameID)
	log.WithFields(logrus.Fields{"red": red.Name, "black": black.Name}).Info("game started")

	r.show(nil, "Let's start DieOrDare!\nHere we go!", engine.PaceBeforeGameStart)

	for !g.Over {
		if err := ctx.Err(); err != nil {
			return err
		}
		duel, err := g.ToNextDuel()
		if err != nil {
			return err
		}
		dlog := log.WithField("duel", duel.Index)
		for !duel.Over && !g.Over {
			msg, pace, err := g.Prepare()
			if err != nil {
				return err
			}
			if err := r.record(rec, g, msg); err != nil {
				return err
			}
			r.show(g, msg, pace)

			msg, pace, err = r.step(g, dlog)
			if err != nil {
				return err
			}
			if err := r.record(rec, g, msg); err != nil {
				return err
			}
			r.show(g, msg, pace)
		}
	}
	log.WithFields(logrus.Fields{
		"result": g.Result,
		"winner": g.Players[g.Winner].Name,
	}).Info("game ended")

	return r.finish(ctx, g, rec)
}

// step accepts and processes one decision: a deck choice or a shout window.
func (r *Runner) step(g *engine.Game, log *logrus.Entry) (string, engine.Pace, error) {
	duel := g.CurrentDuel()
	switch g.Phase() {
	case engine.PhaseChooseOffenseDeck:
		idx, err := r.offenseDeckChoice(g)
		if err != nil {
			return "", engine.PaceNone, err
		}
		log.WithField("deck", idx).Debug("offense deck chosen")
		return g.CommitOffenseDeck(idx)
	case engine.PhaseChooseDefenseDeck:
		idx, err := r.defenseDeckChoice(g)
		if err != nil {
			return "", engine.PaceNone, err
		}
		log.WithField("deck", idx).Debug("defense deck chosen")
		return g.CommitDefenseDeck(idx)
	case engine.PhaseShout, engine.PhaseFinalShout:
		shouts, err := r.collectShouts(g)
		if err != nil {
			return "", engine.PaceNone, err
		}
		log.WithFields(logrus.Fields{"round": duel.Round, "shouts": len(shouts)}).Debug("shouts collected")
		return g.ProcessShouts(shouts)
	default:
		return "", engine.PaceNone, fmt.Errorf("no decision pending in duel %d", duel.Index)
	}
}

// offenseDeckChoice asks the offense player for one of their own decks.
func (r *Runner) offenseDeckChoice(g *engine.Game) (int8, error) {
	offense := g.Offense()
	if offense.Kind != engine.KindHuman || g.FinalDuel() {
		return g.DecideOffenseDeck(), nil
	}
	return r.Prompt.DeckIndex(offense.Name, false, offense.UndisclosedDecks())
}

// defenseDeckChoice asks the offense player to pick the opponent deck.
func (r *Runner) defenseDeckChoice(g *engine.Game) (int8, error) {
	offense, defense := g.Offense(), g.Defense()
	if offense.Kind != engine.KindHuman || g.FinalDuel() {
		return g.DecideDefenseDeck(), nil
	}
	return r.Prompt.DeckIndex(offense.Name, true, defense.UndisclosedDecks())
}

// collectShouts merges the keyboard window for human players with the
// computed declarations of computer players.
func (r *Runner) collectShouts(g *engine.Game) ([]engine.Shout, error) {
	var shouts []engine.Shout
	anyHuman := g.Players[engine.PlayerRed].Kind == engine.KindHuman ||
		g.Players[engine.PlayerBlack].Kind == engine.KindHuman
	if anyHuman && !r.Opts.Quiet {
		pace := engine.PaceActionWindow
		if g.Phase() == engine.PhaseFinalShout {
			pace = engine.PaceFinalActionWindow
		}
		window := r.Cfg.Delay(pace)
		keyed := input.CollectShouts(r.Stdin, window, r.Cfg.RedKeys, r.Cfg.BlackKeys)
		for _, s := range keyed {
			if g.Players[s.Player].Kind == engine.KindHuman {
				shouts = append(shouts, s)
			}
		}
	}
	auto, err := g.AutoShouts()
	if err != nil {
		return nil, err
	}
	return append(shouts, auto...), nil
}

// finish exports and persists the recorded game.
func (r *Runner) finish(ctx context.Context, g *engine.Game, rec *snapshot.Recorder) error {
	if r.Opts.SaveAll || r.Opts.SaveResultOnly {
		dir := r.Opts.ExportDir
		if dir == "" {
			dir = "json"
		}
		path, err := rec.Export(dir, g, r.Opts.SaveResultOnly)
		if err != nil {
			return err
		}
		r.Log.WithField("path", path).Info("replay exported")
	}
	if r.Store != nil && len(rec.Steps) > 0 {
		record := replay.GameRecord{
			GameID:    rec.GameID.String(),
			RedName:   g.Players[engine.PlayerRed].Name,
			BlackName: g.Players[engine.PlayerBlack].Name,
			StartedAt: g.StartedAt,
			Result:    g.Result.String(),
		}
		if err := r.Store.SaveGame(ctx, record, rec.Steps); err != nil {
			r.Log.WithError(err).Warn("replay store save failed")
		}
	}
	return nil
}

// Package snapshot serializes full game states to JSON and records the
// state after every display step, so a finished game can be exported as a
// step-by-step replay file or reloaded later.
package snapshot

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
)

// Capture serializes the game. Every exported field of the state graph goes
// into the document; the random source does not and must be re-seeded on
// restore.
func Capture(g *engine.Game) (json.RawMessage, error) {
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("capture game: %w", err)
	}
	return raw, nil
}

// Restore rebuilds a game from a captured document and attaches a random
// source for any further play.
func Restore(raw json.RawMessage, rng *rand.Rand) (*engine.Game, error) {
	var g engine.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("restore game: %w", err)
	}
	g.SetRNG(rng)
	return &g, nil
}

// Step is one recorded display step: the message shown and the full state
// after it.
type Step struct {
	Seq     int             `json:"seq"`
	Message string          `json:"message"`
	State   json.RawMessage `json:"state"`
}

// Recorder accumulates steps over one game.
type Recorder struct {
	GameID uuid.UUID `json:"game_id"`
	Steps  []Step    `json:"steps"`
}

func NewRecorder() *Recorder {
	return &Recorder{GameID: uuid.New()}
}

// Save captures the game state after a message was shown.
func (r *Recorder) Save(g *engine.Game, message string) error {
	state, err := Capture(g)
	if err != nil {
		return err
	}
	r.Steps = append(r.Steps, Step{Seq: len(r.Steps), Message: message, State: state})
	return nil
}

// FileName derives the export name from the matchup and start time, e.g.
// "ComputerPlayer(Computer42)HumanPlayer(Eve)20260829153000.json".
func FileName(g *engine.Game) string {
	red, black := &g.Players[engine.PlayerRed], &g.Players[engine.PlayerBlack]
	stamp := g.StartedAt.Format("20060102150405")
	return fmt.Sprintf("%s(%s)%s(%s)%s.json", red.Kind, red.Name, black.Kind, black.Name, stamp)
}

// Export writes the recorded steps to dir, creating it if needed. With
// resultOnly set, only the final step is written. It returns the full path
// of the written file.
func (r *Recorder) Export(dir string, g *engine.Game, resultOnly bool) (string, error) {
	if len(r.Steps) == 0 {
		return "", fmt.Errorf("no recorded steps to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	steps := r.Steps
	if resultOnly {
		steps = steps[len(steps)-1:]
	}
	raw, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("marshal steps: %w", err)
	}
	path := filepath.Join(dir, FileName(g))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Import loads a previously exported replay file.
func Import(path string) ([]Step, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	var steps []Step
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil, fmt.Errorf("parse replay: %w", err)
	}
	return steps, nil
}

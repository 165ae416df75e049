package session

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/config"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/replay"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/snapshot"
)

// stubPrompter answers every prompt from canned values.
type stubPrompter struct {
	names []string
	decks []int8
}

func (s *stubPrompter) Name(prompt, forbidden string) (string, error) {
	name := s.names[0]
	s.names = s.names[1:]
	return name, nil
}

func (s *stubPrompter) JokerValueStrategy(string) (engine.JokerValueStrategy, error) {
	return engine.JokerThirteen, nil
}

func (s *stubPrompter) JokerPositionStrategy(string) (engine.JokerPositionStrategy, error) {
	return engine.JokerAnywhere, nil
}

func (s *stubPrompter) DeckIndex(string, bool, []int8) (int8, error) {
	idx := s.decks[0]
	s.decks = s.decks[1:]
	return idx, nil
}

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func quietRunner(opts Options, seed uint64) *Runner {
	cfg := config.Default()
	opts.Quiet = true
	r := New(cfg, opts, testLogger(), rand.New(rand.NewPCG(seed, seed)))
	r.Stdin = strings.NewReader("")
	return r
}

func TestRunComputerGame(t *testing.T) {
	r := quietRunner(Options{Humans: 0}, 1)
	require.NoError(t, r.Run(context.Background()))
}

func TestRunManySeeds(t *testing.T) {
	// Every seed must drive a game to completion without manual input.
	for seed := uint64(1); seed <= 30; seed++ {
		r := quietRunner(Options{Humans: 0}, seed)
		require.NoError(t, r.Run(context.Background()), "seed %d", seed)
	}
}

func TestRunRejectsBadHumanCount(t *testing.T) {
	r := quietRunner(Options{Humans: 3}, 2)
	assert.Error(t, r.Run(context.Background()))
}

func TestRunHonorsContextCancel(t *testing.T) {
	r := quietRunner(Options{Humans: 0}, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}

func TestRunExportsReplay(t *testing.T) {
	dir := t.TempDir()
	r := quietRunner(Options{Humans: 0, SaveAll: true, ExportDir: dir}, 4)
	require.NoError(t, r.Run(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))

	steps, err := snapshot.Import(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Greater(t, len(steps), 1, "save-all keeps every step")
}

func TestRunExportsResultOnly(t *testing.T) {
	dir := t.TempDir()
	r := quietRunner(Options{Humans: 0, SaveResultOnly: true, ExportDir: dir}, 5)
	require.NoError(t, r.Run(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	steps, err := snapshot.Import(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Len(t, steps, 1)
}

func TestRunPersistsToStore(t *testing.T) {
	store, err := replay.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	defer store.Close()

	r := quietRunner(Options{Humans: 0, SaveAll: true, ExportDir: t.TempDir()}, 6)
	r.Store = store
	require.NoError(t, r.Run(context.Background()))

	games, err := store.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.NotEmpty(t, games[0].Result)

	steps, err := store.LoadSteps(context.Background(), games[0].GameID)
	require.NoError(t, err)
	assert.NotEmpty(t, steps)
}

func TestRunTwoHumansWithStubs(t *testing.T) {
	r := quietRunner(Options{Humans: 2}, 7)
	// Humans pick decks through the prompter; deck choices cycle through
	// whatever is still undisclosed. Provide a generous script.
	script := &stubPrompter{names: []string{"Alice", "Bob"}}
	for i := 0; i < 3*engine.DecksPerPile; i++ {
		for j := int8(0); j < engine.DecksPerPile; j++ {
			script.decks = append(script.decks, j)
		}
	}
	r.Prompt = script
	// In quiet mode the shout window is skipped, so human players never
	// shout and every duel resolves on sums.
	require.NoError(t, r.Run(context.Background()))
}

func TestSetupPlayersComputerNamesDiffer(t *testing.T) {
	r := quietRunner(Options{Humans: 0}, 8)
	first, second, err := r.setupPlayers()
	require.NoError(t, err)
	assert.NotEqual(t, first.Name, second.Name)
	assert.Equal(t, engine.KindComputer, first.Kind)
	assert.Equal(t, engine.KindComputer, second.Kind)
}

package snapshot

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
)

func testGame(seed uint64) *engine.Game {
	rng := rand.New(rand.NewPCG(seed, seed))
	red := engine.PlayerState{Name: "Ruby", Kind: engine.KindComputer, Strategy: engine.Presets()[0].Strategy}
	black := engine.PlayerState{Name: "Onyx", Kind: engine.KindHuman}
	g := engine.NewGame(red, black, engine.DefaultRules(), rng)
	g.Deal()
	return g
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	g := testGame(1)
	_, err := g.ToNextDuel()
	require.NoError(t, err)

	raw, err := Capture(g)
	require.NoError(t, err)

	got, err := Restore(raw, rand.New(rand.NewPCG(2, 2)))
	require.NoError(t, err)
	assert.Equal(t, g.Players, got.Players)
	assert.Equal(t, g.Duels, got.Duels)
	assert.Equal(t, g.DuelIdx, got.DuelIdx)
	assert.Equal(t, g.Rules, got.Rules)
	require.NotNil(t, got.RNG(), "a restored game must be playable")
}

func TestRecorderExportAndImport(t *testing.T) {
	g := testGame(3)
	rec := NewRecorder()
	require.NoError(t, rec.Save(g, "first"))
	require.NoError(t, rec.Save(g, "second"))

	dir := t.TempDir()
	path, err := rec.Export(dir, g, false)
	require.NoError(t, err)

	steps, err := Import(path)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 0, steps[0].Seq)
	assert.Equal(t, "first", steps[0].Message)

	restored, err := Restore(steps[1].State, rand.New(rand.NewPCG(4, 4)))
	require.NoError(t, err)
	assert.Equal(t, g.Players, restored.Players)
}

func TestExportResultOnly(t *testing.T) {
	g := testGame(5)
	rec := NewRecorder()
	require.NoError(t, rec.Save(g, "first"))
	require.NoError(t, rec.Save(g, "last"))

	path, err := rec.Export(t.TempDir(), g, true)
	require.NoError(t, err)
	steps, err := Import(path)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "last", steps[0].Message)
}

func TestExportEmptyRecorder(t *testing.T) {
	rec := NewRecorder()
	_, err := rec.Export(t.TempDir(), testGame(6), false)
	assert.Error(t, err)
}

func TestFileNamePattern(t *testing.T) {
	g := testGame(7)
	g.StartedAt = time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	name := FileName(g)
	assert.Equal(t, "ComputerPlayer(Ruby)HumanPlayer(Onyx)20260829153000.json", name)
}

func TestExportCreatesDirectory(t *testing.T) {
	g := testGame(8)
	rec := NewRecorder()
	require.NoError(t, rec.Save(g, "only"))

	dir := filepath.Join(t.TempDir(), "json")
	path, err := rec.Export(dir, g, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

package replay

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/snapshot"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSteps() []snapshot.Step {
	return []snapshot.Step{
		{Seq: 0, Message: "Duel #1 started!", State: json.RawMessage(`{"DuelIdx":0}`)},
		{Seq: 1, Message: "Ooh, double dare!", State: json.RawMessage(`{"DuelIdx":0}`)},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestSaveAndLoadSteps(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rec := GameRecord{
		GameID:    "game-1",
		RedName:   "Ruby",
		BlackName: "Onyx",
		StartedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Result:    "finished",
	}
	require.NoError(t, store.SaveGame(ctx, rec, testSteps()))

	steps, err := store.LoadSteps(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "Duel #1 started!", steps[0].Message)
	assert.JSONEq(t, `{"DuelIdx":0}`, string(steps[1].State))
}

func TestSaveGameUpsertsResult(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rec := GameRecord{GameID: "game-2", RedName: "a", BlackName: "b", StartedAt: time.Now()}
	require.NoError(t, store.SaveGame(ctx, rec, nil))

	rec.Result = "done"
	require.NoError(t, store.SaveGame(ctx, rec, testSteps()))

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "done", games[0].Result)
}

func TestListGamesOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	older := GameRecord{GameID: "old", RedName: "a", BlackName: "b",
		StartedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := GameRecord{GameID: "new", RedName: "a", BlackName: "b",
		StartedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, store.SaveGame(ctx, older, nil))
	require.NoError(t, store.SaveGame(ctx, newer, nil))

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "new", games[0].GameID)
	assert.Equal(t, older.StartedAt, games[1].StartedAt)
}

func TestSaveGameRequiresID(t *testing.T) {
	store := openTestStore(t)
	err := store.SaveGame(context.Background(), GameRecord{}, nil)
	assert.Error(t, err)
}

func TestLoadStepsUnknownGame(t *testing.T) {
	store := openTestStore(t)
	steps, err := store.LoadSteps(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, steps)
}

// Package replay persists recorded game steps in SQLite, so past matches
// can be listed and reloaded without keeping the JSON export files around.
package replay

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/snapshot"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id    TEXT PRIMARY KEY,
	red_name   TEXT NOT NULL,
	black_name TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	result     TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS replay_steps (
	game_id TEXT NOT NULL REFERENCES games(game_id),
	seq     INTEGER NOT NULL,
	message TEXT NOT NULL,
	state   BLOB NOT NULL,
	PRIMARY KEY (game_id, seq)
);
`

// GameRecord is one stored match in the listing.
type GameRecord struct {
	GameID    string
	RedName   string
	BlackName string
	StartedAt time.Time
	Result    string
}

// Store persists replays in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the replay store at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveGame upserts the game row and stores every recorded step in one
// transaction.
func (s *Store) SaveGame(ctx context.Context, rec GameRecord, steps []snapshot.Step) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rec.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (game_id, red_name, black_name, started_at, result)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET result = excluded.result`,
		rec.GameID, rec.RedName, rec.BlackName, rec.StartedAt.UTC().UnixMilli(), rec.Result)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	for _, step := range steps {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO replay_steps (game_id, seq, message, state)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(game_id, seq) DO UPDATE SET message = excluded.message, state = excluded.state`,
			rec.GameID, step.Seq, step.Message, []byte(step.State))
		if err != nil {
			return fmt.Errorf("insert step %d: %w", step.Seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadSteps returns the recorded steps of a game in sequence order.
func (s *Store) LoadSteps(ctx context.Context, gameID string) ([]snapshot.Step, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT seq, message, state FROM replay_steps
		WHERE game_id = ? ORDER BY seq`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var steps []snapshot.Step
	for rows.Next() {
		var step snapshot.Step
		var state []byte
		if err := rows.Scan(&step.Seq, &step.Message, &state); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step.State = json.RawMessage(state)
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// ListGames returns stored games, most recent first.
func (s *Store) ListGames(ctx context.Context) ([]GameRecord, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT game_id, red_name, black_name, started_at, result
		FROM games ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var out []GameRecord
	for rows.Next() {
		var rec GameRecord
		var startedAt int64
		if err := rows.Scan(&rec.GameID, &rec.RedName, &rec.BlackName, &startedAt, &rec.Result); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedAt).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return out, nil
}

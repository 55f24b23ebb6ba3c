// Package journal records colony runs in SQLite: one row per run, one per
// played turn, and the events each turn raised. It is append-only; the
// simulation is never restored from it.
package journal

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/colony-sim/internal/economy"
	"github.com/talgya/colony-sim/internal/engine"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Run is one simulation run.
type Run struct {
	ID      int64  `db:"id"`
	Seed    int64  `db:"seed"`
	Width   int    `db:"width"`
	Height  int    `db:"height"`
	Turns   int    `db:"turns"`
	Outcome string `db:"outcome"`
}

// Turn is the stored summary of one played turn.
type Turn struct {
	RunID      int64 `db:"run_id"`
	Turn       int   `db:"turn"`
	Population int   `db:"population"`
	Buildings  int   `db:"buildings"`
	Starving   int   `db:"starving"`
	Births     int   `db:"births"`
	Deaths     int   `db:"deaths"`
	Wood       int   `db:"wood"`
	Stone      int   `db:"stone"`
	Gold       int   `db:"gold"`
	Food       int   `db:"food"`
	Tools      int   `db:"tools"`
}

// Open opens or creates a journal database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		turns INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL DEFAULT 'ongoing'
	);

	CREATE TABLE IF NOT EXISTS turns (
		run_id INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		population INTEGER NOT NULL,
		buildings INTEGER NOT NULL,
		starving INTEGER NOT NULL,
		births INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		wood INTEGER NOT NULL,
		stone INTEGER NOT NULL,
		gold INTEGER NOT NULL,
		food INTEGER NOT NULL,
		tools INTEGER NOT NULL,
		PRIMARY KEY (run_id, turn)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, turn);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// StartRun registers a new run and returns its ID.
func (db *DB) StartRun(seed int64, width, height int) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO runs (seed, width, height) VALUES (?, ?, ?)",
		seed, width, height,
	)
	if err != nil {
		return 0, fmt.Errorf("start run: %w", err)
	}
	return res.LastInsertId()
}

// SaveTurn stores the summary of one played turn. Saving the same turn
// twice replaces the earlier row.
func (db *DB) SaveTurn(runID int64, sum engine.TurnSummary) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO turns
		(run_id, turn, population, buildings, starving, births, deaths,
		 wood, stone, gold, food, tools)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, sum.Turn, sum.Population, sum.Buildings, sum.Starving, sum.Births, sum.Deaths,
		sum.Resources[economy.Wood], sum.Resources[economy.Stone], sum.Resources[economy.Gold],
		sum.Resources[economy.Food], sum.Resources[economy.Tools],
	)
	if err != nil {
		return fmt.Errorf("save turn %d: %w", sum.Turn, err)
	}
	return nil
}

// SaveEvents appends events to a run.
func (db *DB) SaveEvents(runID int64, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, turn, description, category) VALUES (?, ?, ?, ?)",
			runID, e.Turn, e.Description, e.Category,
		)
		if err != nil {
			return fmt.Errorf("save event: %w", err)
		}
	}

	return tx.Commit()
}

// FinishRun records how a run ended.
func (db *DB) FinishRun(runID int64, sim *engine.Simulation) error {
	played := sim.CurrentTurn() - 1
	outcome := sim.Outcome().String()

	if _, err := db.conn.Exec(
		"UPDATE runs SET turns = ?, outcome = ? WHERE id = ?",
		played, outcome, runID,
	); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if err := db.SaveMeta("last_run", strconv.FormatInt(runID, 10)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("run journaled", "run", runID, "turns", played, "outcome", outcome)
	return nil
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO journal_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM journal_meta WHERE key = ?", key)
	return value, err
}

// GetRun returns a stored run.
func (db *DB) GetRun(runID int64) (Run, error) {
	var r Run
	err := db.conn.Get(&r, "SELECT id, seed, width, height, turns, outcome FROM runs WHERE id = ?", runID)
	return r, err
}

// Turns returns every stored turn of a run, oldest first.
func (db *DB) Turns(runID int64) ([]Turn, error) {
	var turns []Turn
	err := db.conn.Select(&turns,
		"SELECT * FROM turns WHERE run_id = ? ORDER BY turn",
		runID,
	)
	return turns, err
}

// RecentEvents returns the most recent N events across all runs, newest
// first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT turn, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

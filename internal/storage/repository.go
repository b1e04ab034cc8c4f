package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Common errors.
var (
	ErrNotFound = errors.New("player not found")
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// PlayerRepository handles player CRUD operations against the tabular store.
// Placeholders use the $N style, which both lib/pq and go-sqlite3 accept.
type PlayerRepository struct {
	db DB
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// EnsureSchema creates the players table if it does not exist.
func (r *PlayerRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS players (
			name            TEXT PRIMARY KEY,
			university      TEXT NOT NULL DEFAULT '',
			category        TEXT NOT NULL DEFAULT '',
			total_runs      INTEGER NOT NULL DEFAULT 0,
			balls_faced     INTEGER NOT NULL DEFAULT 0,
			innings_played  INTEGER NOT NULL DEFAULT 0,
			wickets         INTEGER NOT NULL DEFAULT 0,
			overs_bowled    REAL NOT NULL DEFAULT 0,
			runs_conceded   INTEGER NOT NULL DEFAULT 0,
			base_price      INTEGER NOT NULL DEFAULT 0,
			created_at      TIMESTAMP NOT NULL,
			updated_at      TIMESTAMP NOT NULL
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create players table: %w", err)
	}
	return nil
}

// Upsert inserts or updates a player by name. Last write wins.
func (r *PlayerRepository) Upsert(ctx context.Context, p *PlayerRecord) error {
	now := time.Now()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	query := `
		INSERT INTO players (
			name, university, category, total_runs, balls_faced, innings_played,
			wickets, overs_bowled, runs_conceded, base_price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (name) DO UPDATE SET
			university     = EXCLUDED.university,
			category       = EXCLUDED.category,
			total_runs     = EXCLUDED.total_runs,
			balls_faced    = EXCLUDED.balls_faced,
			innings_played = EXCLUDED.innings_played,
			wickets        = EXCLUDED.wickets,
			overs_bowled   = EXCLUDED.overs_bowled,
			runs_conceded  = EXCLUDED.runs_conceded,
			base_price     = EXCLUDED.base_price,
			updated_at     = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.University, p.Category, p.TotalRuns, p.BallsFaced,
		p.InningsPlayed, p.Wickets, p.OversBowled, p.RunsConceded,
		p.BasePrice, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert player %q: %w", p.Name, err)
	}
	return nil
}

// DeleteByName removes a player. Deleting an absent player is not an error.
func (r *PlayerRepository) DeleteByName(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE name = $1`, name); err != nil {
		return fmt.Errorf("delete player %q: %w", name, err)
	}
	return nil
}

// GetByName retrieves a single player.
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*PlayerRecord, error) {
	query := `
		SELECT name, university, category, total_runs, balls_faced, innings_played,
		       wickets, overs_bowled, runs_conceded, base_price, created_at, updated_at
		FROM players WHERE name = $1
	`
	p := &PlayerRecord{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&p.Name, &p.University, &p.Category, &p.TotalRuns, &p.BallsFaced,
		&p.InningsPlayed, &p.Wickets, &p.OversBowled, &p.RunsConceded,
		&p.BasePrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %q: %w", name, err)
	}
	return p, nil
}

// List returns every player in insertion order. An empty store returns an
// empty slice, not an error.
func (r *PlayerRepository) List(ctx context.Context) ([]PlayerRecord, error) {
	query := `
		SELECT name, university, category, total_runs, balls_faced, innings_played,
		       wickets, overs_bowled, runs_conceded, base_price, created_at, updated_at
		FROM players ORDER BY created_at, name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(
			&p.Name, &p.University, &p.Category, &p.TotalRuns, &p.BallsFaced,
			&p.InningsPlayed, &p.Wickets, &p.OversBowled, &p.RunsConceded,
			&p.BasePrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

// Count returns the number of stored players.
func (r *PlayerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

// Open opens a database/sql connection for the given driver. Drivers are
// registered by the importing binary (go-sqlite3 or lib/pq).
func Open(driver, dsn string, maxOpen, maxIdle int, maxLifetime time.Duration) (*sql.DB, error) {
	driverName := "sqlite3"
	if driver == "postgres" {
		driverName = "postgres"
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}
	return db, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mkogan/connect-four/internal/domain"
)

// Open connects to Postgres and applies the pool settings.
func Open(databaseURL string, maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id     TEXT PRIMARY KEY,
	player1     TEXT NOT NULL,
	player2     TEXT NOT NULL,
	winner      TEXT,
	is_draw     BOOLEAN NOT NULL DEFAULT FALSE,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	moves_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_games_winner ON games (winner) WHERE winner IS NOT NULL;
`

// RunMigrations creates the schema if it does not exist yet.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %v", err)
	}
	return nil
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	winner := sql.NullString{String: rec.Winner, Valid: rec.Winner != ""}

	query := `
	INSERT INTO games (game_id, player1, player2, winner, is_draw, started_at, finished_at, moves_count)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7)
	ON CONFLICT (game_id) DO NOTHING;
	`
	_, err := s.DB.ExecContext(ctx, query,
		rec.GameID, rec.Players[0], rec.Players[1], winner, rec.IsDraw, rec.StartTime, rec.MovesCount)
	if err != nil {
		return fmt.Errorf("failed to insert game record: %v", err)
	}
	return nil
}

// Leaderboard is the top ten players by win count, descending.
func (s *Store) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	query := `
	SELECT winner, COUNT(*) AS wins
	FROM games
	WHERE winner IS NOT NULL
	GROUP BY winner
	ORDER BY wins DESC
	LIMIT 10;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %v", err)
	}
	defer rows.Close()

	leaderboard := make([]domain.LeaderboardEntry, 0)
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.Username, &entry.Wins); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %v", err)
		}
		leaderboard = append(leaderboard, entry)
	}
	return leaderboard, rows.Err()
}

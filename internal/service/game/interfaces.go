package game

import (
	"context"

	"github.com/mkogan/connect-four/internal/domain"
)

// Conn is one client connection as the manager sees it. The transport layer
// owns the socket; the manager only needs identity, delivery and liveness.
type Conn interface {
	ID() string
	Username() string
	Send(msg domain.ServerMessage) error
	Alive() bool
}

// Store persists finished games and serves the leaderboard.
type Store interface {
	SaveGame(ctx context.Context, rec domain.GameRecord) error
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// Publisher hands completion records to the external event log. Failures
// are logged by the manager and never affect game state.
type Publisher interface {
	PublishGameEnd(ev domain.GameEndEvent) error
}

package repository

import (
	"context"
	"log"

	"github.com/mkogan/connect-four/internal/domain"
)

// Store persists finished games and aggregates the leaderboard.
type Store interface {
	SaveGame(ctx context.Context, rec domain.GameRecord) error
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// Fallback pairs a backing store with the in-memory one so the service
// keeps working when the database is down. Every game is always recorded
// in memory; the primary is used when configured and reachable.
type Fallback struct {
	primary Store // nil when no database is configured
	memory  Store
}

func NewFallback(primary, memory Store) *Fallback {
	return &Fallback{primary: primary, memory: memory}
}

func (f *Fallback) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	if err := f.memory.SaveGame(ctx, rec); err != nil {
		log.Printf("[DB] In-memory save failed for game %s: %v", rec.GameID, err)
	}
	if f.primary == nil {
		return nil
	}
	if err := f.primary.SaveGame(ctx, rec); err != nil {
		log.Printf("[DB] Error saving game %s, kept in memory: %v", rec.GameID, err)
	}
	return nil
}

func (f *Fallback) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if f.primary != nil {
		entries, err := f.primary.Leaderboard(ctx)
		if err == nil {
			return entries, nil
		}
		log.Printf("[DB] Leaderboard query failed, using in-memory fallback: %v", err)
	}
	return f.memory.Leaderboard(ctx)
}

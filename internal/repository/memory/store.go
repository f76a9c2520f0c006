package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mkogan/connect-four/internal/domain"
)

const leaderboardSize = 10

// Store keeps finished games in process memory. It is the always-available
// fallback behind the database and the whole truth when none is configured.
type Store struct {
	mu    sync.Mutex
	games []domain.GameRecord
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SaveGame(_ context.Context, rec domain.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = append(s.games, rec)
	return nil
}

// Leaderboard aggregates win counts over the recorded games, descending,
// capped at ten entries. Ties keep first-win order.
func (s *Store) Leaderboard(_ context.Context) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wins := make(map[string]int)
	var order []string
	for _, g := range s.games {
		if g.Winner == "" {
			continue
		}
		if _, seen := wins[g.Winner]; !seen {
			order = append(order, g.Winner)
		}
		wins[g.Winner]++
	}

	entries := make([]domain.LeaderboardEntry, 0, len(order))
	for _, username := range order {
		entries = append(entries, domain.LeaderboardEntry{Username: username, Wins: wins[username]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Wins > entries[j].Wins
	})

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries, nil
}

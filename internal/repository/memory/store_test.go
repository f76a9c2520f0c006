package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkogan/connect-four/internal/domain"
)

func saveWin(t *testing.T, s *Store, id, winner, loser string) {
	t.Helper()
	err := s.SaveGame(context.Background(), domain.GameRecord{
		GameID:  id,
		Players: [2]string{winner, loser},
		Winner:  winner,
	})
	require.NoError(t, err)
}

func TestLeaderboardOrdersByWins(t *testing.T) {
	s := NewStore()

	saveWin(t, s, "g1", "alice", "bob")
	saveWin(t, s, "g2", "alice", "carol")
	saveWin(t, s, "g3", "bob", "carol")

	entries, err := s.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.LeaderboardEntry{
		{Username: "alice", Wins: 2},
		{Username: "bob", Wins: 1},
	}, entries)
}

func TestLeaderboardIgnoresDraws(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.SaveGame(context.Background(), domain.GameRecord{
		GameID:  "g1",
		Players: [2]string{"alice", "bob"},
		IsDraw:  true,
	}))

	entries, err := s.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLeaderboardTiesKeepFirstWinOrder(t *testing.T) {
	s := NewStore()

	saveWin(t, s, "g1", "bob", "alice")
	saveWin(t, s, "g2", "alice", "bob")

	entries, err := s.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, "bob", entries[0].Username)
	require.Equal(t, "alice", entries[1].Username)
}

func TestLeaderboardCapsAtTen(t *testing.T) {
	s := NewStore()

	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("player%02d", i)
		// player00 has 13 wins, player01 has 12, and so on down.
		for w := 0; w < 13-i; w++ {
			saveWin(t, s, fmt.Sprintf("g-%s-%d", name, w), name, "other")
		}
	}

	entries, err := s.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 10)
	require.Equal(t, "player00", entries[0].Username)
	require.Equal(t, 13, entries[0].Wins)
	require.Equal(t, "player09", entries[9].Username)
	require.Equal(t, 4, entries[9].Wins)
}

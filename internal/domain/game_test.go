package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGame() *Game {
	return NewGame(HumanParticipant("alice"), HumanParticipant("bob"))
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame()

	require.NotEmpty(t, g.ID)
	require.Equal(t, "alice", g.CurrentPlayer().Name)
	require.False(t, g.IsFinished())
	require.False(t, g.IsBotGame)
	require.Empty(t, g.Moves)
	require.False(t, g.StartTime.IsZero())
}

func TestBotGameFlag(t *testing.T) {
	g := NewGame(HumanParticipant("alice"), BotParticipant())
	require.True(t, g.IsBotGame)
	require.True(t, g.Players[1].IsBot())

	// A human who happens to use the bot's name is still a human.
	imposter := NewGame(HumanParticipant(BotName), HumanParticipant("bob"))
	require.False(t, imposter.IsBotGame)
}

func TestMakeMoveTurnsAlternate(t *testing.T) {
	g := newTestGame()

	row, err := g.MakeMove("alice", 3)
	require.NoError(t, err)
	require.Equal(t, 5, row)
	require.Equal(t, "bob", g.CurrentPlayer().Name)

	row, err = g.MakeMove("bob", 0)
	require.NoError(t, err)
	require.Equal(t, 5, row)
	require.Equal(t, "alice", g.CurrentPlayer().Name)

	// Same column stacks, never overwrites.
	row, err = g.MakeMove("alice", 3)
	require.NoError(t, err)
	require.Equal(t, 4, row)
	require.Equal(t, Player1, g.Board[5][3])
	require.Equal(t, Player1, g.Board[4][3])
}

func TestMakeMoveRejections(t *testing.T) {
	g := newTestGame()

	boardBefore := CopyBoard(g.Board)
	turnBefore := g.TurnIndex

	_, err := g.MakeMove("bob", 3)
	require.ErrorIs(t, err, ErrNotYourTurn)

	_, err = g.MakeMove("alice", -1)
	require.ErrorIs(t, err, ErrInvalidColumn)

	_, err = g.MakeMove("alice", Columns)
	require.ErrorIs(t, err, ErrInvalidColumn)

	require.Equal(t, boardBefore, g.Board, "rejection must not touch the board")
	require.Equal(t, turnBefore, g.TurnIndex, "rejection must not flip the turn")
}

func TestMakeMoveColumnFull(t *testing.T) {
	g := newTestGame()

	players := []string{"alice", "bob"}
	for i := 0; i < Rows; i++ {
		_, err := g.MakeMove(players[i%2], 2)
		require.NoError(t, err)
	}

	_, err := g.MakeMove("alice", 2)
	require.ErrorIs(t, err, ErrColumnFull)
}

func TestWinEndsGame(t *testing.T) {
	g := newTestGame()

	// alice builds (5,0)..(5,3), bob stacks harmlessly on column 6.
	moves := []struct {
		player string
		col    int
	}{
		{"alice", 0}, {"bob", 6},
		{"alice", 1}, {"bob", 6},
		{"alice", 2}, {"bob", 6},
		{"alice", 3},
	}
	for _, mv := range moves {
		_, err := g.MakeMove(mv.player, mv.col)
		require.NoError(t, err)
	}

	require.Equal(t, "alice", g.Winner)
	require.False(t, g.IsDraw)
	require.True(t, g.IsFinished())
	require.Len(t, g.Moves, 7)

	_, err := g.MakeMove("bob", 5)
	require.ErrorIs(t, err, ErrGameOver)
}

// drawPattern has no four-in-a-row anywhere: columns alternate horizontally
// and rows swap sides every two rows, capping every run at two.
func drawPattern(r, c int) PlayerID {
	if (c+r/2)%2 == 0 {
		return Player1
	}
	return Player2
}

func TestDrawDetectedOnLastMove(t *testing.T) {
	g := newTestGame()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			g.Board[r][c] = drawPattern(r, c)
		}
	}

	// Reopen the top of column 6 and let its owner drop the final disk.
	g.Board[0][6] = Empty
	if drawPattern(0, 6) == Player2 {
		g.TurnIndex = 1
	}

	_, err := g.MakeMove(g.CurrentPlayer().Name, 6)
	require.NoError(t, err)
	require.True(t, g.IsDraw)
	require.Empty(t, g.Winner)
	require.True(t, g.IsFinished())
}

func TestForfeit(t *testing.T) {
	g := newTestGame()
	g.Forfeit("alice")

	require.Equal(t, "bob", g.Winner)
	require.False(t, g.IsDraw)

	// Terminal state is sticky.
	g.Forfeit("bob")
	require.Equal(t, "bob", g.Winner)
}

func TestSnapshot(t *testing.T) {
	g := newTestGame()
	_, err := g.MakeMove("alice", 3)
	require.NoError(t, err)

	state := g.Snapshot()
	require.Equal(t, g.ID, state.GameID)
	require.Equal(t, [2]string{"alice", "bob"}, state.Players)
	require.Equal(t, "bob", state.Turn)
	require.Equal(t, "alice", state.Board[5][3])
	require.Equal(t, "", state.Board[0][0])
	require.False(t, state.IsDraw)
}

func TestRecord(t *testing.T) {
	g := newTestGame()
	_, err := g.MakeMove("alice", 0)
	require.NoError(t, err)
	g.Forfeit("bob")

	rec := g.Record()
	require.Equal(t, g.ID, rec.GameID)
	require.Equal(t, [2]string{"alice", "bob"}, rec.Players)
	require.Equal(t, "alice", rec.Winner)
	require.False(t, rec.IsDraw)
	require.Equal(t, 1, rec.MovesCount)
	require.Equal(t, g.StartTime, rec.StartTime)
}

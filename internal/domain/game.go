package domain

import (
	"time"

	"github.com/google/uuid"
)

// Move is one entry of a game's append-only move log.
type Move struct {
	Player    string    `json:"player"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Timestamp time.Time `json:"timestamp"`
}

// Game owns the mutable state of one session: the board, whose turn it is
// and the terminal fields. It knows nothing about connections or timers.
type Game struct {
	ID        string
	Players   [2]Participant
	Board     [][]PlayerID
	TurnIndex int
	Winner    string // participant name, empty while in progress
	IsDraw    bool
	Moves     []Move
	StartTime time.Time
	IsBotGame bool
}

func NewGame(player1, player2 Participant) *Game {
	return &Game{
		ID:        uuid.NewString(),
		Players:   [2]Participant{player1, player2},
		Board:     NewBoard(),
		TurnIndex: 0,
		StartTime: time.Now(),
		IsBotGame: player1.IsBot() || player2.IsBot(),
	}
}

func (g *Game) CurrentPlayer() Participant {
	return g.Players[g.TurnIndex]
}

// CurrentSide is the disk colour of the participant whose turn it is.
func (g *Game) CurrentSide() PlayerID {
	return PlayerID(g.TurnIndex + 1)
}

func (g *Game) IsFinished() bool {
	return g.Winner != "" || g.IsDraw
}

// MakeMove drops a disk for the named participant. Validation order: the
// session must not be terminal, it must be that participant's turn, the
// column must be in range and not full. A rejected move leaves the board
// and the turn index untouched.
func (g *Game) MakeMove(playerName string, column int) (row int, err error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if playerName != g.CurrentPlayer().Name {
		return -1, ErrNotYourTurn
	}
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}

	row, ok := DropRow(g.Board, column)
	if !ok {
		return -1, ErrColumnFull
	}

	side := g.CurrentSide()
	g.Board[row][column] = side
	g.Moves = append(g.Moves, Move{
		Player:    playerName,
		Row:       row,
		Col:       column,
		Timestamp: time.Now(),
	})

	if CheckWin(g.Board, row, column, side) {
		g.Winner = playerName
		return row, nil
	}
	if CheckDraw(g.Board) {
		g.IsDraw = true
		return row, nil
	}

	g.TurnIndex = 1 - g.TurnIndex
	return row, nil
}

// Forfeit ends the game declaring the opponent of loserName the winner.
// No-op once the game is already terminal.
func (g *Game) Forfeit(loserName string) {
	if g.IsFinished() {
		return
	}
	for _, p := range g.Players {
		if p.Name != loserName {
			g.Winner = p.Name
		}
	}
	g.IsDraw = false
}

// Snapshot renders the full current state for clients, with board cells as
// participant names so the frontend never needs the side mapping.
func (g *Game) Snapshot() *GameState {
	board := make([][]string, Rows)
	for r := range board {
		board[r] = make([]string, Columns)
		for c := range board[r] {
			if side := g.Board[r][c]; side != Empty {
				board[r][c] = g.Players[side-1].Name
			}
		}
	}
	return &GameState{
		GameID:  g.ID,
		Players: [2]string{g.Players[0].Name, g.Players[1].Name},
		Board:   board,
		Turn:    g.CurrentPlayer().Name,
		Winner:  g.Winner,
		IsDraw:  g.IsDraw,
	}
}

// Record summarizes a finished game for persistence.
func (g *Game) Record() GameRecord {
	return GameRecord{
		GameID:     g.ID,
		Players:    [2]string{g.Players[0].Name, g.Players[1].Name},
		Winner:     g.Winner,
		IsDraw:     g.IsDraw,
		StartTime:  g.StartTime,
		MovesCount: len(g.Moves),
	}
}

package domain

import "time"

// ClientMessage is the single inbound envelope on the WebSocket. Column is
// a pointer so a make_move without a col field is distinguishable from a
// move in column 0.
type ClientMessage struct {
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
	Column   *int   `json:"col,omitempty"`
}

// GamePlayers names both sides of a session for game_start.
type GamePlayers struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// GameState is the full session snapshot sent on reconnect_success.
type GameState struct {
	GameID  string     `json:"gameId"`
	Players [2]string  `json:"players"`
	Board   [][]string `json:"board"`
	Turn    string     `json:"turn"`
	Winner  string     `json:"winner,omitempty"`
	IsDraw  bool       `json:"isDraw"`
}

type LeaderboardEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

// ServerMessage is the single outbound envelope. Type selects which of the
// optional fields are populated. Row/Column/IsDraw are pointers because
// zero is a meaningful value for all three.
type ServerMessage struct {
	Type        string             `json:"type"`
	Message     string             `json:"message,omitempty"`
	GameID      string             `json:"gameId,omitempty"`
	Players     *GamePlayers       `json:"players,omitempty"`
	Turn        string             `json:"turn,omitempty"`
	Row         *int               `json:"row,omitempty"`
	Column      *int               `json:"col,omitempty"`
	Player      string             `json:"player,omitempty"`
	NextTurn    string             `json:"nextTurn,omitempty"`
	Winner      string             `json:"winner,omitempty"`
	IsDraw      *bool              `json:"isDraw,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	Username    string             `json:"username,omitempty"`
	State       *GameState         `json:"state,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty"`
}

// GameRecord is the persistence shape of a finished game.
type GameRecord struct {
	GameID     string    `json:"gameId"`
	Players    [2]string `json:"players"`
	Winner     string    `json:"winner,omitempty"` // empty on draw
	IsDraw     bool      `json:"isDraw"`
	StartTime  time.Time `json:"startTime"`
	MovesCount int       `json:"movesCount"`
}

// GameEndEvent is the minimal completion record published to the event log.
type GameEndEvent struct {
	Type      string    `json:"type"`
	GameID    string    `json:"gameId"`
	Winner    string    `json:"winner,omitempty"`
	Players   [2]string `json:"players"`
	Timestamp int64     `json:"timestamp"`
}

const GameEndEventType = "GAME_END"

func NewGameEndEvent(rec GameRecord) GameEndEvent {
	return GameEndEvent{
		Type:      GameEndEventType,
		GameID:    rec.GameID,
		Winner:    rec.Winner,
		Players:   rec.Players,
		Timestamp: time.Now().UnixMilli(),
	}
}

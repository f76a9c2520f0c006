package domain

// to represent the disks on the board
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// for board representation
const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// ParticipantKind distinguishes the bot from humans without relying on a
// magic username. A real player named like the bot must never be mistaken
// for it in the identity index or the timer tables.
type ParticipantKind int

const (
	KindHuman ParticipantKind = iota
	KindBot
)

// Participant is one side of a game: a human identity or the bot.
type Participant struct {
	Name string
	Kind ParticipantKind
}

const BotName = "Bot_AI"

func BotParticipant() Participant {
	return Participant{Name: BotName, Kind: KindBot}
}

func HumanParticipant(username string) Participant {
	return Participant{Name: username, Kind: KindHuman}
}

func (p Participant) IsBot() bool {
	return p.Kind == KindBot
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrGameOver      Error = "game over"
	ErrNotYourTurn   Error = "not your turn"
	ErrInvalidColumn Error = "invalid column"
	ErrColumnFull    Error = "column full"

	ErrAlreadyQueued   Error = "already in queue"
	ErrAlreadyInGame   Error = "user already in a game, try reconnecting"
	ErrNoActiveSession Error = "no active game found to reconnect to"
)

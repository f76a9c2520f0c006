package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mkogan/connect-four/internal/domain"
)

// Timings are the fixed windows of the matchmaking core. They come from
// configuration once at startup, never per call.
type Timings struct {
	BotPromotion   time.Duration // solo queue wait before a bot game starts
	ReconnectGrace time.Duration // disconnect window before forfeiture
	BotThinkDelay  time.Duration // artificial delay before a bot replies
}

func DefaultTimings() Timings {
	return Timings{
		BotPromotion:   10 * time.Second,
		ReconnectGrace: 30 * time.Second,
		BotThinkDelay:  500 * time.Millisecond,
	}
}

type queueEntry struct {
	conn     Conn
	username string
	botTimer *time.Timer
}

// session is one live game plus the connections attached to its broadcast
// group. Conns are keyed by username so reconnection swaps them in place.
type session struct {
	game  *domain.Game
	conns map[string]Conn
}

func (s *session) broadcast(msg domain.ServerMessage) {
	for username, conn := range s.conns {
		if err := conn.Send(msg); err != nil {
			log.Printf("[SESSION] send to %s failed: %v", username, err)
		}
	}
}

// Manager is the session directory and matchmaker. It owns the queue, the
// session table, both indices and every timer. A single mutex serializes
// all event handlers and timer callbacks, so each runs to completion
// against consistent state; timer callbacks re-check that their target
// still exists, since Stop racing a fired timer is only best-effort.
type Manager struct {
	mu               sync.Mutex
	queue            []*queueEntry
	games            map[string]*session // gameID → session
	userToGame       map[string]string   // username → gameID
	connToGame       map[string]string   // connection id → gameID
	disconnectTimers map[string]*time.Timer // username → forfeit timer

	store     Store
	publisher Publisher
	timings   Timings
}

func NewManager(store Store, publisher Publisher, timings Timings) *Manager {
	return &Manager{
		games:            make(map[string]*session),
		userToGame:       make(map[string]string),
		connToGame:       make(map[string]string),
		disconnectTimers: make(map[string]*time.Timer),
		store:            store,
		publisher:        publisher,
		timings:          timings,
	}
}

// HandleJoinQueue matches the joiner against the oldest waiter, or enqueues
// them with a bot-promotion timer when nobody is waiting. Waiters whose
// connection died while queued are skipped, not matched.
func (m *Manager) HandleJoinQueue(conn Conn, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if username == "" {
		sendError(conn, "username required")
		return
	}
	if _, busy := m.userToGame[username]; busy {
		sendError(conn, domain.ErrAlreadyInGame.Error())
		return
	}
	for _, entry := range m.queue {
		if entry.username == username {
			sendError(conn, domain.ErrAlreadyQueued.Error())
			return
		}
	}

	for len(m.queue) > 0 {
		opponent := m.queue[0]
		m.queue = m.queue[1:]
		opponent.botTimer.Stop()

		if !opponent.conn.Alive() {
			log.Printf("[MATCH] Discarding stale queue entry for %s", opponent.username)
			continue
		}

		m.startGameLocked(opponent.conn, conn, opponent.username, username)
		return
	}

	entry := &queueEntry{conn: conn, username: username}
	entry.botTimer = time.AfterFunc(m.timings.BotPromotion, func() {
		m.promoteToBotGame(username)
	})
	m.queue = append(m.queue, entry)

	conn.Send(domain.ServerMessage{Type: "queue_joined", Message: "Waiting for opponent..."})
	log.Printf("[MATCH] %s joined the queue", username)
}

// startGameLocked creates a human-vs-human session and registers both
// players in every index. Caller must hold m.mu.
func (m *Manager) startGameLocked(conn1, conn2 Conn, name1, name2 string) {
	g := domain.NewGame(domain.HumanParticipant(name1), domain.HumanParticipant(name2))
	s := &session{
		game:  g,
		conns: map[string]Conn{name1: conn1, name2: conn2},
	}

	m.games[g.ID] = s
	m.userToGame[name1] = g.ID
	m.userToGame[name2] = g.ID
	m.connToGame[conn1.ID()] = g.ID
	m.connToGame[conn2.ID()] = g.ID

	s.broadcast(domain.ServerMessage{
		Type:    "game_start",
		GameID:  g.ID,
		Players: &domain.GamePlayers{Player1: name1, Player2: name2},
		Turn:    g.CurrentPlayer().Name,
	})

	log.Printf("[MATCH] Game started: %s vs %s (%s)", name1, name2, g.ID)
}

// promoteToBotGame fires when a queued player waited out the bot-promotion
// window. The entry may already be gone if a match or disconnect removed
// it between cancellation and firing.
func (m *Manager) promoteToBotGame(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entry *queueEntry
	for i, e := range m.queue {
		if e.username == username {
			entry = e
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			break
		}
	}
	if entry == nil {
		return
	}
	if !entry.conn.Alive() {
		return
	}

	g := domain.NewGame(domain.HumanParticipant(username), domain.BotParticipant())
	s := &session{
		game:  g,
		conns: map[string]Conn{username: entry.conn},
	}

	m.games[g.ID] = s
	m.userToGame[username] = g.ID
	m.connToGame[entry.conn.ID()] = g.ID

	entry.conn.Send(domain.ServerMessage{
		Type:    "game_start",
		GameID:  g.ID,
		Players: &domain.GamePlayers{Player1: username, Player2: domain.BotName},
		Turn:    g.CurrentPlayer().Name,
	})

	log.Printf("[MATCH] Bot game started for %s (%s)", username, g.ID)
}

// HandleDisconnect removes the connection from the indices. A queued player
// simply leaves the queue; a player in a live game gets a forfeiture timer
// and the grace window to come back.
func (m *Manager) HandleDisconnect(conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.connToGame, conn.ID())

	username := conn.Username()
	if username == "" {
		return
	}

	for i, entry := range m.queue {
		if entry.username == username && entry.conn.ID() == conn.ID() {
			entry.botTimer.Stop()
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			log.Printf("[MATCH] %s left the queue (disconnected)", username)
			return
		}
	}

	gameID, ok := m.userToGame[username]
	if !ok {
		return
	}
	s, ok := m.games[gameID]
	if !ok {
		return
	}

	if attached, ok := s.conns[username]; ok {
		if attached.ID() != conn.ID() {
			// A newer connection already took over for this user; the
			// closing socket is a leftover and changes nothing.
			return
		}
		delete(s.conns, username)
	}

	s.broadcast(domain.ServerMessage{Type: "player_disconnected", Username: username})
	log.Printf("[SESSION] %s disconnected from game %s, forfeit in %s",
		username, gameID, m.timings.ReconnectGrace)

	if _, armed := m.disconnectTimers[username]; !armed {
		m.armForfeitLocked(username, gameID)
	}
}

// armForfeitLocked starts the grace-window timer. The callback forfeits
// only while its own timer is still the one on record: reconnection and
// completion remove or replace the entry, and a timer whose firing raced
// Stop fails the identity check and drops out. Caller must hold m.mu.
func (m *Manager) armForfeitLocked(username, gameID string) {
	var timer *time.Timer
	timer = time.AfterFunc(m.timings.ReconnectGrace, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.disconnectTimers[username] != timer {
			return
		}
		delete(m.disconnectTimers, username)

		s, ok := m.games[gameID]
		if !ok {
			return
		}
		log.Printf("[SESSION] %s forfeits game %s by disconnection", username, gameID)
		s.game.Forfeit(username)
		m.finishGameLocked(s, "Opponent forfeited by disconnection")
	})
	m.disconnectTimers[username] = timer
}

// HandleReconnect cancels a pending forfeit and re-attaches the connection
// to its session, replying with the full current state.
func (m *Manager) HandleReconnect(conn Conn, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.disconnectTimers[username]; ok {
		t.Stop()
		delete(m.disconnectTimers, username)
	}

	gameID, ok := m.userToGame[username]
	if !ok {
		sendError(conn, domain.ErrNoActiveSession.Error())
		return
	}
	s, ok := m.games[gameID]
	if !ok {
		sendError(conn, domain.ErrNoActiveSession.Error())
		return
	}

	s.conns[username] = conn
	m.connToGame[conn.ID()] = gameID

	conn.Send(domain.ServerMessage{
		Type:   "reconnect_success",
		GameID: gameID,
		State:  s.game.Snapshot(),
	})
	s.broadcast(domain.ServerMessage{Type: "player_reconnected", Username: username})

	log.Printf("[SESSION] %s reconnected to game %s", username, gameID)
}

// HandleLeaderboard serves the win-count leaderboard. It reads no shared
// manager state, so it runs outside the lock.
func (m *Manager) HandleLeaderboard(conn Conn) {
	entries, err := m.store.Leaderboard(context.Background())
	if err != nil {
		log.Printf("[DB] Leaderboard query failed: %v", err)
		sendError(conn, "failed to fetch leaderboard")
		return
	}
	conn.Send(domain.ServerMessage{Type: "leaderboard_update", Leaderboard: entries})
}

func sendError(conn Conn, message string) {
	conn.Send(domain.ServerMessage{Type: "error", Message: message})
}

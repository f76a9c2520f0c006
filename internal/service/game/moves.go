package game

import (
	"context"
	"log"
	"time"

	"github.com/mkogan/connect-four/internal/bot"
	"github.com/mkogan/connect-four/internal/domain"
)

// HandleMove applies a move from a connection. Rejections go back to the
// requesting connection only; accepted moves are broadcast to the session
// group in receipt order.
func (m *Manager) HandleMove(conn Conn, column int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gameID, ok := m.connToGame[conn.ID()]
	if !ok {
		return
	}
	s, ok := m.games[gameID]
	if !ok {
		return
	}

	username := conn.Username()
	row, err := s.game.MakeMove(username, column)
	if err != nil {
		conn.Send(domain.ServerMessage{Type: "move_error", Message: err.Error()})
		return
	}

	m.broadcastMoveLocked(s, username, row, column)

	if s.game.IsFinished() {
		m.finishGameLocked(s, "")
		return
	}

	if s.game.IsBotGame && s.game.CurrentPlayer().IsBot() {
		time.AfterFunc(m.timings.BotThinkDelay, func() {
			m.playBotMove(gameID)
		})
	}
}

// playBotMove fires after the think delay. The session may have ended in
// the meantime (forfeit), so everything is re-checked under the lock.
func (m *Manager) playBotMove(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.games[gameID]
	if !ok {
		return
	}
	g := s.game
	if g.IsFinished() || !g.CurrentPlayer().IsBot() {
		return
	}

	self := g.CurrentSide()
	opponent := domain.Player1 + domain.Player2 - self

	// The heuristic gets a copy so a speculative disk can never leak
	// into the live board.
	column := bot.SelectMove(domain.CopyBoard(g.Board), self, opponent)
	if column < 0 {
		log.Printf("[BOT] No playable column in game %s", gameID)
		return
	}

	botName := g.CurrentPlayer().Name
	row, err := g.MakeMove(botName, column)
	if err != nil {
		log.Printf("[BOT] Move failed in game %s: %v", gameID, err)
		return
	}

	m.broadcastMoveLocked(s, botName, row, column)

	if g.IsFinished() {
		m.finishGameLocked(s, "")
	}
}

func (m *Manager) broadcastMoveLocked(s *session, player string, row, column int) {
	r, c := row, column
	s.broadcast(domain.ServerMessage{
		Type:     "move_made",
		Row:      &r,
		Column:   &c,
		Player:   player,
		NextTurn: s.game.CurrentPlayer().Name,
	})
}

// finishGameLocked runs session completion: the game_over broadcast, the
// hand-off to persistence and messaging, and removal from every table.
// Both indices are cleared for both participants, including on forfeiture,
// so no entry outlives its session. Caller must hold m.mu.
func (m *Manager) finishGameLocked(s *session, reason string) {
	g := s.game
	isDraw := g.IsDraw

	s.broadcast(domain.ServerMessage{
		Type:   "game_over",
		Winner: g.Winner,
		IsDraw: &isDraw,
		Reason: reason,
	})

	rec := g.Record()

	// Collaborator failures must not reach the game core: both hand-offs
	// run in the background and only log.
	go func() {
		if err := m.store.SaveGame(context.Background(), rec); err != nil {
			log.Printf("[DB] Error saving game %s: %v", rec.GameID, err)
		}
	}()
	go func() {
		if err := m.publisher.PublishGameEnd(domain.NewGameEndEvent(rec)); err != nil {
			log.Printf("[EVENTS] Error publishing game end for %s: %v", rec.GameID, err)
		}
	}()

	delete(m.games, g.ID)
	for _, p := range g.Players {
		if p.IsBot() {
			continue
		}
		delete(m.userToGame, p.Name)
		if t, ok := m.disconnectTimers[p.Name]; ok {
			t.Stop()
			delete(m.disconnectTimers, p.Name)
		}
	}
	for _, conn := range s.conns {
		delete(m.connToGame, conn.ID())
	}

	log.Printf("[SESSION] Game %s finished (winner=%q draw=%v)", g.ID, g.Winner, isDraw)
}

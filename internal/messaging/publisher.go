package messaging

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/mkogan/connect-four/internal/domain"
)

// SubjectGameEvents carries the completion record of every finished game.
const SubjectGameEvents = "game.events"

// Publisher emits game-end events to NATS, best-effort. With no broker
// reachable it stays disabled and every publish is a logged no-op; game
// correctness never depends on the event log.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials the broker. A failed dial returns a disabled publisher,
// not an error, mirroring how the rest of the collaborators degrade.
func Connect(url string) *Publisher {
	conn, err := nats.Connect(url,
		nats.Name("connect-four-server"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		log.Printf("[EVENTS] Warning: could not connect to NATS at %s: %v. Game events disabled.", url, err)
		return &Publisher{}
	}

	log.Printf("[EVENTS] Connected to NATS at %s", url)
	return &Publisher{conn: conn}
}

func (p *Publisher) PublishGameEnd(ev domain.GameEndEvent) error {
	if p.conn == nil {
		return nil
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectGameEvents, data)
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}

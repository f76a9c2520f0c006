package messaging

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/mkogan/connect-four/internal/domain"
)

// AnalyticsGroup is the queue group shared by analytics consumers, so each
// game-end event is processed once however many instances run.
const AnalyticsGroup = "game-analytics"

// SubscribeAnalytics consumes game-end events for offline analysis. The
// subscription lives as long as the connection.
func SubscribeAnalytics(conn *nats.Conn) (*nats.Subscription, error) {
	return conn.QueueSubscribe(SubjectGameEvents, AnalyticsGroup, func(msg *nats.Msg) {
		var ev domain.GameEndEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Printf("[ANALYTICS] Ignoring malformed event: %v", err)
			return
		}
		if ev.Type != domain.GameEndEventType {
			return
		}

		if ev.Winner != "" {
			log.Printf("[ANALYTICS] Game %s finished: winner %s (%s vs %s)",
				ev.GameID, ev.Winner, ev.Players[0], ev.Players[1])
		} else {
			log.Printf("[ANALYTICS] Game %s finished: draw (%s vs %s)",
				ev.GameID, ev.Players[0], ev.Players[1])
		}
	})
}

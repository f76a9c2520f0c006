package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/mkogan/connect-four/internal/config"
	"github.com/mkogan/connect-four/internal/messaging"
)

// Standalone consumer of game-end events. Runs beside the game server and
// keeps retrying the broker, so it can start before NATS does.
func main() {
	log.Println("Starting analytics consumer...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("connect-four-analytics"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		log.Fatalf("[ANALYTICS] Could not set up NATS connection: %v", err)
	}
	defer conn.Drain()

	sub, err := messaging.SubscribeAnalytics(conn)
	if err != nil {
		log.Fatalf("[ANALYTICS] Subscribe failed: %v", err)
	}
	defer sub.Unsubscribe()

	log.Printf("[ANALYTICS] Consuming %s (group %s)", messaging.SubjectGameEvents, messaging.AnalyticsGroup)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[ANALYTICS] Shutting down")
}

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkogan/connect-four/internal/config"
	"github.com/mkogan/connect-four/internal/messaging"
	"github.com/mkogan/connect-four/internal/repository"
	"github.com/mkogan/connect-four/internal/repository/memory"
	"github.com/mkogan/connect-four/internal/repository/postgres"
	redisrepo "github.com/mkogan/connect-four/internal/repository/redis"
	"github.com/mkogan/connect-four/internal/service/game"
	"github.com/mkogan/connect-four/internal/transport/websocket"
)

func main() {
	log.Println("Starting connect-four server...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	// Persistence: finished games always land in memory; Postgres is used
	// when configured and reachable, so a database outage never stops play.
	memStore := memory.NewStore()

	var primary repository.Store
	var db *sql.DB
	if cfg.DatabaseURL == "" {
		log.Println("[DB] No DATABASE_URL set, running with in-memory store only")
	} else {
		var err error
		db, err = postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns,
			time.Duration(cfg.DBConnMaxLifetimeMin)*time.Minute)
		if err != nil {
			log.Printf("[DB] Warning: %v. Falling back to in-memory store.", err)
		} else if err := postgres.RunMigrations(db); err != nil {
			log.Printf("[DB] Warning: migration failed: %v. Falling back to in-memory store.", err)
			db.Close()
			db = nil
		} else {
			log.Println("[DB] Database connected successfully")
			primary = postgres.NewStore(db)
		}
	}
	if db != nil {
		defer db.Close()
	}

	var store repository.Store = repository.NewFallback(primary, memStore)

	// Optional leaderboard cache.
	if cfg.RedisAddr != "" {
		client, err := redisrepo.Open(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Printf("[REDIS] Warning: could not connect to Redis: %v. Running without cache.", err)
		} else {
			log.Println("[REDIS] Connected successfully")
			defer client.Close()
			store = redisrepo.NewLeaderboardCache(client, store, 10*time.Second)
		}
	}

	publisher := messaging.Connect(cfg.NATSURL)
	defer publisher.Close()

	manager := game.NewManager(store, publisher, game.Timings{
		BotPromotion:   cfg.BotPromotionWindow,
		ReconnectGrace: cfg.ReconnectGrace,
		BotThinkDelay:  cfg.BotThinkDelay,
	})

	wsHandler := websocket.NewHandler(manager)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.HandleWebSocket)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		leaderboard, err := store.Leaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to fetch leaderboard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(leaderboard)
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.Printf("Server is listening on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Server is shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

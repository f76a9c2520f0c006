package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkogan/connect-four/internal/domain"
	"github.com/mkogan/connect-four/internal/repository"
)

const leaderboardKey = "leaderboard"

// Open connects to Redis. The caller treats an error as "run without a
// cache"; the game never depends on Redis being up.
func Open(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// LeaderboardCache is a read-through cache in front of a Store. Saving a
// game invalidates the cached leaderboard.
type LeaderboardCache struct {
	client *redis.Client
	next   repository.Store
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, next repository.Store, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, next: next, ttl: ttl}
}

func (c *LeaderboardCache) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	if err := c.next.SaveGame(ctx, rec); err != nil {
		return err
	}
	if err := c.client.Del(ctx, leaderboardKey).Err(); err != nil {
		log.Printf("[REDIS] Warning: failed to invalidate leaderboard cache: %v", err)
	}
	return nil
}

func (c *LeaderboardCache) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	data, err := c.client.Get(ctx, leaderboardKey).Result()
	if err == nil {
		var entries []domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(data), &entries); err == nil {
			return entries, nil
		}
		log.Printf("[REDIS] Warning: corrupt leaderboard cache entry, refreshing")
	} else if err != redis.Nil {
		log.Printf("[REDIS] Warning: leaderboard cache lookup failed: %v", err)
	}

	entries, err := c.next.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if err := c.client.Set(ctx, leaderboardKey, data, c.ttl).Err(); err != nil {
			log.Printf("[REDIS] Warning: failed to cache leaderboard: %v", err)
		}
	}
	return entries, nil
}

package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"flare_server/models"

	"github.com/redis/go-redis/v9"
)

// Cache TTL and key prefix for profile summaries. Summaries change rarely
// and staleness only affects list rendering, so a short TTL is enough.
const (
	profileTTL    = 5 * time.Minute
	profilePrefix = "profile:"
)

// ProfileCache is a read-through cache for profile summaries used when
// enriching match lists and candidate feeds.
type ProfileCache interface {
	GetSummary(ctx context.Context, userID string) (*models.ProfileSummary, bool)
	SetSummary(ctx context.Context, summary models.ProfileSummary)
	Invalidate(ctx context.Context, userID string)
}

// RedisProfileCache implements ProfileCache on redis.
type RedisProfileCache struct {
	Client *redis.Client
}

// NewRedisClient connects to redis, or returns nil when no address is
// configured so the service runs uncached.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
		return nil
	}
	return client
}

func (c *RedisProfileCache) GetSummary(ctx context.Context, userID string) (*models.ProfileSummary, bool) {
	data, err := c.Client.Get(ctx, profilePrefix+userID).Bytes()
	if err != nil {
		return nil, false
	}
	var summary models.ProfileSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (c *RedisProfileCache) SetSummary(ctx context.Context, summary models.ProfileSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, profilePrefix+summary.UserID, data, profileTTL).Err(); err != nil {
		log.Printf("Failed to cache profile %s: %v", summary.UserID, err)
	}
}

func (c *RedisProfileCache) Invalidate(ctx context.Context, userID string) {
	if err := c.Client.Del(ctx, profilePrefix+userID).Err(); err != nil {
		log.Printf("Failed to invalidate profile %s: %v", userID, err)
	}
}

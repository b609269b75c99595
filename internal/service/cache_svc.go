package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key TTLs. History entries are invalidated on every rating change,
// so these only bound staleness from out-of-band writes.
const (
	ProfileCacheTTL = 5 * time.Minute
	HistoryCacheTTL = 5 * time.Minute
)

// CacheService provides a Redis cache-aside layer for user profile and
// rating-history lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or connection
// fails, it returns a CacheService with a nil client (cache operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetProfile retrieves a cached profile response. Returns nil if not cached
// or cache is disabled.
func (c *CacheService) GetProfile(ctx context.Context, userID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, profileKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetProfile stores a profile response in cache.
func (c *CacheService) SetProfile(ctx context.Context, userID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, profileKey(userID), b, ProfileCacheTTL).Err()
}

// GetHistory retrieves a cached rating-history response. Returns nil if not cached.
func (c *CacheService) GetHistory(ctx context.Context, userID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, historyKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetHistory stores a rating-history response in cache.
func (c *CacheService) SetHistory(ctx context.Context, userID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, historyKey(userID), b, HistoryCacheTTL).Err()
}

// InvalidateUser removes a user's cached profile and history (called after
// any rating change).
func (c *CacheService) InvalidateUser(ctx context.Context, userID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, profileKey(userID), historyKey(userID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func profileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func historyKey(userID string) string {
	return fmt.Sprintf("history:%s", userID)
}

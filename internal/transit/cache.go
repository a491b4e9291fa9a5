// README: Read-through Redis cache in front of a LocationSearcher.
package transit

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const locationKeyPrefix = "mvgbot:location:"

// CachedSearcher caches location-search results in Redis. Station names are
// static reference data, so positive and empty results are both cached.
// Redis failures degrade to a direct provider call.
type CachedSearcher struct {
	next  LocationSearcher
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedSearcher(next LocationSearcher, client *redis.Client, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{next: next, redis: client, ttl: ttl}
}

func (c *CachedSearcher) SearchLocations(ctx context.Context, query string) ([]Location, error) {
	key := locationKeyPrefix + strings.ToLower(strings.TrimSpace(query))

	val, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var cached []Location
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
		// Unreadable entry: drop it and fall through to the provider.
		_ = c.redis.Del(ctx, key).Err()
	} else if err != redis.Nil {
		log.Printf("location cache read failed: %v", err)
	}

	locations, err := c.next.SearchLocations(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(locations); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("location cache write failed: %v", err)
		}
	}
	return locations, nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
	"time"
)

// Aside implements the cache-aside pattern: it tries to unmarshal the cached
// value at key into dest; on a miss it calls load (which must populate dest)
// and stores the result with the given TTL. Cache failures degrade to the
// loader, never to the caller.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client != nil {
		data, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if unmarshalErr := json.Unmarshal(data, dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry: drop it and fall through to the loader.
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("cache read failed for %s: %v", key, err)
		}
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		if data, err := json.Marshal(dest); err == nil {
			if setErr := client.Set(ctx, key, data, ttl).Err(); setErr != nil {
				log.Printf("cache write failed for %s: %v", key, setErr)
			}
		}
	}

	return nil
}

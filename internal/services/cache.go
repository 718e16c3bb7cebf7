package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps JSON-encoded list responses in Redis. A nil *Cache is a disabled
// cache: lookups miss and writes are dropped.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to Redis at addr. An empty addr disables caching.
func NewCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// NewCacheWithClient wraps an existing client.
func NewCacheWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get decodes the value at key into dest and reports whether it was found.
// Redis failures are logged and treated as a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.Printf("cache get %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("cache entry %s is corrupt: %v", key, err)
		return false
	}
	return true
}

// Set stores value at key for the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache set %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
}

// Invalidate removes every key under prefix.
func (c *Cache) Invalidate(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache scan %s failed: %v", prefix, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidate %s failed: %v", prefix, err)
	}
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// QueryCacheKey builds a stable key from prefix and the query parameters.
func QueryCacheKey(prefix string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(":")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(params[k])
	}

	sum := md5.Sum([]byte(b.String()))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

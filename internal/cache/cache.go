// Package cache provides an optional process-wide response cache. By default
// caching is disabled; UseRedisCache switches it to a Redis backend.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 2 * time.Second

type backend interface {
	get(key string) ([]byte, bool, error)
	set(key string, value []byte, ttl time.Duration) error
	delete(key string) error
}

var store backend = noneCache{}

// Key builds a cache key from the passed parts.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Get looks up a key. The bool return indicates whether the key was set.
func Get(key string, target *[]byte) (bool, error) {
	value, set, err := store.get(key)
	if err != nil || !set {
		return false, err
	}
	*target = value
	return true, nil
}

// Set stores a value under a key for the passed lifetime.
func Set(key string, value []byte, ttl time.Duration) error {
	return store.set(key, value, ttl)
}

// Delete removes a key. Deleting a missing key is not an error.
func Delete(key string) error {
	return store.delete(key)
}

// UseRedisCache enables caching backed by the passed Redis instance.
func UseRedisCache(opts *redis.Options) error {
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}
	store = redisCache{client: client}
	return nil
}

// noneCache is the disabled default: every lookup misses, every write is
// dropped.
type noneCache struct{}

func (noneCache) get(string) ([]byte, bool, error)        { return nil, false, nil }
func (noneCache) set(string, []byte, time.Duration) error { return nil }
func (noneCache) delete(string) error                     { return nil }

type redisCache struct {
	client *redis.Client
}

func (c redisCache) get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	value, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c redisCache) set(key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c redisCache) delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return c.client.Del(ctx, key).Err()
}

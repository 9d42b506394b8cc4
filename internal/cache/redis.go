package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/simplyfly/config"
	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes a hold only while it still belongs to the caller, so
// an expired hold re-acquired by another request is left alone.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// windowScript counts a hit in the current fixed window and reports the
// count together with the milliseconds left in the window.
var windowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return { count, ttl }
`)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns nil without error on a cache miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decodeFlights(data)
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

// AcquireSeatLock marks seat as held by owner for ttl. It reports false when
// another request already holds it.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightID int64, seat, owner string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flightID, seat), owner, ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightID int64, seat, owner string) error {
	return releaseScript.Run(ctx, c.client, []string{seatLockKey(flightID, seat)}, owner).Err()
}

// Allow registers one hit for key and reports whether it fits into limit hits
// per window. When it does not, the returned duration is the time until the
// window resets.
func (c *RedisCache) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	vals, err := windowScript.Run(ctx, c.client, []string{rateLimitKey(key)}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(vals) != 2 {
		return false, 0, fmt.Errorf("unexpected rate limit reply: %v", vals)
	}
	if vals[0] > int64(limit) {
		return false, time.Duration(vals[1]) * time.Millisecond, nil
	}
	return true, 0, nil
}

func decodeFlights(data []byte) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, fmt.Errorf("decode cached flights: %w", err)
	}
	return flights, nil
}

func flightsKey() string {
	return "cache:flights"
}

func seatLockKey(flightID int64, seat string) string {
	return fmt.Sprintf("lock:flight:%d:seat:%s", flightID, seat)
}

func rateLimitKey(key string) string {
	return "ratelimit:" + key
}

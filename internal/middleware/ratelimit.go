package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hilgaap/inventori-api/internal/config"
)

// Limiter decides whether one more request is allowed for a given
// (label, clientKey) pair. Implementations are injected into the
// RateLimit middleware so the backing store can be swapped without
// touching handlers.
type Limiter interface {
	Allow(ctx context.Context, label, clientKey string) (bool, error)
}

// windowEntry tracks one fixed window for a single (label, client) pair.
type windowEntry struct {
	count int
	start time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. All state lives
// in one mutex-guarded map, so it is safe under concurrent requests but
// does not coordinate across processes.
type MemoryLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*windowEntry
}

func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		max:     cfg.Max,
		window:  cfg.Window,
		entries: make(map[string]*windowEntry),
	}
}

// Allow implements the fixed window: the first request in a window (or
// any request after the window elapsed, regardless of prior count)
// starts a fresh entry with count=1; requests within the window increment
// the count and are denied once it exceeds the maximum.
func (l *MemoryLimiter) Allow(_ context.Context, label, clientKey string) (bool, error) {
	key := label + ":" + clientKey
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.Sub(e.start) > l.window {
		l.entries[key] = &windowEntry{count: 1, start: now}
		return true, nil
	}
	e.count++
	return e.count <= l.max, nil
}

// redisWindowScript increments the window counter and arms its expiry on
// first use, so a key disappears one window after its first request.
var redisWindowScript = redis.NewScript(`
	local n = redis.call('INCR', KEYS[1])
	if n == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return n
`)

// RedisLimiter is a fixed-window limiter backed by Redis, for deployments
// running more than one process behind the same quota.
type RedisLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: cfg.Max, window: cfg.Window, prefix: "rl"}
}

func (l *RedisLimiter) Allow(ctx context.Context, label, clientKey string) (bool, error) {
	key := l.prefix + ":" + label + ":" + clientKey
	n, err := redisWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return true, err
	}
	return n <= int64(l.max), nil
}

// ClientKey derives the rate-limit bucket for a request: the first
// X-Forwarded-For value, else the connection's remote host, else a shared
// "unknown" bucket for clients with no usable address.
func ClientKey(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	remote := c.Request().RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
		return host
	}
	if remote != "" {
		return remote
	}
	return "unknown"
}

// RateLimit returns a middleware enforcing the limiter for one endpoint
// label. Limiter errors (an unreachable Redis, typically) are logged and
// the request is let through rather than rejected.
func RateLimit(l Limiter, label string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := l.Allow(c.Request().Context(), label, ClientKey(c))
			if err != nil {
				log.Printf("[ratelimit] %s: %v", label, err)
				return next(c)
			}
			if !allowed {
				return errJSON(c, http.StatusTooManyRequests, "Too many requests, try again later")
			}
			return next(c)
		}
	}
}

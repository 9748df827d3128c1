package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/tripboard/internal/logging"
)

// ScriptRunner is the slice of the Redis client the limiter needs.
type ScriptRunner interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// countHit increments the window counter, starts the window on the first hit
// and returns the count with the seconds left in the window.
const countHit = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`

// RateLimitConfig describes one fixed-window limit.
type RateLimitConfig struct {
	Limit  int64
	Window time.Duration
	Prefix string
	// Key picks the bucket; the client IP when nil or empty.
	Key func(r *http.Request) string
	// FailOpen lets requests through when Redis errors.
	FailOpen bool
	// Message is returned with 429.
	Message string
}

type RateLimiter struct {
	redis ScriptRunner
	cfg   RateLimitConfig
}

// NewRateLimiter returns a limiter that is a no-op when redis is nil or the
// limit is not positive.
func NewRateLimiter(redis ScriptRunner, cfg RateLimitConfig) *RateLimiter {
	if cfg.Key == nil {
		cfg.Key = GetClientIP
	}
	if cfg.Message == "" {
		cfg.Message = "Rate limit exceeded"
	}
	return &RateLimiter{redis: redis, cfg: cfg}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.redis == nil || rl.cfg.Limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		bucket := rl.cfg.Key(r)
		if bucket == "" {
			bucket = GetClientIP(r)
		}

		count, retryAfter, err := rl.hit(r.Context(), rl.cfg.Prefix+bucket)
		if err != nil {
			logging.Error("Rate limit Redis error", map[string]interface{}{"error": err.Error(), "prefix": rl.cfg.Prefix})
			if rl.cfg.FailOpen {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, http.StatusServiceUnavailable, "Rate limiting temporarily unavailable")
			return
		}

		if count > rl.cfg.Limit {
			w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			writeError(w, http.StatusTooManyRequests, rl.cfg.Message)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) hit(ctx context.Context, key string) (count, retryAfter int64, err error) {
	window := int64(rl.cfg.Window / time.Second)
	if window < 1 {
		window = 1
	}
	reply, err := rl.redis.Eval(ctx, countHit, []string{key}, window).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(reply) != 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit reply %v", reply)
	}
	retryAfter = reply[1]
	if retryAfter < 0 {
		// Key without expiry; fall back to the full window.
		retryAfter = window
	}
	return reply[0], retryAfter, nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// GetClientIP extracts the client IP from the request, respecting X-Forwarded-For
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the original client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

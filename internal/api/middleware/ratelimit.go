package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"scamtrap/internal/infrastructure/cache"
	"scamtrap/pkg/logger"
)

// RateLimiter limits requests per client using a windowed counter in
// Redis. On Redis errors requests are allowed through rather than
// failing closed.
func RateLimiter(redis *cache.RedisCache, requestsPerMinute int, log *logger.Logger) func(http.Handler) http.Handler {
	log = log.WithComponent("ratelimit")
	limit := int64(requestsPerMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := getClientID(r)

			allowed, remaining, resetTime, err := redis.CheckRateLimit(r.Context(), clientID, limit, time.Minute)
			if err != nil {
				log.Warn().Err(err).Str("client", clientID).Msg("rate limit check failed, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientID extracts a client identifier, preferring the API key
// over the remote address
func getClientID(r *http.Request) string {
	if key := r.Header.Get("x-api-key"); key != "" {
		return "key:" + key
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

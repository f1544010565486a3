package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sethvargo/go-limiter/httplimit"
	"github.com/sethvargo/go-limiter/memorystore"
)

// RateLimiterConfig specifies the maximum request per interval, and interval length, allowed
// for a single client.
type RateLimiterConfig struct {
	MaxRPI   uint64
	Interval time.Duration
}

// RateLimitController creates a new middleware to rate limit requests. Every page view and API
// lookup costs two calls to the upstream RPC provider, so clients are limited by:
// 1. The first X-Forwarded-For IP included by a load-balancer in the infrastructure, if present.
// 2. The connection remote address otherwise.
func RateLimitController(cfg RateLimiterConfig) (mux.MiddlewareFunc, error) {
	store, err := memorystore.New(&memorystore.Config{
		Tokens:   cfg.MaxRPI,
		Interval: cfg.Interval,
	})
	if err != nil {
		return nil, fmt.Errorf("creating memory store: %s", err)
	}

	m, err := httplimit.NewMiddleware(store, extractClientIP)
	if err != nil {
		return nil, fmt.Errorf("creating httplimiter: %s", err)
	}

	return m.Handle, nil
}

func extractClientIP(r *http.Request) (string, error) {
	// i.g: https://cloud.google.com/load-balancing/docs/https#x-forwarded-for_header
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0]), nil
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", fmt.Errorf("getting ip from remote addr: %s", err)
	}
	return ip, nil
}

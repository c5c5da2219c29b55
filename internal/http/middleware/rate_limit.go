package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/rogerio-castellano/shop-inventory/internal/http/ban"
	"github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/shop-inventory/internal/http/rate_limiter"
)

// RateLimit rejects banned clients with 403 and clients over their token
// bucket with 429. Each 429 counts as a strike on the ban list. Either
// dependency may be nil, which disables that check. Ban list failures are
// logged and the request is let through.
func RateLimit(limiter *rl.Limiter, bans *ban.List, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if bans != nil {
				banned, ttl, err := bans.IsBanned(r.Context(), ip)
				if err != nil {
					logger.Warn("ban lookup failed", slog.String("ip", ip), slog.Any("error", err))
				} else if banned {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
					handlers.WriteError(w, http.StatusForbidden, "client temporarily banned")
					return
				}
			}

			if limiter != nil && !limiter.Allow(ip) {
				if bans != nil {
					if _, err := bans.Strike(r.Context(), ip, r.URL.Path); err != nil {
						logger.Warn("recording strike failed", slog.String("ip", ip), slog.Any("error", err))
					}
				}
				handlers.WriteError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package ban

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:ban:"
	// DailyBanLogKey collects one "time target route" line per ban issued.
	DailyBanLogKey = "ratelimit:banlog:daily"
)

// List tracks rate-limit strikes per client in Redis and bans a client once it
// collects enough strikes inside the ban window.
type List struct {
	rdb      *redis.Client
	strikes  int
	duration time.Duration
	logger   *slog.Logger
}

func NewList(rdb *redis.Client, strikes int, duration time.Duration, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.Default()
	}
	return &List{
		rdb:      rdb,
		strikes:  strikes,
		duration: duration,
		logger:   logger,
	}
}

// IsBanned reports whether target is currently banned and for how long.
func (l *List) IsBanned(ctx context.Context, target string) (bool, time.Duration, error) {
	ttl, err := l.rdb.TTL(ctx, banKeyPrefix+target).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ban: ttl %s: %w", target, err)
	}
	// go-redis reports a missing key as a negative duration.
	if ttl <= 0 {
		return false, 0, nil
	}
	return true, ttl, nil
}

// Strike records one rate-limit violation and returns true when it triggered a ban.
func (l *List) Strike(ctx context.Context, target, route string) (bool, error) {
	key := strikeKeyPrefix + target

	strikes, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("ban: strike %s: %w", target, err)
	}
	// The first strike opens the window the remaining strikes must land in.
	if strikes == 1 {
		if err := l.rdb.Expire(ctx, key, l.duration).Err(); err != nil {
			return false, fmt.Errorf("ban: expire %s: %w", target, err)
		}
	}
	if strikes < int64(l.strikes) {
		return false, nil
	}

	pipe := l.rdb.TxPipeline()
	pipe.Set(ctx, banKeyPrefix+target, strikes, l.duration)
	pipe.Del(ctx, key)
	pipe.RPush(ctx, DailyBanLogKey, fmt.Sprintf("%s %s %s", time.Now().UTC().Format(time.RFC3339), target, route))
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ban: ban %s: %w", target, err)
	}

	l.logger.Warn("⛔ client banned",
		slog.String("target", target),
		slog.String("route", route),
		slog.Int64("strikes", strikes),
		slog.Duration("duration", l.duration),
	)
	return true, nil
}

package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window in which attempts are counted
	BlockDuration time.Duration
}

// LoginTracker counts failed logins per username in Redis and blocks the
// username once MaxAttempts is reached. Without Redis it never blocks.
type LoginTracker struct {
	config LoginTrackerConfig
	client func() *goredis.Client
	logger *Logger
}

func NewLoginTracker(config LoginTrackerConfig, client func() *goredis.Client, logger *Logger) *LoginTracker {
	return &LoginTracker{config: config, client: client, logger: logger}
}

const (
	failLoginPrefix    = "fail:login:user:"
	blockedLoginPrefix = "blocked:login:user:"
)

// INCR with TTL set on first increment
// KEYS[1] = counter key, ARGV[1] = TTL in seconds
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func key(prefix, username string) string {
	return prefix + strings.ToLower(username)
}

// IsBlocked reports whether username is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, username string) (bool, error) {
	client := lt.client()
	if client == nil {
		return false, nil
	}

	exists, err := client.Exists(ctx, key(blockedLoginPrefix, username)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check login block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailedAttempt counts a failure and blocks the username when the
// limit is reached. It returns whether a block is now in place.
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, username, ip string) (bool, error) {
	client := lt.client()
	if client == nil {
		return false, nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())
	result, err := client.Eval(ctx, incrWithTTLScript, []string{key(failLoginPrefix, username)}, ttlSeconds).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment login counter: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return false, errors.New("unexpected result type from Lua script")
	}

	if int(count) < lt.config.MaxAttempts {
		return false, nil
	}

	if err := client.Set(ctx, key(blockedLoginPrefix, username), "1", lt.config.BlockDuration).Err(); err != nil {
		return false, fmt.Errorf("failed to set login block: %w", err)
	}
	lt.logger.LogBlockCreated(ctx, username, ip, int(lt.config.BlockDuration.Minutes()))
	return true, nil
}

// ClearAttempts resets the counter after a successful login.
func (lt *LoginTracker) ClearAttempts(ctx context.Context, username string) {
	client := lt.client()
	if client == nil {
		return
	}
	if err := client.Del(ctx, key(failLoginPrefix, username)).Err(); err != nil && lt.logger != nil {
		lt.logger.zapLogger.Warn("failed to clear login attempts", zap.Error(err))
	}
}

package security

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewLogger(zap.New(core), "opportunityhub", "test")

	meta := RequestMeta{IP: "10.0.0.1", UserAgent: "curl", RequestID: "req-1"}
	sl.LogLoginFailed(context.Background(), "Wanjiku", meta, "invalid_credentials")
	sl.LogAccountEvent(context.Background(), EventLoginSuccess, 7, meta)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "login_failed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, HashValue("wanjiku"), ctx["subject_value"])
	assert.Equal(t, "req-1", ctx["request_id"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "7", entries[1].ContextMap()["subject_value"])
}

func TestLoggerPersists(t *testing.T) {
	sl := NewLogger(zap.NewNop(), "opportunityhub", "test")

	got := make(chan SecurityEvent, 1)
	sl.SetPersistFunc(func(ctx context.Context, e SecurityEvent) error {
		got <- e
		return nil
	})

	sl.LogRateLimitTriggered(context.Background(), RequestMeta{IP: "1.2.3.4"}, "/v1/auth/login")

	select {
	case e := <-got:
		assert.Equal(t, EventRateLimitTriggered, e.Event)
		assert.Equal(t, "opportunityhub", e.Service)
		assert.Equal(t, "warn", e.Level)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not persisted")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var sl *Logger
	assert.NotPanics(t, func() {
		sl.Log(context.Background(), SecurityEvent{Event: EventLoginFailed})
	})
}

func TestLoginTrackerWithoutRedis(t *testing.T) {
	lt := NewLoginTracker(LoginTrackerConfig{MaxAttempts: 1, AttemptWindow: time.Minute, BlockDuration: time.Minute},
		func() *goredis.Client { return nil }, NewLogger(zap.NewNop(), "s", "test"))

	blocked, err := lt.IsBlocked(context.Background(), "someone")
	assert.NoError(t, err)
	assert.False(t, blocked)

	nowBlocked, err := lt.RecordFailedAttempt(context.Background(), "someone", "1.1.1.1")
	assert.NoError(t, err)
	assert.False(t, nowBlocked)

	assert.NotPanics(t, func() { lt.ClearAttempts(context.Background(), "someone") })
}

func TestMasking(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("@x"))
	assert.Len(t, HashValue("x"), 16)
	assert.Equal(t, HashValue("ABC"), HashValue("abc"))
}

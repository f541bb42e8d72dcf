package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"opportunityhub-backend/pkg/safego"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventAccountRegistered  EventType = "account_registered"
	EventPasswordChanged    EventType = "password_changed"
	EventTokenRevoked       EventType = "token_revoked"
	EventBlockCreated       EventType = "block_created"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "username", "ip", "account_id"
	SubjectValue string                 `json:"subject_value,omitempty"` // masked or hashed
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// RequestMeta identifies the HTTP request an event came from.
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

// PersistFunc stores an event. It runs off the request path.
type PersistFunc func(ctx context.Context, event SecurityEvent) error

// Logger writes security events to zap and optionally to a store.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persist     PersistFunc
}

// NewLogger wraps base with security event helpers.
func NewLogger(base *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{
		zapLogger:   base.Named("security"),
		serviceName: serviceName,
		environment: environment,
	}
}

// SetPersistFunc enables persistence of every event.
func (sl *Logger) SetPersistFunc(f PersistFunc) {
	sl.persist = f
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventLoginSuccess, EventAccountRegistered, EventPasswordChanged, EventTokenRevoked:
		return zapcore.InfoLevel
	case EventLoginBlocked, EventBlockCreated, EventUnauthorizedAccess:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Log logs a security event
func (sl *Logger) Log(ctx context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment

	level := levelFor(event.Event)
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)

	if sl.persist != nil {
		persist := sl.persist
		safego.Go("persist security event", func() {
			pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := persist(pctx, event); err != nil {
				sl.zapLogger.Error("Failed to persist security event", zap.Error(err))
			}
		})
	}
}

func (sl *Logger) LogLoginFailed(ctx context.Context, username string, meta RequestMeta, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "username",
		SubjectValue: HashValue(username),
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
		Details:      map[string]interface{}{"reason": reason},
	})
}

func (sl *Logger) LogLoginBlocked(ctx context.Context, username string, meta RequestMeta) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  "username",
		SubjectValue: HashValue(username),
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
		Details:      map[string]interface{}{"reason": "too_many_failed_attempts"},
	})
}

// LogAccountEvent records an event about a known account.
func (sl *Logger) LogAccountEvent(ctx context.Context, event EventType, accountID int64, meta RequestMeta) {
	sl.Log(ctx, SecurityEvent{
		Event:        event,
		SubjectType:  "account_id",
		SubjectValue: formatID(accountID),
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
	})
}

func (sl *Logger) LogRateLimitTriggered(ctx context.Context, meta RequestMeta, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: meta.IP,
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

func (sl *Logger) LogBlockCreated(ctx context.Context, username, ip string, durationMinutes int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  "username",
		SubjectValue: HashValue(username),
		IP:           ip,
		Details:      map[string]interface{}{"duration_minutes": durationMinutes},
	})
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// HashValue returns a short SHA-256 prefix so subjects can be correlated without PII.
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(value)))
	return hex.EncodeToString(hash[:8])
}

func formatID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

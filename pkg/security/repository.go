package security

import (
	"context"
	"encoding/json"
	"fmt"

	"opportunityhub-backend/pkg/database"
)

// EventRepository persists security events to the security_events table.
type EventRepository struct {
	db database.DBTX
}

func NewEventRepository(db database.DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// PersistEvent inserts a security event into the database
func (r *EventRepository) PersistEvent(ctx context.Context, event SecurityEvent) error {
	query := `
		INSERT INTO security_events (
			event_type, service, environment, level,
			subject_type, subject_value, ip_address, user_agent,
			request_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var details []byte
	if len(event.Details) > 0 {
		details, _ = json.Marshal(event.Details)
	}

	// INET rejects empty strings
	var ip interface{}
	if event.IP != "" {
		ip = event.IP
	}

	_, err := r.db.Exec(ctx, query,
		string(event.Event),
		event.Service,
		event.Environment,
		event.Level,
		event.SubjectType,
		event.SubjectValue,
		ip,
		event.UserAgent,
		event.RequestID,
		details,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist security event: %w", err)
	}
	return nil
}

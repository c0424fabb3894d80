package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountEventLog is one recorded account lifecycle event. The event worker
// writes a row per consumed event so downstream audits can replay account
// history without touching the live users table.
type AccountEventLog struct {
	ID        uuid.UUID
	EventID   string
	RequestID string
	EventType string
	UserID    uuid.UUID
	Email     string
	Provider  string

	// OccurredAt is when the publishing side emitted the event.
	OccurredAt time.Time
	// RecordedAt is when the worker persisted it.
	RecordedAt time.Time
}

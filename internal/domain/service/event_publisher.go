package service

import (
	"context"
	"time"
)

// AccountEventType labels an account lifecycle transition.
type AccountEventType string

const (
	// AccountEventRegistered fires on password signup.
	AccountEventRegistered AccountEventType = "account.registered"
	// AccountEventSocialLinked fires when a social login creates or relinks an account.
	AccountEventSocialLinked AccountEventType = "account.social_linked"
	// AccountEventDeleted fires when the account row is destroyed.
	AccountEventDeleted AccountEventType = "account.deleted"
)

// AccountEvent describes an account lifecycle transition for downstream consumers.
type AccountEvent struct {
	EventID    string           `json:"event_id"`
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       AccountEventType `json:"type"`
	UserID     string           `json:"user_id"`
	Email      string           `json:"email"`
	Provider   string           `json:"provider,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account lifecycle event for async processing
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

package repository

import (
	"context"
	"errors"

	"speakit/internal/domain/entity"
)

// ErrEventAlreadyRecorded is returned when an event with the same event ID has
// already been persisted. Consumers treat it as a successful no-op so that
// at-least-once delivery never produces duplicate rows.
var ErrEventAlreadyRecorded = errors.New("event already recorded")

// AccountEventLogRepository persists consumed account lifecycle events.
type AccountEventLogRepository interface {
	// Record inserts one event row. Returns ErrEventAlreadyRecorded when the
	// event ID has been seen before.
	Record(ctx context.Context, eventLog *entity.AccountEventLog) error
}

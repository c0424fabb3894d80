package postgres

import (
	"context"

	"speakit/internal/domain/entity"
	domainerrors "speakit/internal/domain/errors"
	"speakit/internal/domain/repository"
	"speakit/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// accountEventLogRepository implements repository.AccountEventLogRepository using GORM.
type accountEventLogRepository struct {
	db *gorm.DB
}

// NewAccountEventLogRepository is the constructor for accountEventLogRepository.
func NewAccountEventLogRepository(db *gorm.DB) repository.AccountEventLogRepository {
	return &accountEventLogRepository{db: db}
}

// Record inserts one consumed event. A unique violation on event_id maps to
// ErrEventAlreadyRecorded so callers can ack redelivered messages.
func (repo *accountEventLogRepository) Record(ctx context.Context, eventLog *entity.AccountEventLog) error {
	logM := fromEventLogDomain(eventLog)

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEventAlreadyRecorded
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record account event")
	}

	eventLog.ID = logM.ID
	eventLog.RecordedAt = logM.RecordedAt

	return nil
}

// fromEventLogDomain converts a domain AccountEventLog to its GORM model.
func fromEventLogDomain(data *entity.AccountEventLog) *model.AccountEventLogModel {
	if data == nil {
		return nil
	}

	return &model.AccountEventLogModel{
		ID:         data.ID,
		EventID:    data.EventID,
		RequestID:  data.RequestID,
		EventType:  data.EventType,
		UserID:     data.UserID,
		Email:      data.Email,
		Provider:   data.Provider,
		OccurredAt: data.OccurredAt,
	}
}

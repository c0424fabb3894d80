package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "speakit/internal/delivery/context"
	"speakit/internal/domain/entity"
	"speakit/internal/domain/service"

	"github.com/google/uuid"
)

// publishAccountEvent emits an account lifecycle event. Publishing is
// best-effort: a broker failure must never fail the originating use case,
// so errors are only logged.
func publishAccountEvent(
	ctx context.Context,
	publisher service.EventPublisher,
	logger *slog.Logger,
	eventType service.AccountEventType,
	user *entity.User,
) {
	if publisher == nil || user == nil {
		return
	}

	event := &service.AccountEvent{
		EventID:    uuid.New().String(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		UserID:     user.ID.String(),
		Email:      user.Email,
		Provider:   user.Provider.String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishAccountEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish account event",
			slog.String("event_type", string(eventType)),
			slog.String("user_id", event.UserID),
			slog.Any("error", err),
		)
	}
}

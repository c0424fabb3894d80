package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountEventLogModel mirrors the 'account_event_logs' table. The unique
// event_id column is what makes consumption idempotent.
type AccountEventLogModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	EventID   string    `gorm:"type:varchar(64);unique;not null"`
	RequestID string    `gorm:"type:varchar(64)"`
	EventType string    `gorm:"type:varchar(50);not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Provider  string    `gorm:"type:varchar(20)"`

	OccurredAt time.Time `gorm:"not null"`
	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (AccountEventLogModel) TableName() string {
	return "account_event_logs"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PaymentLog is the append-only audit row written for every webhook event,
// success or failure. The unique stripe event id doubles as the replay
// guard: an insert that hits the conflict means the event was seen before.
type PaymentLog struct {
	PaymentLogID uuid.UUID `gorm:"column:payment_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_log_id"`

	PaymentLogEventType     string `gorm:"column:payment_log_event_type;type:varchar(60);not null" json:"payment_log_event_type"`
	PaymentLogStripeEventID string `gorm:"column:payment_log_stripe_event_id;type:varchar(120);not null;uniqueIndex" json:"payment_log_stripe_event_id"`

	PaymentLogPayload datatypes.JSON `gorm:"column:payment_log_payload;type:jsonb" json:"payment_log_payload"`

	PaymentLogErrorMessage *string `gorm:"column:payment_log_error_message;type:text" json:"payment_log_error_message,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PaymentLog) TableName() string { return "payment_logs" }

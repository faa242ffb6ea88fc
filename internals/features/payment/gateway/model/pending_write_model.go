package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PendingWrite is the durable continuation recorded before a redirect-based
// confirmation (3-D Secure) navigates the browser away. The return leg, or
// the webhook if the client never comes back, resumes the write. Keyed by
// the payment intent id so both paths converge on one record.
type PendingWrite struct {
	PendingWriteID uuid.UUID `gorm:"column:pending_write_id;type:uuid;default:gen_random_uuid();primaryKey" json:"pending_write_id"`

	PendingWriteUserID uuid.UUID `gorm:"column:pending_write_user_id;type:uuid;not null;index" json:"pending_write_user_id"`

	// One of the three known service-request tables
	PendingWriteTable   string         `gorm:"column:pending_write_table;type:varchar(40);not null" json:"pending_write_table"`
	PendingWritePayload datatypes.JSON `gorm:"column:pending_write_payload;type:jsonb;not null" json:"pending_write_payload"`

	PendingWritePaymentIntentID string `gorm:"column:pending_write_payment_intent_id;type:varchar(120);not null;uniqueIndex" json:"pending_write_payment_intent_id"`

	PendingWriteExpiresAt  time.Time  `gorm:"column:pending_write_expires_at;not null" json:"pending_write_expires_at"`
	PendingWriteConsumedAt *time.Time `gorm:"column:pending_write_consumed_at" json:"pending_write_consumed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PendingWrite) TableName() string { return "payment_pending_writes" }

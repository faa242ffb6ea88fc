package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	BusinessSupportOrderPaid   = "paid"
	BusinessSupportOrderActive = "active"
)

// BusinessSupportOrder mirrors a completed Stripe Checkout session for the
// business-support flow (monthly subscriptions and one-off pledges go
// through Checkout rather than a bare payment intent).
type BusinessSupportOrder struct {
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;default:gen_random_uuid();primaryKey" json:"order_id"`

	OrderUserID *uuid.UUID `gorm:"column:order_user_id;type:uuid;index" json:"order_user_id,omitempty"`

	OrderSessionID string `gorm:"column:order_session_id;type:varchar(140);not null;uniqueIndex" json:"order_session_id"`

	OrderAmountPence int64  `gorm:"column:order_amount_pence;not null" json:"order_amount_pence"`
	OrderFrequency   string `gorm:"column:order_frequency;type:varchar(20);not null" json:"order_frequency"`
	OrderStatus      string `gorm:"column:order_status;type:varchar(20);default:'paid'" json:"order_status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BusinessSupportOrder) TableName() string { return "business_support_orders" }

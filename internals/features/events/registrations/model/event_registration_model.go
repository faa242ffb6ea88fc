package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
)

const (
	RegistrationPaymentPending = "pending"
	RegistrationPaymentPaid    = "paid"
	RegistrationPaymentFailed  = "failed"
)

// Ticket prices in pence per ticket type.
var TicketPricesPence = map[string]int64{
	"adult":  1500,
	"child":  750,
	"family": 3500,
}

type EventRegistration struct {
	RegistrationID uuid.UUID `gorm:"column:registration_id;type:uuid;default:gen_random_uuid();primaryKey" json:"registration_id"`

	RegistrationUserID  uuid.UUID `gorm:"column:registration_user_id;type:uuid;not null;index" json:"registration_user_id"`
	RegistrationEventID uuid.UUID `gorm:"column:registration_event_id;type:uuid;not null;index" json:"registration_event_id"`

	// Ticket counts keyed by ticket type, e.g. {"adult": 2, "child": 1}
	RegistrationTickets datatypes.JSONMap `gorm:"column:registration_tickets;type:jsonb" json:"registration_tickets"`

	RegistrationAmountPence   int64  `gorm:"column:registration_amount_pence;not null" json:"registration_amount_pence"`
	RegistrationPaymentStatus string `gorm:"column:registration_payment_status;type:varchar(20);default:'pending'" json:"registration_payment_status"`
	RegistrationStatus        string `gorm:"column:registration_status;type:varchar(20);default:'pending'" json:"registration_status"`

	RegistrationBookingReference string `gorm:"column:registration_booking_reference;type:varchar(20);not null;uniqueIndex" json:"registration_booking_reference"`

	RegistrationPaymentIntentID *string `gorm:"column:registration_payment_intent_id;type:varchar(120);uniqueIndex" json:"registration_payment_intent_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (EventRegistration) TableName() string { return "event_registrations" }

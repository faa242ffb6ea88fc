package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"jaaliya_backend/internals/constants"
)

/* ===================== Kind ===================== */

// ServiceRequestKind tags which of the three parallel request tables a row
// belongs to. The tables share one shape; only the kind payload differs.
type ServiceRequestKind string

const (
	KindTranslation ServiceRequestKind = "translation"
	KindLegalOther  ServiceRequestKind = "legal_other"
	KindWakala      ServiceRequestKind = "wakala"
)

func (k ServiceRequestKind) TableName() string {
	switch k {
	case KindTranslation:
		return constants.TableTranslationRequests
	case KindLegalOther:
		return constants.TableOtherLegalRequests
	case KindWakala:
		return constants.TableWakalaApplications
	default:
		return ""
	}
}

func (k ServiceRequestKind) Valid() bool { return k.TableName() != "" }

// KindFromTable maps a client-supplied table name back to a kind.
// Unknown tables are rejected before any SQL is built from the name.
func KindFromTable(table string) (ServiceRequestKind, bool) {
	switch table {
	case constants.TableTranslationRequests:
		return KindTranslation, true
	case constants.TableOtherLegalRequests:
		return KindLegalOther, true
	case constants.TableWakalaApplications:
		return KindWakala, true
	default:
		return "", false
	}
}

func AllKinds() []ServiceRequestKind {
	return []ServiceRequestKind{KindTranslation, KindLegalOther, KindWakala}
}

/* ===================== Constants ===================== */

const (
	RequestStatusPending   = "pending"
	RequestStatusSubmitted = "submitted"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

const (
	RequestPaymentPending = "pending"
	RequestPaymentPaid    = "paid"
	RequestPaymentFailed  = "failed"
)

/* ===================== Model ===================== */

// ServiceRequest is the shared row shape of translation_requests,
// other_legal_requests and wakala_applications. Always use it through
// db.Table(kind.TableName()).
type ServiceRequest struct {
	RequestID uuid.UUID `gorm:"column:request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"request_id"`

	RequestUserID *uuid.UUID `gorm:"column:request_user_id;type:uuid;index" json:"request_user_id,omitempty"`

	RequestName  string  `gorm:"column:request_name;type:varchar(120);not null" json:"request_name"`
	RequestEmail string  `gorm:"column:request_email;type:varchar(120);not null" json:"request_email"`
	RequestPhone *string `gorm:"column:request_phone;type:varchar(30)" json:"request_phone,omitempty"`

	// Kind-specific fields (document language pair, wakala subject, ...)
	RequestDetails datatypes.JSON `gorm:"column:request_details;type:jsonb" json:"request_details,omitempty"`

	RequestAmountPence   int64  `gorm:"column:request_amount_pence;not null" json:"request_amount_pence"`
	RequestPaymentStatus string `gorm:"column:request_payment_status;type:varchar(20);default:'pending'" json:"request_payment_status"`
	RequestStatus        string `gorm:"column:request_status;type:varchar(20);default:'pending'" json:"request_status"`

	RequestBookingReference string `gorm:"column:request_booking_reference;type:varchar(20);not null;uniqueIndex" json:"request_booking_reference"`

	// Stripe intent id; unique so replaying a confirmation or webhook can
	// never insert the same paid request twice.
	RequestPaymentIntentID *string `gorm:"column:request_payment_intent_id;type:varchar(120);uniqueIndex" json:"request_payment_intent_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

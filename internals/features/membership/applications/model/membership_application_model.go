package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusActive    = "active"
	ApplicationStatusRejected  = "rejected"
)

const (
	ApplicationPaymentPending = "pending"
	ApplicationPaymentPaid    = "paid"
	ApplicationPaymentFailed  = "failed"
)

const (
	MembershipTypeIndividual      = "individual"
	MembershipTypeFamily          = "family"
	MembershipTypeAssociate       = "associate"
	MembershipTypeBusinessSupport = "business_support"
)

const (
	PaymentFrequencyAnnual  = "annual"
	PaymentFrequencyMonthly = "monthly"
	PaymentFrequencyOneTime = "one_time"
)

// Annual membership fees in pence. Business support is priced by
// tier/pledge instead (see the applications service).
var MembershipFeesPence = map[string]int64{
	MembershipTypeIndividual: 2500, // £25
	MembershipTypeFamily:     4000, // £40
	MembershipTypeAssociate:  1500, // £15
}

/* ===================== Model ===================== */

type MembershipApplication struct {
	ApplicationID uuid.UUID `gorm:"column:application_id;type:uuid;default:gen_random_uuid();primaryKey" json:"application_id"`

	ApplicationUserID uuid.UUID `gorm:"column:application_user_id;type:uuid;not null;index" json:"application_user_id"`

	// Applicant identity (bilingual: full name is captured in both scripts)
	ApplicationFullName       string  `gorm:"column:application_full_name;type:varchar(120);not null" json:"application_full_name"`
	ApplicationFullNameArabic *string `gorm:"column:application_full_name_arabic;type:varchar(120)" json:"application_full_name_arabic,omitempty"`
	ApplicationEmail          string  `gorm:"column:application_email;type:varchar(120);not null" json:"application_email"`
	ApplicationPhone          *string `gorm:"column:application_phone;type:varchar(30)" json:"application_phone,omitempty"`

	ApplicationMembershipType string `gorm:"column:application_membership_type;type:varchar(30);not null" json:"application_membership_type"`

	ApplicationStatus        string `gorm:"column:application_status;type:varchar(20);default:'pending'" json:"application_status"`
	ApplicationPaymentStatus string `gorm:"column:application_payment_status;type:varchar(20);default:'pending'" json:"application_payment_status"`

	// One intent per application; also the idempotency key for payment writes
	ApplicationPaymentIntentID *string `gorm:"column:application_payment_intent_id;type:varchar(120);uniqueIndex" json:"application_payment_intent_id,omitempty"`

	// Business-support only
	ApplicationBusinessSupportTier *string `gorm:"column:application_business_support_tier;type:varchar(30)" json:"application_business_support_tier,omitempty"`
	ApplicationCustomAmountPence   *int64  `gorm:"column:application_custom_amount_pence" json:"application_custom_amount_pence,omitempty"`
	ApplicationPaymentFrequency    *string `gorm:"column:application_payment_frequency;type:varchar(20)" json:"application_payment_frequency,omitempty"`

	// True when this application renews an existing membership
	ApplicationIsRenewal bool `gorm:"column:application_is_renewal;default:false" json:"application_is_renewal"`

	ApplicationPaidAt *time.Time `gorm:"column:application_paid_at" json:"application_paid_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (MembershipApplication) TableName() string { return "membership_applications" }

// IsBusinessSupport reports whether this application carries a sponsorship pledge.
func (a *MembershipApplication) IsBusinessSupport() bool {
	return a.ApplicationMembershipType == MembershipTypeBusinessSupport
}

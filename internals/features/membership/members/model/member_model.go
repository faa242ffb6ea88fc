package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MemberStatusActive  = "active"
	MemberStatusExpired = "expired"
)

type Member struct {
	MemberID uuid.UUID `gorm:"column:member_id;type:uuid;default:gen_random_uuid();primaryKey" json:"member_id"`

	MemberUserID uuid.UUID `gorm:"column:member_user_id;type:uuid;not null;index" json:"member_user_id"`

	// The paid application this member was minted from. Unique so the
	// activation trigger can never mint twice for one application.
	MemberApplicationID uuid.UUID `gorm:"column:member_application_id;type:uuid;not null;uniqueIndex" json:"member_application_id"`

	MemberNumber string `gorm:"column:member_number;type:varchar(30);not null;uniqueIndex" json:"member_number"`

	MemberMembershipType string `gorm:"column:member_membership_type;type:varchar(30);not null" json:"member_membership_type"`
	MemberStatus         string `gorm:"column:member_status;type:varchar(20);default:'active'" json:"member_status"`

	MemberStartDate  time.Time `gorm:"column:member_start_date;type:date;not null" json:"member_start_date"`
	MemberExpiryDate time.Time `gorm:"column:member_expiry_date;type:date;not null" json:"member_expiry_date"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Member) TableName() string { return "members" }

// IsCurrentlyActive is the eligibility check used by pricing: status must be
// active and the expiry date must not have passed.
func (m *Member) IsCurrentlyActive(now time.Time) bool {
	return m.MemberStatus == MemberStatusActive && !now.After(m.MemberExpiryDate.AddDate(0, 0, 1))
}

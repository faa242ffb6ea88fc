package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jaaliya_backend/internals/constants"
	applicationModel "jaaliya_backend/internals/features/membership/applications/model"
	"jaaliya_backend/internals/features/membership/members/model"
)

var (
	ErrApplicationNotPaid = errors.New("application has not been paid")
	ErrApplicationOwner   = errors.New("application does not belong to this user")
)

/* ===================== Pure date/number logic ===================== */

// ExpiryFor returns 31 December of the payment year — the membership cycle
// is fixed to the calendar year regardless of when payment lands.
func ExpiryFor(paidAt time.Time) time.Time {
	return time.Date(paidAt.Year(), time.December, 31, 0, 0, 0, 0, paidAt.Location())
}

// RenewedExpiry extends an existing membership. Renewing after expiry
// anchors on the payment year; renewing within the current cycle buys the
// following year.
func RenewedExpiry(currentExpiry, paidAt time.Time) time.Time {
	if paidAt.Year() > currentExpiry.Year() {
		return ExpiryFor(paidAt)
	}
	return time.Date(currentExpiry.Year()+1, time.December, 31, 0, 0, 0, 0, currentExpiry.Location())
}

// FormatMemberNumber builds e.g. "JCA-2026-0042".
func FormatMemberNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", constants.MemberNumberPrefix, year, seq)
}

/* ===================== Activation trigger ===================== */

// Activate mints a Member from a paid application, or returns the existing
// one unchanged. Idempotent under duplicate invocation: the client confirm
// path and the webhook path may race here, so the application row is locked
// for the duration and the member table carries a unique index on the
// application id.
func Activate(db *gorm.DB, applicationID, userID uuid.UUID, paidAt time.Time) (*model.Member, error) {
	var member *model.Member

	err := db.Transaction(func(tx *gorm.DB) error {
		var app applicationModel.MembershipApplication
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ?", applicationID).
			First(&app).Error; err != nil {
			return fmt.Errorf("application %s not found: %w", applicationID, err)
		}

		if app.ApplicationUserID != userID {
			return ErrApplicationOwner
		}
		if app.ApplicationPaymentStatus != applicationModel.ApplicationPaymentPaid {
			return ErrApplicationNotPaid
		}

		// Already activated for this application → return unchanged.
		var existing model.Member
		err := tx.Where("member_application_id = ?", applicationID).First(&existing).Error
		if err == nil {
			log.Printf("ℹ️ activation replay for application %s → member %s", applicationID, existing.MemberNumber)
			member = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Renewal: extend the user's existing member record instead of
		// minting a second number.
		if app.ApplicationIsRenewal {
			var current model.Member
			if err := tx.Where("member_user_id = ?", userID).First(&current).Error; err == nil {
				updates := map[string]interface{}{
					"member_status":      model.MemberStatusActive,
					"member_expiry_date": RenewedExpiry(current.MemberExpiryDate, paidAt),
				}
				if err := tx.Model(&current).Updates(updates).Error; err != nil {
					return err
				}
				if err := flipApplicationActive(tx, &app); err != nil {
					return err
				}
				member = &current
				return nil
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			// No member to renew (edge case: lapsed + purged) — fall
			// through and mint a fresh record.
		}

		fresh := model.Member{
			MemberUserID:         userID,
			MemberApplicationID:  applicationID,
			MemberMembershipType: app.ApplicationMembershipType,
			MemberStatus:         model.MemberStatusActive,
			MemberStartDate:      paidAt,
			MemberExpiryDate:     ExpiryFor(paidAt),
		}
		if err := mintMember(tx, &fresh, paidAt.Year()); err != nil {
			return err
		}
		if err := flipApplicationActive(tx, &app); err != nil {
			return err
		}

		member = &fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func flipApplicationActive(tx *gorm.DB, app *applicationModel.MembershipApplication) error {
	return tx.Model(app).Updates(map[string]interface{}{
		"application_status": applicationModel.ApplicationStatusActive,
	}).Error
}

const memberNumberAttempts = 3

// mintMember assigns the next free number and inserts the row. Two different
// applications activating at once can compute the same sequence; the loser
// of the unique-index race retries under a savepoint with a fresh one.
func mintMember(tx *gorm.DB, member *model.Member, year int) error {
	for attempt := 0; attempt < memberNumberAttempts; attempt++ {
		seq, err := nextMemberSequence(tx, year)
		if err != nil {
			return err
		}
		member.MemberNumber = FormatMemberNumber(year, seq)
		err = tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(member).Error
		})
		if err == nil {
			return nil
		}
		if !isDuplicateMemberNumber(err) {
			return err
		}
		log.Printf("[WARN] member number %s already taken, retrying", member.MemberNumber)
		member.MemberID = uuid.Nil
	}
	return fmt.Errorf("could not allocate a member number for year %d", year)
}

func isDuplicateMemberNumber(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "duplicate key")
}

// nextMemberSequence is max-based, not count-based: gaps from deleted rows
// or lost races must never cause a number to be handed out twice.
func nextMemberSequence(tx *gorm.DB, year int) (int, error) {
	prefix := fmt.Sprintf("%s-%d-", constants.MemberNumberPrefix, year)
	var maxSeq int
	if err := tx.Model(&model.Member{}).
		Where("member_number LIKE ?", prefix+"%").
		Select("COALESCE(MAX(CAST(SPLIT_PART(member_number, '-', 3) AS INTEGER)), 0)").
		Scan(&maxSeq).Error; err != nil {
		return 0, err
	}
	return maxSeq + 1, nil
}

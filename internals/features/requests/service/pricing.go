package service

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	memberModel "jaaliya_backend/internals/features/membership/members/model"
	"jaaliya_backend/internals/features/requests/model"
)

/* ===================== Rates ===================== */

const (
	FullRatePence   int64 = 4000 // £40 — non-members and members still in grace
	MemberRatePence int64 = 2000 // £20 — discounted member rate
)

// Grace periods before the member discount kicks in. The two flows use
// different windows on purpose; product has not unified them yet.
const (
	GraceDaysTranslation = 10
	GraceDaysLegal       = 30
)

const (
	ReasonNonMember   = "non_member"
	ReasonWithinGrace = "within_grace"
	ReasonFirstFree   = "first_free"
	ReasonMemberRate  = "member_rate"
)

type PriceQuote struct {
	AmountPence int64  `json:"amount_pence"`
	IsFirstFree bool   `json:"is_first_free"`
	Reason      string `json:"reason"`
}

func graceDaysFor(kind model.ServiceRequestKind) int {
	if kind == model.KindTranslation {
		return GraceDaysTranslation
	}
	return GraceDaysLegal
}

/* ===================== Pure quote logic ===================== */

// QuoteFor computes the fee from already-loaded state. member may be nil
// (anonymous user or no membership row).
func QuoteFor(member *memberModel.Member, priorRequests int64, kind model.ServiceRequestKind, now time.Time) PriceQuote {
	if member == nil || !member.IsCurrentlyActive(now) {
		return PriceQuote{AmountPence: FullRatePence, Reason: ReasonNonMember}
	}

	memberAge := now.Sub(member.MemberStartDate)
	if memberAge < time.Duration(graceDaysFor(kind))*24*time.Hour {
		return PriceQuote{AmountPence: FullRatePence, Reason: ReasonWithinGrace}
	}

	if priorRequests == 0 {
		return PriceQuote{AmountPence: 0, IsFirstFree: true, Reason: ReasonFirstFree}
	}

	return PriceQuote{AmountPence: MemberRatePence, Reason: ReasonMemberRate}
}

/* ===================== DB-backed resolver ===================== */

// CountPriorRequests counts the user's requests across all three
// service-request tables combined.
func CountPriorRequests(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var total int64
	for _, kind := range model.AllKinds() {
		var n int64
		if err := db.Table(kind.TableName()).
			Where("request_user_id = ? AND deleted_at IS NULL", userID).
			Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// ComputePrice resolves the fee for a service request. Read-only; every
// failure path degrades to the conservative non-member full rate so a
// broken read never blocks submission.
func ComputePrice(db *gorm.DB, userID uuid.UUID, kind model.ServiceRequestKind, now time.Time) PriceQuote {
	if userID == uuid.Nil {
		return PriceQuote{AmountPence: FullRatePence, Reason: ReasonNonMember}
	}

	var member memberModel.Member
	if err := db.Where("member_user_id = ?", userID).First(&member).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("[WARN] pricing: member lookup failed, falling back to full rate:", err)
		}
		return PriceQuote{AmountPence: FullRatePence, Reason: ReasonNonMember}
	}

	prior, err := CountPriorRequests(db, userID)
	if err != nil {
		log.Println("[WARN] pricing: prior-request count failed, falling back to full rate:", err)
		return PriceQuote{AmountPence: FullRatePence, Reason: ReasonNonMember}
	}

	return QuoteFor(&member, prior, kind, now)
}

/* ===================== Custom amounts ===================== */

var ErrCustomAmountTooLow = errors.New("custom amount is below the £10 minimum")

// NormalizeCustomAmount parses a free-form amount in pounds ("37.6"),
// rounds it to whole pounds ("38") and enforces the £10 floor.
func NormalizeCustomAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "£"))
	if raw == "" {
		return 0, errors.New("empty amount")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("amount is not a number")
	}
	pounds := int64(math.Round(f))
	if pounds < 10 {
		return 0, ErrCustomAmountTooLow
	}
	return pounds, nil
}

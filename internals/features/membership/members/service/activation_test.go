package service

import (
	"errors"
	"io"
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestExpiryFor(t *testing.T) {
	t.Run("Given a January payment When computing expiry Then 31 December of same year", func(t *testing.T) {
		paid := time.Date(2026, time.January, 5, 9, 30, 0, 0, time.UTC)

		got := ExpiryFor(paid)

		want := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Given a late-December payment When computing expiry Then still 31 December of that year", func(t *testing.T) {
		paid := time.Date(2026, time.December, 30, 23, 0, 0, 0, time.UTC)

		got := ExpiryFor(paid)

		if got.Year() != 2026 || got.Month() != time.December || got.Day() != 31 {
			t.Errorf("expected 2026-12-31, got %v", got)
		}
	})
}

func TestRenewedExpiry(t *testing.T) {
	t.Run("Given renewal within the current cycle When extending Then next year's 31 December", func(t *testing.T) {
		current := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
		paid := time.Date(2026, time.November, 10, 0, 0, 0, 0, time.UTC)

		got := RenewedExpiry(current, paid)

		want := time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Given renewal after a lapse When extending Then anchored on the payment year", func(t *testing.T) {
		current := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
		paid := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)

		got := RenewedExpiry(current, paid)

		want := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestIsDuplicateMemberNumber(t *testing.T) {
	t.Run("Given a unique-index violation When classifying Then retryable", func(t *testing.T) {
		pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "idx_members_member_number" (SQLSTATE 23505)`)
		if !isDuplicateMemberNumber(pgErr) {
			t.Error("expected the Postgres duplicate-key error to be recognised")
		}
		if !isDuplicateMemberNumber(gorm.ErrDuplicatedKey) {
			t.Error("expected the translated duplicate-key error to be recognised")
		}
	})

	t.Run("Given any other failure When classifying Then not retryable", func(t *testing.T) {
		if isDuplicateMemberNumber(io.ErrUnexpectedEOF) {
			t.Error("unrelated errors must not trigger a number retry")
		}
	})
}

func TestFormatMemberNumber(t *testing.T) {
	t.Run("Given a small sequence When formatting Then zero-padded to four digits", func(t *testing.T) {
		if got := FormatMemberNumber(2026, 42); got != "JCA-2026-0042" {
			t.Errorf("expected JCA-2026-0042, got %s", got)
		}
	})

	t.Run("Given a sequence past four digits When formatting Then it is not truncated", func(t *testing.T) {
		if got := FormatMemberNumber(2026, 12345); got != "JCA-2026-12345" {
			t.Errorf("expected JCA-2026-12345, got %s", got)
		}
	})
}

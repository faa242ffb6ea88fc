package service

import (
	"errors"
	"testing"
	"time"

	memberModel "jaaliya_backend/internals/features/membership/members/model"
	"jaaliya_backend/internals/features/requests/model"
)

func activeMember(start time.Time, now time.Time) *memberModel.Member {
	return &memberModel.Member{
		MemberStatus:     memberModel.MemberStatusActive,
		MemberStartDate:  start,
		MemberExpiryDate: time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestQuoteFor(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Given no member When quoting Then full non-member rate", func(t *testing.T) {
		q := QuoteFor(nil, 0, model.KindTranslation, now)

		if q.AmountPence != FullRatePence {
			t.Errorf("expected %d, got %d", FullRatePence, q.AmountPence)
		}
		if q.IsFirstFree {
			t.Error("non-member quote must not be first-free")
		}
		if q.Reason != ReasonNonMember {
			t.Errorf("expected reason %q, got %q", ReasonNonMember, q.Reason)
		}
	})

	t.Run("Given expired member When quoting Then full rate regardless of prior count", func(t *testing.T) {
		expired := &memberModel.Member{
			MemberStatus:     memberModel.MemberStatusExpired,
			MemberStartDate:  now.AddDate(-1, 0, 0),
			MemberExpiryDate: now.AddDate(0, -6, 0),
		}

		q := QuoteFor(expired, 0, model.KindTranslation, now)

		if q.AmountPence != FullRatePence || q.Reason != ReasonNonMember {
			t.Errorf("expected full rate / non_member, got %d / %s", q.AmountPence, q.Reason)
		}
	})

	t.Run("Given member active 5 days When quoting translation Then still within 10-day grace", func(t *testing.T) {
		m := activeMember(now.AddDate(0, 0, -5), now)

		q := QuoteFor(m, 0, model.KindTranslation, now)

		if q.AmountPence != FullRatePence {
			t.Errorf("expected %d, got %d", FullRatePence, q.AmountPence)
		}
		if q.Reason != ReasonWithinGrace {
			t.Errorf("expected reason %q, got %q", ReasonWithinGrace, q.Reason)
		}
	})

	t.Run("Given member active 15 days When quoting translation Then first request is free", func(t *testing.T) {
		m := activeMember(now.AddDate(0, 0, -15), now)

		q := QuoteFor(m, 0, model.KindTranslation, now)

		if q.AmountPence != 0 {
			t.Errorf("expected 0, got %d", q.AmountPence)
		}
		if !q.IsFirstFree {
			t.Error("expected IsFirstFree")
		}
		if q.Reason != ReasonFirstFree {
			t.Errorf("expected reason %q, got %q", ReasonFirstFree, q.Reason)
		}
	})

	t.Run("Given member active 15 days When quoting legal Then still within 30-day grace", func(t *testing.T) {
		// The two flows intentionally use different grace windows.
		m := activeMember(now.AddDate(0, 0, -15), now)

		q := QuoteFor(m, 0, model.KindLegalOther, now)

		if q.AmountPence != FullRatePence || q.Reason != ReasonWithinGrace {
			t.Errorf("expected full rate / within_grace, got %d / %s", q.AmountPence, q.Reason)
		}
	})

	t.Run("Given eligible member with one prior request When quoting Then reduced member rate", func(t *testing.T) {
		m := activeMember(now.AddDate(0, 0, -60), now)

		q := QuoteFor(m, 1, model.KindTranslation, now)

		if q.AmountPence != MemberRatePence {
			t.Errorf("expected %d, got %d", MemberRatePence, q.AmountPence)
		}
		if q.IsFirstFree {
			t.Error("second request must not be first-free")
		}
		if q.Reason != ReasonMemberRate {
			t.Errorf("expected reason %q, got %q", ReasonMemberRate, q.Reason)
		}
	})

	t.Run("Given eligible member When quoting wakala with no priors Then free like the other kinds", func(t *testing.T) {
		m := activeMember(now.AddDate(0, 0, -45), now)

		q := QuoteFor(m, 0, model.KindWakala, now)

		if !q.IsFirstFree || q.AmountPence != 0 {
			t.Errorf("expected first-free, got %+v", q)
		}
	})
}

func TestNormalizeCustomAmount(t *testing.T) {
	t.Run("Given fractional input When normalizing Then rounded to whole pounds", func(t *testing.T) {
		got, err := NormalizeCustomAmount("37.6")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 38 {
			t.Errorf("expected 38, got %d", got)
		}
	})

	t.Run("Given amount below floor When normalizing Then rejected", func(t *testing.T) {
		_, err := NormalizeCustomAmount("9.99")
		if !errors.Is(err, ErrCustomAmountTooLow) {
			t.Errorf("expected ErrCustomAmountTooLow, got %v", err)
		}
	})

	t.Run("Given amount rounding down past floor When normalizing Then rejected", func(t *testing.T) {
		// 9.4 rounds to 9, which is under the £10 minimum.
		_, err := NormalizeCustomAmount("9.4")
		if !errors.Is(err, ErrCustomAmountTooLow) {
			t.Errorf("expected ErrCustomAmountTooLow, got %v", err)
		}
	})

	t.Run("Given currency prefix and spaces When normalizing Then accepted", func(t *testing.T) {
		got, err := NormalizeCustomAmount(" £25 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 25 {
			t.Errorf("expected 25, got %d", got)
		}
	})

	t.Run("Given non-numeric input When normalizing Then rejected", func(t *testing.T) {
		if _, err := NormalizeCustomAmount("ten pounds"); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given exactly the floor When normalizing Then accepted", func(t *testing.T) {
		got, err := NormalizeCustomAmount("10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 10 {
			t.Errorf("expected 10, got %d", got)
		}
	})
}

func TestGraceDaysFor(t *testing.T) {
	if d := graceDaysFor(model.KindTranslation); d != GraceDaysTranslation {
		t.Errorf("translation grace: expected %d, got %d", GraceDaysTranslation, d)
	}
	if d := graceDaysFor(model.KindLegalOther); d != GraceDaysLegal {
		t.Errorf("legal grace: expected %d, got %d", GraceDaysLegal, d)
	}
	if d := graceDaysFor(model.KindWakala); d != GraceDaysLegal {
		t.Errorf("wakala grace: expected %d, got %d", GraceDaysLegal, d)
	}
}

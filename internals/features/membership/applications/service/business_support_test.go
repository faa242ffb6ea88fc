package service

import (
	"errors"
	"testing"

	"jaaliya_backend/internals/features/membership/applications/model"
	requestService "jaaliya_backend/internals/features/requests/service"
)

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func TestResolveBusinessSupportAmount(t *testing.T) {
	t.Run("Given an annual gold tier When resolving Then the tier amount", func(t *testing.T) {
		got, err := ResolveBusinessSupportAmount(model.PaymentFrequencyAnnual, strPtr("gold"), nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 50000 {
			t.Errorf("expected 50000, got %d", got)
		}
	})

	t.Run("Given an annual pledge with an unknown tier When resolving Then rejected", func(t *testing.T) {
		_, err := ResolveBusinessSupportAmount(model.PaymentFrequencyAnnual, strPtr("diamond"), nil, nil)
		if !errors.Is(err, ErrUnknownTier) {
			t.Errorf("expected ErrUnknownTier, got %v", err)
		}
	})

	t.Run("Given an annual pledge without a tier When resolving Then rejected", func(t *testing.T) {
		if _, err := ResolveBusinessSupportAmount(model.PaymentFrequencyAnnual, nil, nil, nil); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given a monthly preset from the menu When resolving Then accepted", func(t *testing.T) {
		got, err := ResolveBusinessSupportAmount(model.PaymentFrequencyMonthly, nil, i64Ptr(2500), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 2500 {
			t.Errorf("expected 2500, got %d", got)
		}
	})

	t.Run("Given a monthly preset not on the menu When resolving Then rejected", func(t *testing.T) {
		if _, err := ResolveBusinessSupportAmount(model.PaymentFrequencyMonthly, nil, i64Ptr(3000), nil); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given a one-time preset only valid for one-time When resolving Then accepted", func(t *testing.T) {
		got, err := ResolveBusinessSupportAmount(model.PaymentFrequencyOneTime, nil, i64Ptr(10000), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 10000 {
			t.Errorf("expected 10000, got %d", got)
		}
	})

	t.Run("Given a custom amount When resolving Then normalized and converted to pence", func(t *testing.T) {
		got, err := ResolveBusinessSupportAmount(model.PaymentFrequencyOneTime, nil, nil, strPtr("37.6"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 3800 {
			t.Errorf("expected 3800, got %d", got)
		}
	})

	t.Run("Given a custom amount below the floor When resolving Then rejected", func(t *testing.T) {
		_, err := ResolveBusinessSupportAmount(model.PaymentFrequencyMonthly, nil, nil, strPtr("5"))
		if !errors.Is(err, requestService.ErrCustomAmountTooLow) {
			t.Errorf("expected ErrCustomAmountTooLow, got %v", err)
		}
	})

	t.Run("Given a monthly pledge with no selection When resolving Then rejected", func(t *testing.T) {
		if _, err := ResolveBusinessSupportAmount(model.PaymentFrequencyMonthly, nil, nil, nil); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given an unknown frequency When resolving Then rejected", func(t *testing.T) {
		if _, err := ResolveBusinessSupportAmount("weekly", nil, i64Ptr(2500), nil); err == nil {
			t.Error("expected an error")
		}
	})
}

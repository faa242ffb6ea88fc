package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestRegisterEventRequestValidate(t *testing.T) {
	v := validator.New()
	eventID := "8f1f9f0a-0f1e-4e2d-9a3b-1c2d3e4f5a6b"

	t.Run("Given a mixed ticket order When validating Then accepted", func(t *testing.T) {
		req := RegisterEventRequest{
			RegistrationEventID: eventID,
			RegistrationTickets: map[string]int{"adult": 2, "child": 1},
		}
		if err := req.Validate(v); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Given an unknown ticket type When validating Then rejected", func(t *testing.T) {
		req := RegisterEventRequest{
			RegistrationEventID: eventID,
			RegistrationTickets: map[string]int{"vip": 1},
		}
		if err := req.Validate(v); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given only zero counts When validating Then rejected", func(t *testing.T) {
		req := RegisterEventRequest{
			RegistrationEventID: eventID,
			RegistrationTickets: map[string]int{"adult": 0},
		}
		if err := req.Validate(v); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given a negative count When validating Then rejected", func(t *testing.T) {
		req := RegisterEventRequest{
			RegistrationEventID: eventID,
			RegistrationTickets: map[string]int{"adult": -1, "child": 2},
		}
		if err := req.Validate(v); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given a non-uuid event id When validating Then rejected", func(t *testing.T) {
		req := RegisterEventRequest{
			RegistrationEventID: "event-42",
			RegistrationTickets: map[string]int{"adult": 1},
		}
		if err := req.Validate(v); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestRegisterEventRequestAmountPence(t *testing.T) {
	t.Run("Given two adults and one child When totalling Then price list applied", func(t *testing.T) {
		req := RegisterEventRequest{
			RegistrationTickets: map[string]int{"adult": 2, "child": 1},
		}
		// 2×1500 + 1×750
		if got := req.AmountPence(); got != 3750 {
			t.Errorf("expected 3750, got %d", got)
		}
	})

	t.Run("Given a family ticket When totalling Then flat family price", func(t *testing.T) {
		req := RegisterEventRequest{
			RegistrationTickets: map[string]int{"family": 1},
		}
		if got := req.AmountPence(); got != 3500 {
			t.Errorf("expected 3500, got %d", got)
		}
	})
}

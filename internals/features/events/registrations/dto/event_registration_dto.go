package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"jaaliya_backend/internals/features/events/registrations/model"
)

type RegisterEventRequest struct {
	RegistrationEventID string         `json:"registration_event_id" validate:"required,uuid"`
	RegistrationTickets map[string]int `json:"registration_tickets" validate:"required"`
}

func (r *RegisterEventRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(r); err != nil {
		return err
	}

	total := 0
	for ticketType, count := range r.RegistrationTickets {
		if _, ok := model.TicketPricesPence[ticketType]; !ok {
			return fmt.Errorf("unknown ticket type %q", ticketType)
		}
		if count < 0 {
			return fmt.Errorf("ticket count for %q must not be negative", ticketType)
		}
		total += count
	}
	if total == 0 {
		return errors.New("at least one ticket is required")
	}
	return nil
}

// AmountPence totals the order against the price list.
func (r *RegisterEventRequest) AmountPence() int64 {
	var total int64
	for ticketType, count := range r.RegistrationTickets {
		total += model.TicketPricesPence[ticketType] * int64(count)
	}
	return total
}

package dto

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestConfirmPaymentRequest(t *testing.T) {
	v := validator.New()

	t.Run("Given only an intent id When validating Then accepted", func(t *testing.T) {
		req := ConfirmPaymentRequest{PaymentIntentID: "pi_123"}
		if err := v.Struct(&req); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Given an inline pending payload When validating Then accepted", func(t *testing.T) {
		req := ConfirmPaymentRequest{
			PaymentIntentID: "pi_123",
			Pending: &ConfirmPendingPayload{
				Table: "translation_requests",
				Data:  json.RawMessage(`{"request_name":"Amina","request_email":"a@b.org"}`),
			},
		}
		if err := v.Struct(&req); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Given a pending payload without a table When validating Then rejected", func(t *testing.T) {
		req := ConfirmPaymentRequest{
			PaymentIntentID: "pi_123",
			Pending:         &ConfirmPendingPayload{Data: json.RawMessage(`{}`)},
		}
		if err := v.Struct(&req); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given no intent id When validating Then rejected", func(t *testing.T) {
		req := ConfirmPaymentRequest{}
		if err := v.Struct(&req); err == nil {
			t.Error("expected an error")
		}
	})
}

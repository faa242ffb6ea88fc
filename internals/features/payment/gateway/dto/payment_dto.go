package dto

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

/* ===================== Create intent ===================== */

type CreateIntentRequest struct {
	Amount   int64             `json:"amount" validate:"required,gt=0"` // minor units (pence)
	Currency string            `json:"currency" validate:"required,eq=gbp"`
	Metadata map[string]string `json:"metadata" validate:"required"`
}

func (r *CreateIntentRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(r); err != nil {
		return err
	}
	if r.Metadata["type"] == "" {
		return errors.New("metadata.type is required")
	}
	return nil
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

/* ===================== Confirm ===================== */

// ConfirmPendingPayload carries the request body for flows where the row is
// only created after payment (translation/legal) and no pending write was
// saved, i.e. the synchronous card path with no redirect.
type ConfirmPendingPayload struct {
	Table string          `json:"table" validate:"required"`
	Data  json.RawMessage `json:"data" validate:"required"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string                 `json:"payment_intent_id" validate:"required"`
	Pending         *ConfirmPendingPayload `json:"pending" validate:"omitempty"`
}

/* ===================== Pending write (redirect continuation) ===================== */

type SavePendingWriteRequest struct {
	Table           string          `json:"table" validate:"required"`
	Data            json.RawMessage `json:"data" validate:"required"`
	PaymentIntentID string          `json:"payment_intent_id" validate:"required"`
}

// ResumePendingWriteRequest carries either the client secret the widget
// appended to the return URL or the bare intent id.
type ResumePendingWriteRequest struct {
	PaymentIntentClientSecret string `json:"payment_intent_client_secret"`
	PaymentIntentID           string `json:"payment_intent_id"`
}

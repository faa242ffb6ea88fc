package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"jaaliya_backend/internals/features/requests/model"
)

/* ===================== DTO ===================== */

// CreateServiceRequestFunction mirrors the serverless function contract:
// the table must be one of the three known request tables.
type CreateServiceRequestFunction struct {
	Table string                   `json:"table" validate:"required"`
	Data  ServiceRequestDataFields `json:"data" validate:"required"`
}

type ServiceRequestDataFields struct {
	RequestName    string         `json:"request_name" validate:"required,max=120"`
	RequestEmail   string         `json:"request_email" validate:"required,email"`
	RequestPhone   *string        `json:"request_phone" validate:"omitempty,max=30"`
	RequestDetails datatypes.JSON `json:"request_details"`
}

func (r *CreateServiceRequestFunction) Validate(v *validator.Validate) (model.ServiceRequestKind, error) {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(r); err != nil {
		return "", err
	}
	kind, ok := model.KindFromTable(r.Table)
	if !ok {
		return "", errors.New("table must be one of translation_requests, other_legal_requests, wakala_applications")
	}
	return kind, nil
}

/* ===================== Responses ===================== */

type CreateServiceRequestResponse struct {
	ID               string `json:"id"`
	BookingReference string `json:"booking_reference"`
	PaymentStatus    string `json:"payment_status"`
	Status           string `json:"status"`
}

package service

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	helper "jaaliya_backend/internals/helpers"

	"jaaliya_backend/internals/features/requests/model"
)

type CreateParams struct {
	Kind            model.ServiceRequestKind
	UserID          *uuid.UUID
	Name            string
	Email           string
	Phone           *string
	Details         datatypes.JSON
	AmountPence     int64
	PaymentStatus   string
	Status          string
	PaymentIntentID *string
}

// CreateServiceRequest inserts a request row into the table selected by the
// kind. When a payment intent id is attached, the insert is conflict-ignoring
// on that id: replays (confirm path racing the webhook, a retried function
// call after a lost response) return the already-created row instead of a
// duplicate. The bool reports whether this call created the row.
func CreateServiceRequest(db *gorm.DB, p CreateParams) (*model.ServiceRequest, bool, error) {
	if !p.Kind.Valid() {
		return nil, false, errors.New("unknown service request kind")
	}

	req := model.ServiceRequest{
		RequestUserID:           p.UserID,
		RequestName:             p.Name,
		RequestEmail:            p.Email,
		RequestPhone:            p.Phone,
		RequestDetails:          p.Details,
		RequestAmountPence:      p.AmountPence,
		RequestPaymentStatus:    p.PaymentStatus,
		RequestStatus:           p.Status,
		RequestBookingReference: helper.GenerateBookingReference("REQ"),
		RequestPaymentIntentID:  p.PaymentIntentID,
	}

	q := db.Table(p.Kind.TableName())
	if p.PaymentIntentID != nil {
		q = q.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "request_payment_intent_id"}},
			DoNothing: true,
		})
	}

	res := q.Create(&req)
	if res.Error != nil {
		return nil, false, res.Error
	}

	if res.RowsAffected == 0 && p.PaymentIntentID != nil {
		// Conflict: a previous run already wrote this intent's row.
		var existing model.ServiceRequest
		if err := db.Table(p.Kind.TableName()).
			Where("request_payment_intent_id = ?", *p.PaymentIntentID).
			First(&existing).Error; err != nil {
			return nil, false, err
		}
		log.Printf("ℹ️ service request for intent %s already exists (ref=%s)", *p.PaymentIntentID, existing.RequestBookingReference)
		return &existing, false, nil
	}

	return &req, true, nil
}

// PendingRequestPayload is the JSON shape stored in a pending write and
// replayed after a redirect or by the webhook.
type PendingRequestPayload struct {
	RequestName        string         `json:"request_name"`
	RequestEmail       string         `json:"request_email"`
	RequestPhone       *string        `json:"request_phone,omitempty"`
	RequestDetails     datatypes.JSON `json:"request_details,omitempty"`
	RequestAmountPence int64          `json:"request_amount_pence"`
}

// CreateFromJSON resumes a recorded pending payload as a paid request.
func CreateFromJSON(db *gorm.DB, kind model.ServiceRequestKind, userID *uuid.UUID, payload []byte, paymentIntentID string) (*model.ServiceRequest, bool, error) {
	var body PendingRequestPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, false, err
	}
	if body.RequestName == "" || body.RequestEmail == "" {
		return nil, false, errors.New("pending payload missing requester identity")
	}

	intentID := paymentIntentID
	return CreateServiceRequest(db, CreateParams{
		Kind:            kind,
		UserID:          userID,
		Name:            body.RequestName,
		Email:           body.RequestEmail,
		Phone:           body.RequestPhone,
		Details:         body.RequestDetails,
		AmountPence:     body.RequestAmountPence,
		PaymentStatus:   model.RequestPaymentPaid,
		Status:          model.RequestStatusSubmitted,
		PaymentIntentID: &intentID,
	})
}

package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jaaliya_backend/internals/configs"
	"jaaliya_backend/internals/features/payment/gateway/dto"
	"jaaliya_backend/internals/features/payment/gateway/model"
	paymentService "jaaliya_backend/internals/features/payment/gateway/service"
	requestModel "jaaliya_backend/internals/features/requests/model"
	requestService "jaaliya_backend/internals/features/requests/service"
	helper "jaaliya_backend/internals/helpers"
)

const pendingWriteTTL = time.Hour

type PaymentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Validate: validator.New()}
}

/* ===================== Public config ===================== */

// GET /api/public/config
//
// Only the publishable key crosses this boundary. Secret and webhook keys
// never leave the server.
func (ctrl *PaymentController) GetPublicConfig(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", fiber.Map{
		"stripe_publishable_key": configs.StripePublishableKey,
	})
}

/* ===================== Create intent ===================== */

// POST /api/u/payments/intent
func (ctrl *PaymentController) CreateIntent(c *fiber.Ctx) error {
	var body dto.CreateIntentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validate); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if md := paymentService.MetadataFromIntent(body.Metadata); !md.KnownType() {
		return fiber.NewError(fiber.StatusBadRequest, "metadata.type is not a recognised payment type")
	}

	// The metadata ties the intent back to our rows; stamp the caller in so
	// a client cannot pin another user's id onto a charge.
	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in required")
	}
	body.Metadata["user_id"] = userUUID.String()

	clientSecret, err := paymentService.CreateIntent(c.UserContext(), body.Amount, body.Currency, body.Metadata)
	if err != nil {
		if errors.Is(err, paymentService.ErrSetupTimeout) {
			return fiber.NewError(fiber.StatusRequestTimeout, "Payment setup timed out — please try again")
		}
		log.Println("[ERROR] CreateIntent failed:", err)
		return fiber.NewError(fiber.StatusBadGateway, "Payment setup failed")
	}

	return helper.JsonOK(c, "Payment intent created.", dto.CreateIntentResponse{ClientSecret: clientSecret})
}

/* ===================== Confirm (client path) ===================== */

// POST /api/u/payments/confirm
//
// Server-side completion of the client flow: the intent's status is read
// from Stripe, never from the browser. Applies the same reconciliation the
// webhook performs, so whichever side runs first wins and the loser no-ops.
func (ctrl *PaymentController) ConfirmPayment(c *fiber.Ctx) error {
	var body dto.ConfirmPaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "payment_intent_id is required")
	}

	pi, err := paymentService.RetrieveIntent(c.UserContext(), body.PaymentIntentID)
	if err != nil {
		log.Println("[ERROR] RetrieveIntent failed:", err)
		return fiber.NewError(fiber.StatusBadGateway, "Could not verify payment with provider")
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fiber.NewError(fiber.StatusConflict, "Payment has not succeeded")
	}

	// Synchronous service-request path: the row only exists after payment,
	// so the confirm call may carry the request body inline. Keyed on the
	// intent id, so a replay returns the same row.
	if body.Pending != nil {
		kind, ok := requestModel.KindFromTable(body.Pending.Table)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown table")
		}
		var userIDPtr *uuid.UUID
		if userUUID := helper.GetUserUUID(c); userUUID != uuid.Nil {
			userIDPtr = &userUUID
		}
		if _, _, err := requestService.CreateFromJSON(ctrl.DB, kind, userIDPtr, body.Pending.Data, pi.ID); err != nil {
			log.Println("[ERROR] Post-payment request create failed for intent", pi.ID, ":", err)
			return fiber.NewError(fiber.StatusInternalServerError,
				"Payment received but the record could not be created yet — it will be reconciled shortly")
		}
	}

	if err := paymentService.ApplyIntentSucceeded(ctrl.DB, pi); err != nil {
		// Money has moved but our write failed. Never claim success; the
		// webhook path will reconcile, and the audit log carries the trail.
		log.Println("[ERROR] Post-payment write failed for intent", pi.ID, ":", err)
		return fiber.NewError(fiber.StatusInternalServerError,
			"Payment received but the record could not be updated yet — it will be reconciled shortly")
	}

	return helper.JsonOK(c, "Payment confirmed.", fiber.Map{
		"payment_intent_id": pi.ID,
		"status":            string(pi.Status),
	})
}

/* ===================== Pending write (redirect continuation) ===================== */

// POST /api/u/payments/pending
//
// Called before the widget navigates away for a 3-D Secure challenge.
// Keyed by intent id: saving twice is a no-op.
func (ctrl *PaymentController) SavePendingWrite(c *fiber.Ctx) error {
	var body dto.SavePendingWriteRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "table, data and payment_intent_id are required")
	}
	if _, ok := requestModel.KindFromTable(body.Table); !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown table")
	}

	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in required")
	}

	pw := model.PendingWrite{
		PendingWriteUserID:          userUUID,
		PendingWriteTable:           body.Table,
		PendingWritePayload:         []byte(body.Data),
		PendingWritePaymentIntentID: body.PaymentIntentID,
		PendingWriteExpiresAt:       time.Now().Add(pendingWriteTTL),
	}
	res := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pending_write_payment_intent_id"}},
		DoNothing: true,
	}).Create(&pw)
	if res.Error != nil {
		log.Println("[ERROR] Failed to save pending write:", res.Error)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save pending payment data")
	}

	return helper.JsonCreated(c, "Pending payment data saved.", fiber.Map{
		"payment_intent_id": body.PaymentIntentID,
	})
}

// POST /api/u/payments/pending/resume
//
// The return leg after an off-site redirect. Consumes the pending write
// exactly once; a replay (double-parse of the return URL, webhook already
// done) returns the existing record instead of writing again.
func (ctrl *PaymentController) ResumePendingWrite(c *fiber.Ctx) error {
	var body dto.ResumePendingWriteRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	intentID := body.PaymentIntentID
	if intentID == "" {
		id, ok := paymentService.IntentIDFromClientSecret(body.PaymentIntentClientSecret)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "A valid payment_intent_id or client secret is required")
		}
		intentID = id
	}

	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in required")
	}

	var pw model.PendingWrite
	if err := ctrl.DB.Where("pending_write_payment_intent_id = ?", intentID).First(&pw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No pending payment data for this payment")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up pending payment data")
	}
	if pw.PendingWriteUserID != userUUID {
		return fiber.NewError(fiber.StatusForbidden, "Pending payment data belongs to another user")
	}

	kind, ok := requestModel.KindFromTable(pw.PendingWriteTable)
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "Pending payment data is corrupt")
	}

	pi, err := paymentService.RetrieveIntent(c.UserContext(), intentID)
	if err != nil {
		log.Println("[ERROR] RetrieveIntent failed on resume:", err)
		return fiber.NewError(fiber.StatusBadGateway, "Could not verify payment with provider")
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fiber.NewError(fiber.StatusConflict, "Payment has not succeeded")
	}

	// Claim the continuation. RowsAffected 0 means someone (this endpoint
	// replayed, or the webhook) already consumed it.
	now := time.Now()
	claim := ctrl.DB.Model(&model.PendingWrite{}).
		Where("pending_write_id = ? AND pending_write_consumed_at IS NULL", pw.PendingWriteID).
		Update("pending_write_consumed_at", now)
	if claim.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resume pending payment data")
	}

	if claim.RowsAffected == 0 {
		var existing requestModel.ServiceRequest
		if err := ctrl.DB.Table(kind.TableName()).
			Where("request_payment_intent_id = ?", intentID).
			First(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Pending payment data was already processed")
		}
		return helper.JsonOK(c, "Request already created.", existing)
	}

	req, _, err := requestService.CreateFromJSON(ctrl.DB, kind, &userUUID, pw.PendingWritePayload, intentID)
	if err != nil {
		log.Println("[ERROR] Failed to resume pending write:", err)
		return fiber.NewError(fiber.StatusInternalServerError,
			"Payment received but the record could not be created yet — it will be reconciled shortly")
	}

	return helper.JsonCreated(c, "Request created.", req)
}

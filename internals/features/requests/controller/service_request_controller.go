package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jaaliya_backend/internals/features/requests/dto"
	"jaaliya_backend/internals/features/requests/model"
	requestService "jaaliya_backend/internals/features/requests/service"
	helper "jaaliya_backend/internals/helpers"
)

type ServiceRequestController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewServiceRequestController(db *gorm.DB) *ServiceRequestController {
	return &ServiceRequestController{DB: db, Validate: validator.New()}
}

/* ===================== Quote ===================== */

// GET /api/public/requests/quote?kind=translation
//
// Works for anonymous callers too; they just get the full rate.
func (ctrl *ServiceRequestController) GetQuote(c *fiber.Ctx) error {
	kind := model.ServiceRequestKind(c.Query("kind"))
	if !kind.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "kind must be translation, legal_other or wakala")
	}

	userUUID := helper.GetUserUUID(c)
	quote := requestService.ComputePrice(ctrl.DB, userUUID, kind, time.Now())
	return helper.JsonOK(c, "Quote computed.", quote)
}

/* ===================== Create (function contract) ===================== */

// POST /api/u/functions/create-service-request
//
// The price is resolved server-side and never trusted from the client.
// Free-tier requests are inserted directly as paid; anything priced must go
// through the payment-intent flow first and lands here via the confirm
// path or the webhook instead.
func (ctrl *ServiceRequestController) CreateViaFunction(c *fiber.Ctx) error {
	var body dto.CreateServiceRequestFunction
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	kind, err := body.Validate(ctrl.Validate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	userUUID := helper.GetUserUUID(c)
	var userIDPtr *uuid.UUID
	if userUUID != uuid.Nil {
		userIDPtr = &userUUID
	}

	quote := requestService.ComputePrice(ctrl.DB, userUUID, kind, time.Now())
	if quote.AmountPence > 0 {
		// £ due — the client must create an intent and pay first.
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"success": false,
			"message": "Payment required before this request can be created",
			"quote":   quote,
		})
	}

	req, _, err := requestService.CreateServiceRequest(ctrl.DB, requestService.CreateParams{
		Kind:          kind,
		UserID:        userIDPtr,
		Name:          body.Data.RequestName,
		Email:         body.Data.RequestEmail,
		Phone:         body.Data.RequestPhone,
		Details:       body.Data.RequestDetails,
		AmountPence:   0,
		PaymentStatus: model.RequestPaymentPaid,
		Status:        model.RequestStatusSubmitted,
	})
	if err != nil {
		log.Println("[ERROR] Failed to create service request:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create service request")
	}

	return helper.JsonCreated(c, "Request created.", dto.CreateServiceRequestResponse{
		ID:               req.RequestID.String(),
		BookingReference: req.RequestBookingReference,
		PaymentStatus:    req.RequestPaymentStatus,
		Status:           req.RequestStatus,
	})
}

/* ===================== Query ===================== */

// GET /api/u/requests?kind=translation
func (ctrl *ServiceRequestController) GetMyRequests(c *fiber.Ctx) error {
	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in required")
	}

	kind := model.ServiceRequestKind(c.Query("kind"))
	if !kind.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "kind must be translation, legal_other or wakala")
	}

	var requests []model.ServiceRequest
	if err := ctrl.DB.Table(kind.TableName()).
		Where("request_user_id = ? AND deleted_at IS NULL", userUUID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch requests")
	}

	return helper.JsonOK(c, "Requests fetched.", requests)
}

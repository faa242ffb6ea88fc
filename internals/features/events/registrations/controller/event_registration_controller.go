package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"jaaliya_backend/internals/features/events/registrations/dto"
	"jaaliya_backend/internals/features/events/registrations/model"
	helper "jaaliya_backend/internals/helpers"
)

type EventRegistrationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewEventRegistrationController(db *gorm.DB) *EventRegistrationController {
	return &EventRegistrationController{DB: db, Validate: validator.New()}
}

// POST /api/u/events/register
//
// Creates the registration pending; the client then creates an intent with
// metadata.event_registration_id and the confirm path or webhook flips it
// to paid + confirmed.
func (ctrl *EventRegistrationController) Register(c *fiber.Ctx) error {
	var body dto.RegisterEventRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validate); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in to register for events")
	}

	eventID, err := uuid.Parse(body.RegistrationEventID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "registration_event_id is not a valid UUID")
	}

	tickets := datatypes.JSONMap{}
	for ticketType, count := range body.RegistrationTickets {
		if count > 0 {
			tickets[ticketType] = count
		}
	}

	registration := model.EventRegistration{
		RegistrationUserID:           userUUID,
		RegistrationEventID:          eventID,
		RegistrationTickets:          tickets,
		RegistrationAmountPence:      body.AmountPence(),
		RegistrationPaymentStatus:    model.RegistrationPaymentPending,
		RegistrationStatus:           model.RegistrationStatusPending,
		RegistrationBookingReference: helper.GenerateBookingReference("EVT"),
	}
	if err := ctrl.DB.Create(&registration).Error; err != nil {
		log.Println("[ERROR] Failed to create event registration:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create registration")
	}

	return helper.JsonCreated(c, "Registration created. Please continue to payment.", registration)
}

// GET /api/u/events/registrations
func (ctrl *EventRegistrationController) GetMyRegistrations(c *fiber.Ctx) error {
	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in required")
	}

	var registrations []model.EventRegistration
	if err := ctrl.DB.
		Where("registration_user_id = ?", userUUID).
		Order("created_at DESC").
		Find(&registrations).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch registrations")
	}

	return helper.JsonOK(c, "Registrations fetched.", registrations)
}

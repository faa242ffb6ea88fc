package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	registrationController "jaaliya_backend/internals/features/events/registrations/controller"
)

// EventRegistrationUserRoutes defines the routes for paid event registration
func EventRegistrationUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := registrationController.NewEventRegistrationController(db)

	api.Post("/events/register", ctrl.Register)
	api.Get("/events/registrations", ctrl.GetMyRegistrations)
}

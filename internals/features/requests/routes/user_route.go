package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	requestController "jaaliya_backend/internals/features/requests/controller"
)

// ServiceRequestUserRoutes defines the authenticated service-request routes
func ServiceRequestUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := requestController.NewServiceRequestController(db)

	api.Get("/requests", ctrl.GetMyRequests)

	api.Post("/functions/create-service-request", ctrl.CreateViaFunction)
}

// ServiceRequestPublicRoutes defines the public (anonymous-friendly) routes
func ServiceRequestPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := requestController.NewServiceRequestController(db)

	api.Get("/requests/quote", ctrl.GetQuote)
}

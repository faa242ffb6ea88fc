package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	applicationController "jaaliya_backend/internals/features/membership/applications/controller"
)

// MembershipApplicationUserRoutes defines the routes for membership applications
func MembershipApplicationUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := applicationController.NewMembershipApplicationController(db)

	api.Post("/memberships/apply", ctrl.Apply)
	api.Post("/memberships/renew", ctrl.Renew)
	api.Get("/memberships", ctrl.GetMyApplications)
}

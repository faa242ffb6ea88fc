package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberController "jaaliya_backend/internals/features/membership/members/controller"
)

// MemberUserRoutes defines the routes for member records
func MemberUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := memberController.NewMemberController(db)

	api.Get("/members/me", ctrl.GetMe) // dashboard polls this after payment

	api.Post("/functions/activate-membership", ctrl.ActivateMembership)
}

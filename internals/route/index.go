// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventRoutes "jaaliya_backend/internals/features/events/registrations/routes"
	applicationRoutes "jaaliya_backend/internals/features/membership/applications/routes"
	memberRoutes "jaaliya_backend/internals/features/membership/members/routes"
	paymentRoutes "jaaliya_backend/internals/features/payment/gateway/routes"
	requestRoutes "jaaliya_backend/internals/features/requests/routes"
	authMiddleware "jaaliya_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== PUBLIC =====================
	// JWT optional: anonymous users still get quotes (at the full rate).
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public", authMiddleware.OptionalAuthMiddleware())
	requestRoutes.ServiceRequestPublicRoutes(public, db)

	// Stripe webhook + client boot config live outside the groups: the
	// webhook authenticates with its signature, not a bearer token.
	paymentRoutes.PaymentPublicRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())

	applicationRoutes.MembershipApplicationUserRoutes(private, db)
	memberRoutes.MemberUserRoutes(private, db)
	requestRoutes.ServiceRequestUserRoutes(private, db)
	eventRoutes.EventRegistrationUserRoutes(private, db)
	paymentRoutes.PaymentUserRoutes(private, db)

	// ===================== STATUS =====================
	app.Get("/api/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "jaaliya_backend/internals/features/payment/gateway/controller"
	"jaaliya_backend/internals/middlewares"
)

// PaymentUserRoutes defines the authenticated payment routes
func PaymentUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	api.Post("/payments/intent", middlewares.PaymentRateLimiter(), ctrl.CreateIntent)
	api.Post("/payments/confirm", ctrl.ConfirmPayment)

	// Redirect continuation (3-D Secure return leg)
	api.Post("/payments/pending", ctrl.SavePendingWrite)
	api.Post("/payments/pending/resume", ctrl.ResumePendingWrite)
}

// PaymentPublicRoutes defines the public payment surface: client boot
// config and the Stripe webhook.
func PaymentPublicRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)
	webhookCtrl := paymentController.NewWebhookController(db)

	app.Get("/api/public/config", ctrl.GetPublicConfig)

	app.Get("/api/payments/stripe/webhook", webhookCtrl.StripeWebhookPing)
	app.Post("/api/payments/stripe/webhook", middlewares.WebhookRateLimiter(), webhookCtrl.HandleStripeWebhook)
}

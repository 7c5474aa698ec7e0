package paymentRoutes

import (
	paymentController "learnhub/controllers/payment"
	"learnhub/middleware"
	paymentValidator "learnhub/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments")

	paymentGroup.Post("/create-intent", paymentValidator.CreateIntent(), middleware.JWTMiddleware, paymentController.CreatePaymentIntent)
	paymentGroup.Post("/verify", paymentValidator.VerifyPayment(), middleware.JWTMiddleware, paymentController.VerifyPayment)
}

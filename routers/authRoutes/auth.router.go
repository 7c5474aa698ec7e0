package authRoutes

import (
	authController "learnhub/controllers/auth"
	"learnhub/middleware"
	authValidator "learnhub/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)

	authGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	authGroup.Put("/profile", authValidator.UpdateProfile(), middleware.JWTMiddleware, authController.UpdateProfile)

	// Admin user management
	adminGroup := app.Group("/admin/users")
	adminGroup.Get("/", middleware.JWTMiddleware, authController.AdminListUsers)
	adminGroup.Get("/:id", middleware.JWTMiddleware, authController.AdminGetUser)
	adminGroup.Post("/:id/block", middleware.JWTMiddleware, authController.AdminBlockUser)
	adminGroup.Post("/:id/unblock", middleware.JWTMiddleware, authController.AdminUnblockUser)
}

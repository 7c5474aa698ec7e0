package badgeRoutes

import (
	badgeController "learnhub/controllers/badge"
	"learnhub/middleware"
	badgeValidator "learnhub/validators/badge"

	"github.com/gofiber/fiber/v2"
)

func SetupBadgeRoutes(app *fiber.App) {
	badgeGroup := app.Group("/badges")

	// Public route
	badgeGroup.Get("/", badgeController.GetBadges)

	// User routes
	badgeGroup.Get("/mine", middleware.JWTMiddleware, badgeController.GetMyBadges)

	// Admin routes
	adminGroup := app.Group("/admin/badges")
	adminGroup.Post("/", badgeValidator.CreateBadge(), middleware.JWTMiddleware, badgeController.AdminCreateBadge)
	adminGroup.Put("/:id", badgeValidator.UpdateBadge(), middleware.JWTMiddleware, badgeController.AdminUpdateBadge)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, badgeController.AdminDeleteBadge)
	adminGroup.Post("/mint", badgeValidator.MintBadge(), middleware.JWTMiddleware, badgeController.AdminMintBadge)
}

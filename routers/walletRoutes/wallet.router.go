package walletRoutes

import (
	walletController "learnhub/controllers/wallet"
	"learnhub/middleware"
	walletValidator "learnhub/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	// User routes
	walletGroup.Get("/balances", middleware.JWTMiddleware, walletController.GetWalletBalances)

	// Public route, used by the buy-tokens page
	app.Get("/token-types", walletController.GetTokenTypes)

	// Admin routes
	adminGroup := walletGroup.Group("/admin")
	adminGroup.Post("/add-tokens", walletValidator.AddTokens(), middleware.JWTMiddleware, walletController.AddTokens)
	adminGroup.Get("/user-balances", middleware.JWTMiddleware, walletController.GetUserBalances)
	adminGroup.Get("/transactions", middleware.JWTMiddleware, walletController.GetTransactions)
	adminGroup.Get("/stats", middleware.JWTMiddleware, walletController.GetGrantStats)

	tokenTypeAdmin := app.Group("/admin/token-types")
	tokenTypeAdmin.Post("/", walletValidator.CreateTokenType(), middleware.JWTMiddleware, walletController.AdminCreateTokenType)
	tokenTypeAdmin.Put("/:id", walletValidator.UpdateTokenType(), middleware.JWTMiddleware, walletController.AdminUpdateTokenType)
	tokenTypeAdmin.Delete("/:id", middleware.JWTMiddleware, walletController.AdminDeleteTokenType)
}

package main

import (
	"log"
	"time"

	"learnhub/config"
	badgeController "learnhub/controllers/badge"
	paymentController "learnhub/controllers/payment"
	"learnhub/database"
	applicationRoutes "learnhub/routers/applicationRoutes"
	authRoutes "learnhub/routers/authRoutes"
	badgeRoutes "learnhub/routers/badgeRoutes"
	contactRoutes "learnhub/routers/contactRoutes"
	courseRoutes "learnhub/routers/courseRoutes"
	paymentRoutes "learnhub/routers/paymentRoutes"
	walletRoutes "learnhub/routers/walletRoutes"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Payment provider client
	paymentController.Init(utils.NewStripeClient(
		config.AppConfig.StripeSecretKey,
		time.Duration(config.AppConfig.ExternalTimeoutS)*time.Second,
	))

	// Badge minter; nil when chain access is not configured
	if config.AppConfig.EthProviderURL != "" && config.AppConfig.AdminPrivateKey != "" {
		minter, err := utils.NewMinter(
			config.AppConfig.EthProviderURL,
			config.AppConfig.AdminPrivateKey,
			config.AppConfig.ChainID,
			utils.RetryPolicy{
				MaxAttempts: config.AppConfig.MintMaxAttempts,
				Backoff:     time.Duration(config.AppConfig.MintBackoffMs) * time.Millisecond,
				FallbackGas: config.AppConfig.MintFallbackGas,
			},
		)
		if err != nil {
			log.Printf("Failed to initialize badge minter: %v", err)
		} else {
			badgeController.Init(minter)
			log.Printf("Badge minter ready, admin wallet %s", minter.AdminAddress())
		}
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	applicationRoutes.SetupApplicationRoutes(app)
	walletRoutes.SetupWalletRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	badgeRoutes.SetupBadgeRoutes(app)
	contactRoutes.SetupContactRoutes(app)

	utils.InitializeReconciler(database.Database.Db)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

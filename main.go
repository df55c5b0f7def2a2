package main

import (
	"log"

	"github.com/iamspiddy/auto-yield-profits-sub001/config"
	"github.com/iamspiddy/auto-yield-profits-sub001/database"
	adminRoutes "github.com/iamspiddy/auto-yield-profits-sub001/routers/adminRoutes"
	authRoutes "github.com/iamspiddy/auto-yield-profits-sub001/routers/authRoutes"
	investmentRoutes "github.com/iamspiddy/auto-yield-profits-sub001/routers/investmentRoutes"
	walletRoutes "github.com/iamspiddy/auto-yield-profits-sub001/routers/walletRoutes"
	"github.com/iamspiddy/auto-yield-profits-sub001/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

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
	walletRoutes.SetupWalletRoutes(app)
	investmentRoutes.SetupInvestmentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Start the compounding/maturity schedulers
	utils.InitializeProfitScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

package investmentRoutes

import (
	investmentController "github.com/iamspiddy/auto-yield-profits-sub001/controllers/investment"
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"
	investmentValidator "github.com/iamspiddy/auto-yield-profits-sub001/validators/investment"

	"github.com/gofiber/fiber/v2"
)

func SetupInvestmentRoutes(app *fiber.App) {
	investmentGroup := app.Group("/investments")

	investmentGroup.Get("/plans", investmentController.GetPlans)
	investmentGroup.Post("/", investmentValidator.CreateInvestment(), middleware.JWTMiddleware, investmentController.CreateInvestment)
	investmentGroup.Get("/", middleware.JWTMiddleware, investmentController.GetUserInvestments)
}

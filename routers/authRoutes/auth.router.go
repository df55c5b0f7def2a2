package authRoutes

import (
	authController "github.com/iamspiddy/auto-yield-profits-sub001/controllers/auth"
	authValidator "github.com/iamspiddy/auto-yield-profits-sub001/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
}

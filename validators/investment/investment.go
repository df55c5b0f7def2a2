package investmentValidator

import (
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateInvestment validates an investment purchase request
func CreateInvestment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PlanID        uint    `json:"planId"`
			Amount        float64 `json:"amount"`
			DurationWeeks int     `json:"durationWeeks"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.PlanID == 0 {
			errors["planId"] = "Plan ID is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.DurationWeeks < 0 {
			errors["durationWeeks"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInvestment", reqData)
		return c.Next()
	}
}

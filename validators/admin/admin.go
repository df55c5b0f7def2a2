package adminValidator

import (
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"

	"github.com/gofiber/fiber/v2"
)

// DepositReview validates a deposit approve/reject request
func DepositReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DepositID uint `json:"depositId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.DepositID == 0 {
			errors["depositId"] = "Deposit ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDepositReview", reqData)
		return c.Next()
	}
}

// WithdrawalReview validates a withdrawal processing request
func WithdrawalReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WithdrawalID uint   `json:"withdrawalId"`
			Action       string `json:"action"`
			Remarks      string `json:"remarks"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.WithdrawalID == 0 {
			errors["withdrawalId"] = "Withdrawal ID is required!"
		}
		if reqData.Action != "approve" && reqData.Action != "reject" {
			errors["action"] = "Action must be approve or reject!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWithdrawalReview", reqData)
		return c.Next()
	}
}

// InvestmentAction validates pause/resume/cancel requests
func InvestmentAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			InvestmentID uint `json:"investmentId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.InvestmentID == 0 {
			errors["investmentId"] = "Investment ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInvestmentAction", reqData)
		return c.Next()
	}
}

// Distribution validates a manual earnings distribution
func Distribution() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint    `json:"userId"`
			Amount float64 `json:"amount"`
			Note   string  `json:"note"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDistribution", reqData)
		return c.Next()
	}
}

// KYCReview validates a KYC approve/reject request
func KYCReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			KycID   uint   `json:"kycId"`
			Action  string `json:"action"`
			Remarks string `json:"remarks"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.KycID == 0 {
			errors["kycId"] = "KYC ID is required!"
		}
		if reqData.Action != "approve" && reqData.Action != "reject" {
			errors["action"] = "Action must be approve or reject!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedKYCReview", reqData)
		return c.Next()
	}
}

// Plan validates a plan creation request
func Plan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name                string  `json:"name"`
			MinimumAmount       float64 `json:"minimumAmount"`
			WeeklyProfitPercent float64 `json:"weeklyProfitPercent"`
			DurationWeeks       int     `json:"durationWeeks"`
			Description         string  `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name == "" {
			errors["name"] = "Plan name is required!"
		}
		if reqData.MinimumAmount <= 0 {
			errors["minimumAmount"] = "Minimum amount must be greater than 0!"
		}
		if reqData.WeeklyProfitPercent <= 0 || reqData.WeeklyProfitPercent > 100 {
			errors["weeklyProfitPercent"] = "Weekly profit percent must be between 0 and 100!"
		}
		if reqData.DurationWeeks < 0 {
			errors["durationWeeks"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPlan", reqData)
		return c.Next()
	}
}

package walletValidator

import (
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"
	"github.com/iamspiddy/auto-yield-profits-sub001/models"

	"github.com/gofiber/fiber/v2"
)

// Deposit validates user deposit request
func Deposit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount   float64 `json:"amount"`
			Method   string  `json:"method"`
			ProofURL string  `json:"proofUrl"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.Method == "" {
			errors["method"] = "Payment method is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDeposit", reqData)
		return c.Next()
	}
}

// Withdrawal validates user withdrawal request
func Withdrawal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount         float64 `json:"amount"`
			WithdrawalType string  `json:"withdrawalType"`
			BankDetailsID  uint    `json:"bankDetailsId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		switch models.WithdrawalType(reqData.WithdrawalType) {
		case models.WithdrawalTypeWallet, models.WithdrawalTypeEarnings:
		default:
			errors["withdrawalType"] = "Withdrawal type must be wallet or earnings!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWithdrawal", reqData)
		return c.Next()
	}
}

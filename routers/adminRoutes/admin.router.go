package adminRoutes

import (
	adminController "github.com/iamspiddy/auto-yield-profits-sub001/controllers/admin"
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"
	adminValidator "github.com/iamspiddy/auto-yield-profits-sub001/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Deposit review
	adminGroup.Get("/deposits", adminController.ListPendingDeposits)
	adminGroup.Post("/deposits/approve", adminValidator.DepositReview(), adminController.ApproveDeposit)
	adminGroup.Post("/deposits/reject", adminValidator.DepositReview(), adminController.RejectDeposit)

	// Withdrawal processing
	adminGroup.Get("/withdrawals", adminController.ListPendingWithdrawals)
	adminGroup.Post("/withdrawals/process", adminValidator.WithdrawalReview(), adminController.ProcessWithdrawal)

	// Investment lifecycle
	adminGroup.Post("/investments/pause", adminValidator.InvestmentAction(), adminController.PauseInvestment)
	adminGroup.Post("/investments/resume", adminValidator.InvestmentAction(), adminController.ResumeInvestment)
	adminGroup.Post("/investments/cancel", adminValidator.InvestmentAction(), adminController.CancelInvestment)

	// Earnings and KYC
	adminGroup.Post("/earnings/distribute", adminValidator.Distribution(), adminController.DistributeEarnings)
	adminGroup.Post("/kyc/review", adminValidator.KYCReview(), adminController.ReviewKYC)

	// Plan catalog
	adminGroup.Post("/plans", adminValidator.Plan(), adminController.CreatePlan)

	// Manual engine triggers
	adminGroup.Post("/engine/run-compounding", adminController.RunCompounding)
	adminGroup.Post("/engine/run-maturity-workflow", adminController.RunMaturityWorkflow)
}

package walletRoutes

import (
	walletController "github.com/iamspiddy/auto-yield-profits-sub001/controllers/wallet"
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"
	walletValidator "github.com/iamspiddy/auto-yield-profits-sub001/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	walletGroup.Get("/balance", middleware.JWTMiddleware, walletController.GetBalanceSummary)
	walletGroup.Post("/deposit", walletValidator.Deposit(), middleware.JWTMiddleware, walletController.RequestDeposit)
	walletGroup.Post("/withdraw", walletValidator.Withdrawal(), middleware.JWTMiddleware, walletController.RequestWithdrawal)
	walletGroup.Get("/history", middleware.JWTMiddleware, walletController.GetTransactionHistory)
	walletGroup.Get("/earnings", middleware.JWTMiddleware, walletController.GetEarnings)
}

package walletController

import (
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/database"
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"
	"github.com/iamspiddy/auto-yield-profits-sub001/models"
	"github.com/iamspiddy/auto-yield-profits-sub001/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GetBalanceSummary returns the user's reconciled balance summary
func GetBalanceSummary(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	summary, err := utils.GetBalanceSummary(c.Context(), database.Database.Db, userId)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch balance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance fetched!", summary)
}

// RequestDeposit records a pending deposit for admin review
func RequestDeposit(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedDeposit").(*struct {
		Amount   float64 `json:"amount"`
		Method   string  `json:"method"`
		ProofURL string  `json:"proofUrl"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	amount := decimal.NewFromFloat(reqData.Amount)

	deposit := models.Deposit{
		UserID:   userId,
		Amount:   amount,
		Method:   reqData.Method,
		ProofURL: reqData.ProofURL,
		Status:   models.DepositStatusPending,
	}

	// Start transaction
	tx := db.Begin()

	if err := tx.Create(&deposit).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create deposit request!", nil)
	}

	txn := models.Transaction{
		UserID:          userId,
		Type:            models.TransactionTypeDeposit,
		Amount:          amount,
		Status:          models.TransactionStatusPending,
		Description:     "Deposit via " + reqData.Method,
		ReferenceID:     deposit.ID,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&txn).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Deposit submitted for review!", fiber.Map{
		"depositId": deposit.ID,
		"amount":    amount,
		"status":    deposit.Status,
	})
}

// RequestWithdrawal records a pending withdrawal after checking the funds
// the requested type draws from
func RequestWithdrawal(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedWithdrawal").(*struct {
		Amount         float64 `json:"amount"`
		WithdrawalType string  `json:"withdrawalType"`
		BankDetailsID  uint    `json:"bankDetailsId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	amount := decimal.NewFromFloat(reqData.Amount)
	withdrawalType := models.WithdrawalType(reqData.WithdrawalType)

	summary, err := utils.GetBalanceSummary(c.Context(), db, userId)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify balance!", nil)
	}

	available := summary.AvailableBalance
	if withdrawalType == models.WithdrawalTypeEarnings {
		available = summary.TotalProfitEarned
	}
	if amount.GreaterThan(available) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient balance for withdrawal!", nil)
	}

	withdrawal := models.Withdrawal{
		UserID:         userId,
		Amount:         amount,
		WithdrawalType: withdrawalType,
		BankDetailsID:  reqData.BankDetailsID,
		Status:         models.WithdrawalStatusPending,
	}

	tx := db.Begin()

	if err := tx.Create(&withdrawal).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create withdrawal request!", nil)
	}

	txn := models.Transaction{
		UserID:          userId,
		Type:            models.TransactionTypeWithdrawal,
		Amount:          amount,
		Status:          models.TransactionStatusPending,
		Description:     "Withdrawal (" + reqData.WithdrawalType + ")",
		ReferenceID:     withdrawal.ID,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&txn).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Withdrawal submitted for review!", fiber.Map{
		"withdrawalId": withdrawal.ID,
		"amount":       amount,
		"type":         withdrawal.WithdrawalType,
		"status":       withdrawal.Status,
	})
}

// GetTransactionHistory returns the user's transaction history
func GetTransactionHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	// Parse query params
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	txnType := c.Query("type") // deposit, withdrawal, profit, referral_bonus

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Transaction{}).Where("user_id = ? AND is_deleted = false", userId)

	if txnType != "" {
		query = query.Where("type = ?", txnType)
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	if err := query.
		Order("transaction_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction history fetched!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetEarnings returns the user's earnings history
func GetEarnings(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	source := c.Query("source")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Earning{}).Where("user_id = ?", userId)
	if source != "" {
		query = query.Where("source = ?", source)
	}

	var total int64
	query.Count(&total)

	var earnings []models.Earning
	if err := query.
		Order("earnings_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&earnings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch earnings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Earnings fetched!", fiber.Map{
		"earnings": earnings,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

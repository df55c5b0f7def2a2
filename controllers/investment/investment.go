package investmentController

import (
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/database"
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"
	"github.com/iamspiddy/auto-yield-profits-sub001/models"
	"github.com/iamspiddy/auto-yield-profits-sub001/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetPlans lists active investment plans
func GetPlans(c *fiber.Ctx) error {
	var plans []models.InvestmentPlan
	if err := database.Database.Db.
		Where("is_active = true AND is_deleted = false").
		Order("minimum_amount ASC").
		Find(&plans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plans!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched!", plans)
}

// CreateInvestment buys into a plan from the user's available balance
func CreateInvestment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedInvestment").(*struct {
		PlanID        uint    `json:"planId"`
		Amount        float64 `json:"amount"`
		DurationWeeks int     `json:"durationWeeks"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	amount := decimal.NewFromFloat(reqData.Amount)

	var plan models.InvestmentPlan
	if err := db.Where("id = ? AND is_active = true AND is_deleted = false", reqData.PlanID).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Investment plan not found!", nil)
	}

	if amount.LessThan(plan.MinimumAmount) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Amount is below the plan minimum of "+plan.MinimumAmount.StringFixed(2)+"!", nil)
	}

	// Fixed-duration plans override the requested duration
	duration := plan.DurationWeeks
	if duration == 0 {
		duration = reqData.DurationWeeks
	}
	if duration <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Duration in weeks is required for this plan!", nil)
	}

	summary, err := utils.GetBalanceSummary(c.Context(), db, userId)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify balance!", nil)
	}
	if amount.GreaterThan(summary.AvailableBalance) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient available balance!", nil)
	}

	now := time.Now()
	nextCompound := now.Add(7 * 24 * time.Hour)
	maturity := now.AddDate(0, 0, duration*7)

	investment := models.Investment{
		UserID:            userId,
		PlanID:            plan.ID,
		OrderID:           uuid.NewString(),
		InvestedAmount:    amount,
		CurrentBalance:    amount,
		TotalProfitEarned: decimal.Zero,
		StartDate:         now,
		NextCompoundDate:  &nextCompound,
		DurationWeeks:     duration,
		MaturityDate:      &maturity,
		Status:            models.InvestmentStatusActive,
	}

	// Start transaction
	tx := db.Begin()

	if err := tx.Create(&investment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create investment!", nil)
	}

	// Move the stake from the wallet projection into the invested projection
	if err := utils.IncrementUserBalance(tx, userId, utils.BalanceColumnWallet, amount.Neg()); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to debit wallet!", nil)
	}
	if err := utils.IncrementUserBalance(tx, userId, utils.BalanceColumnInvested, amount); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update invested balance!", nil)
	}

	txn := models.Transaction{
		UserID:          userId,
		Type:            models.TransactionTypeWithdrawal,
		Amount:          amount,
		Status:          models.TransactionStatusCompleted,
		Description:     "Investment in plan " + plan.Name,
		ReferenceID:     investment.ID,
		TransactionDate: now,
	}
	if err := tx.Create(&txn).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Investment created!", fiber.Map{
		"investmentId":     investment.ID,
		"orderId":          investment.OrderID,
		"plan":             plan.Name,
		"amount":           amount,
		"durationWeeks":    duration,
		"nextCompoundDate": nextCompound,
		"maturityDate":     maturity,
	})
}

// GetUserInvestments lists the user's investments
func GetUserInvestments(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	status := c.Query("status")
	db := database.Database.Db

	query := db.Where("user_id = ? AND is_deleted = false", userId)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var investments []models.Investment
	if err := query.Preload("Plan").Order("created_at DESC").Find(&investments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch investments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Investments fetched!", investments)
}

package adminController

import (
	"context"
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/database"
	"github.com/iamspiddy/auto-yield-profits-sub001/middleware"
	"github.com/iamspiddy/auto-yield-profits-sub001/models"
	"github.com/iamspiddy/auto-yield-profits-sub001/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ListPendingDeposits returns deposits awaiting review
func ListPendingDeposits(c *fiber.Ctx) error {
	var deposits []models.Deposit
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = false", models.DepositStatusPending).
		Order("created_at ASC").
		Find(&deposits).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch deposits!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending deposits fetched!", deposits)
}

// ApproveDeposit credits an approved deposit to the user's wallet projection
func ApproveDeposit(c *fiber.Ctx) error {
	adminId := c.Locals("adminId").(uint)

	reqData, ok := c.Locals("validatedDepositReview").(*struct {
		DepositID uint `json:"depositId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var deposit models.Deposit
	if err := db.Where("id = ? AND status = ? AND is_deleted = false",
		reqData.DepositID, models.DepositStatusPending).First(&deposit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending deposit not found!", nil)
	}

	now := time.Now()
	tx := db.Begin()

	if err := tx.Model(&deposit).Updates(map[string]interface{}{
		"status":      models.DepositStatusApproved,
		"approved_by": adminId,
		"approved_at": now,
	}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve deposit!", nil)
	}

	if err := utils.IncrementUserBalance(tx, deposit.UserID, utils.BalanceColumnWallet, deposit.Amount); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to credit wallet!", nil)
	}

	if err := tx.Model(&models.Transaction{}).
		Where("type = ? AND reference_id = ? AND status = ?",
			models.TransactionTypeDeposit, deposit.ID, models.TransactionStatusPending).
		Update("status", models.TransactionStatusCompleted).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update transaction!", nil)
	}

	tx.Commit()

	var user models.User
	if err := db.Select("name, email").First(&user, deposit.UserID).Error; err == nil && user.Email != "" {
		utils.SendDepositApprovedEmail(user.Email, user.Name, deposit.Amount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deposit approved!", fiber.Map{
		"depositId": deposit.ID,
		"userId":    deposit.UserID,
		"amount":    deposit.Amount,
	})
}

// RejectDeposit marks a pending deposit rejected
func RejectDeposit(c *fiber.Ctx) error {
	adminId := c.Locals("adminId").(uint)

	reqData, ok := c.Locals("validatedDepositReview").(*struct {
		DepositID uint `json:"depositId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	now := time.Now()

	res := db.Model(&models.Deposit{}).
		Where("id = ? AND status = ? AND is_deleted = false", reqData.DepositID, models.DepositStatusPending).
		Updates(map[string]interface{}{
			"status":      models.DepositStatusRejected,
			"approved_by": adminId,
			"approved_at": now,
		})
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject deposit!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending deposit not found!", nil)
	}

	db.Model(&models.Transaction{}).
		Where("type = ? AND reference_id = ? AND status = ?",
			models.TransactionTypeDeposit, reqData.DepositID, models.TransactionStatusPending).
		Update("status", models.TransactionStatusFailed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deposit rejected!", nil)
}

// ListPendingWithdrawals returns withdrawals awaiting processing
func ListPendingWithdrawals(c *fiber.Ctx) error {
	var withdrawals []models.Withdrawal
	if err := database.Database.Db.
		Where("status IN ? AND is_deleted = false",
			[]models.WithdrawalStatus{models.WithdrawalStatusPending, models.WithdrawalStatusProcessing}).
		Order("created_at ASC").
		Find(&withdrawals).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch withdrawals!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending withdrawals fetched!", withdrawals)
}

// ProcessWithdrawal completes or rejects a pending withdrawal
func ProcessWithdrawal(c *fiber.Ctx) error {
	adminId := c.Locals("adminId").(uint)

	reqData, ok := c.Locals("validatedWithdrawalReview").(*struct {
		WithdrawalID uint   `json:"withdrawalId"`
		Action       string `json:"action"` // approve / reject
		Remarks      string `json:"remarks"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var withdrawal models.Withdrawal
	if err := db.Where("id = ? AND status IN ? AND is_deleted = false", reqData.WithdrawalID,
		[]models.WithdrawalStatus{models.WithdrawalStatusPending, models.WithdrawalStatusProcessing}).
		First(&withdrawal).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending withdrawal not found!", nil)
	}

	now := time.Now()

	if reqData.Action == "reject" {
		if err := db.Model(&withdrawal).Updates(map[string]interface{}{
			"status":       models.WithdrawalStatusRejected,
			"processed_by": adminId,
			"processed_at": now,
			"remarks":      reqData.Remarks,
		}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject withdrawal!", nil)
		}

		db.Model(&models.Transaction{}).
			Where("type = ? AND reference_id = ? AND status = ?",
				models.TransactionTypeWithdrawal, withdrawal.ID, models.TransactionStatusPending).
			Update("status", models.TransactionStatusFailed)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal rejected!", nil)
	}

	tx := db.Begin()

	if err := tx.Model(&withdrawal).Updates(map[string]interface{}{
		"status":       models.WithdrawalStatusCompleted,
		"processed_by": adminId,
		"processed_at": now,
		"remarks":      reqData.Remarks,
	}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete withdrawal!", nil)
	}

	// Debit the projection column the withdrawal type draws from
	column := utils.BalanceColumnWallet
	if withdrawal.WithdrawalType == models.WithdrawalTypeEarnings {
		column = utils.BalanceColumnEarnings
	}
	if err := utils.IncrementUserBalance(tx, withdrawal.UserID, column, withdrawal.Amount.Neg()); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to debit balance!", nil)
	}

	if err := tx.Model(&models.Transaction{}).
		Where("type = ? AND reference_id = ? AND status = ?",
			models.TransactionTypeWithdrawal, withdrawal.ID, models.TransactionStatusPending).
		Update("status", models.TransactionStatusCompleted).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update transaction!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal completed!", fiber.Map{
		"withdrawalId": withdrawal.ID,
		"userId":       withdrawal.UserID,
		"amount":       withdrawal.Amount,
	})
}

// updateInvestmentStatus flips an investment between lifecycle states with a
// guard on the current status, so terminal rows are never reopened
func updateInvestmentStatus(c *fiber.Ctx, from []models.InvestmentStatus, to models.InvestmentStatus, terminal bool) error {
	reqData, ok := c.Locals("validatedInvestmentAction").(*struct {
		InvestmentID uint `json:"investmentId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{"status": to, "updated_at": now}
	if terminal {
		updates["end_date"] = now
	}

	res := database.Database.Db.Model(&models.Investment{}).
		Where("id = ? AND status IN ? AND is_deleted = false", reqData.InvestmentID, from).
		Updates(updates)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update investment!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Investment is not in a state that allows this action!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Investment updated!", fiber.Map{
		"investmentId": reqData.InvestmentID,
		"status":       to,
	})
}

// PauseInvestment suspends compounding for an active investment
func PauseInvestment(c *fiber.Ctx) error {
	return updateInvestmentStatus(c,
		[]models.InvestmentStatus{models.InvestmentStatusActive},
		models.InvestmentStatusPaused, false)
}

// ResumeInvestment reactivates a paused investment
func ResumeInvestment(c *fiber.Ctx) error {
	return updateInvestmentStatus(c,
		[]models.InvestmentStatus{models.InvestmentStatusPaused},
		models.InvestmentStatusActive, false)
}

// CancelInvestment terminates an active or paused investment
func CancelInvestment(c *fiber.Ctx) error {
	return updateInvestmentStatus(c,
		[]models.InvestmentStatus{models.InvestmentStatusActive, models.InvestmentStatusPaused},
		models.InvestmentStatusCancelled, true)
}

// DistributeEarnings credits a manual earning to a user
func DistributeEarnings(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedDistribution").(*struct {
		UserID uint    `json:"userId"`
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	amount := decimal.NewFromFloat(reqData.Amount)
	now := time.Now()

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	tx := db.Begin()

	earning := models.Earning{
		UserID:       reqData.UserID,
		Amount:       amount,
		Currency:     utils.DefaultCurrency(),
		EarningsDate: now,
		Source:       models.EarningSourceAdminDistribution,
	}
	if err := tx.Create(&earning).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record earning!", nil)
	}

	txn := models.Transaction{
		UserID:          reqData.UserID,
		Type:            models.TransactionTypeProfit,
		Amount:          amount,
		Status:          models.TransactionStatusCompleted,
		Description:     "Earnings distribution: " + reqData.Note,
		ReferenceID:     earning.ID,
		TransactionDate: now,
	}
	if err := tx.Create(&txn).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	if err := utils.IncrementUserBalance(tx, reqData.UserID, utils.BalanceColumnEarnings, amount); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to credit earnings!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Earnings distributed!", fiber.Map{
		"userId": reqData.UserID,
		"amount": amount,
	})
}

// ReviewKYC approves or rejects a KYC submission
func ReviewKYC(c *fiber.Ctx) error {
	adminId := c.Locals("adminId").(uint)

	reqData, ok := c.Locals("validatedKYCReview").(*struct {
		KycID   uint   `json:"kycId"`
		Action  string `json:"action"` // approve / reject
		Remarks string `json:"remarks"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	status := models.KYCStatusApproved
	if reqData.Action == "reject" {
		status = models.KYCStatusRejected
	}
	now := time.Now()

	res := database.Database.Db.Model(&models.UserKYC{}).
		Where("id = ? AND status = ? AND is_deleted = false", reqData.KycID, models.KYCStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": adminId,
			"reviewed_at": now,
			"remarks":     reqData.Remarks,
		})
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review KYC!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending KYC submission not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "KYC reviewed!", fiber.Map{
		"kycId":  reqData.KycID,
		"status": status,
	})
}

// CreatePlan adds a new investment plan to the catalog
func CreatePlan(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPlan").(*struct {
		Name                string  `json:"name"`
		MinimumAmount       float64 `json:"minimumAmount"`
		WeeklyProfitPercent float64 `json:"weeklyProfitPercent"`
		DurationWeeks       int     `json:"durationWeeks"`
		Description         string  `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	plan := models.InvestmentPlan{
		Name:                reqData.Name,
		MinimumAmount:       decimal.NewFromFloat(reqData.MinimumAmount),
		WeeklyProfitPercent: decimal.NewFromFloat(reqData.WeeklyProfitPercent),
		DurationWeeks:       reqData.DurationWeeks,
		Description:         reqData.Description,
		IsActive:            true,
	}

	if err := database.Database.Db.Create(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Plan created!", plan)
}

// RunCompounding manually triggers one compounding pass
func RunCompounding(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result := utils.ApplyWeeklyCompounding(ctx, database.Database.Db, time.Now())
	return middleware.JsonResponse(c, fiber.StatusOK, result.Success, "Compounding pass finished.", result)
}

// RunMaturityWorkflow manually triggers the full maturity workflow
func RunMaturityWorkflow(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result := utils.RunMaturityWorkflow(ctx, database.Database.Db, time.Now())
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Maturity workflow finished.", result)
}

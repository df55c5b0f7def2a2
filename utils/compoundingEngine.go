package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/config"
	"github.com/iamspiddy/auto-yield-profits-sub001/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// compoundPeriod is one weekly compounding interval
const compoundPeriod = 7 * 24 * time.Hour

// CompoundingResult aggregates one compounding pass. Errors is the only
// failure channel out of the engine.
type CompoundingResult struct {
	Success            bool            `json:"success"`
	ProcessedCount     int             `json:"processedCount"`
	SkippedCount       int             `json:"skippedCount"`
	TotalProfitApplied decimal.Decimal `json:"totalProfitApplied"`
	Errors             []string        `json:"errors"`
}

// ApplyWeeklyCompounding applies exactly one period of profit to every
// active investment whose next_compound_date has passed. An investment that
// missed several periods still gets a single compound, computed on its
// current balance; next_compound_date is rebased to now + 7d, so the schedule
// drifts when the job runs late.
//
// Only the primary investment update can fail an item. The audit, earnings
// and history appends are best-effort after it succeeds.
func ApplyWeeklyCompounding(ctx context.Context, db *gorm.DB, now time.Time) CompoundingResult {
	result := CompoundingResult{
		Success:            true,
		TotalProfitApplied: decimal.Zero,
		Errors:             []string{},
	}

	var due []models.Investment
	if err := db.WithContext(ctx).
		Where("status = ? AND next_compound_date IS NOT NULL AND next_compound_date <= ? AND is_deleted = false",
			models.InvestmentStatusActive, now).
		Preload("Plan").
		Find(&due).Error; err != nil {
		result.Success = false
		result.Errors = append(result.Errors, "failed to fetch due investments: "+err.Error())
		return result
	}

	log.Printf("[COMPOUNDING] Found %d investments due for compounding", len(due))

	for i := range due {
		inv := &due[i]

		if ctx.Err() != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("batch deadline exceeded, %d investments left unprocessed", len(due)-i))
			break
		}

		profit, applied, err := compoundOnce(db, inv, now)
		if err != nil {
			log.Printf("[COMPOUNDING] Error compounding investment %d: %v", inv.ID, err)
			result.Errors = append(result.Errors, fmt.Sprintf("investment %d: %v", inv.ID, err))
			continue
		}
		if !applied {
			// Another run already pushed next_compound_date forward
			log.Printf("[COMPOUNDING] Investment %d already compounded by a concurrent run, skipping", inv.ID)
			result.SkippedCount++
			continue
		}

		result.ProcessedCount++
		result.TotalProfitApplied = result.TotalProfitApplied.Add(profit)
	}

	log.Printf("[COMPOUNDING] Pass complete: processed=%d skipped=%d profit=%s errors=%d",
		result.ProcessedCount, result.SkippedCount, result.TotalProfitApplied.String(), len(result.Errors))
	return result
}

// compoundOnce applies one period of profit to a single investment. Returns
// applied=false when the guarded update matched no row, meaning a concurrent
// run got there first.
func compoundOnce(db *gorm.DB, inv *models.Investment, now time.Time) (decimal.Decimal, bool, error) {
	plan := inv.Plan
	if plan.ID == 0 {
		if err := db.First(&plan, inv.PlanID).Error; err != nil {
			return decimal.Zero, false, fmt.Errorf("plan %d not found: %w", inv.PlanID, err)
		}
	}

	profit := inv.CurrentBalance.Mul(plan.WeeklyProfitPercent).Div(decimal.NewFromInt(100))
	newBalance := inv.CurrentBalance.Add(profit)
	newTotalProfit := inv.TotalProfitEarned.Add(profit)
	nextCompound := now.Add(compoundPeriod)

	// Primary update, guarded on the schedule field so two concurrent runs
	// cannot both apply a compound between read and write
	res := db.Model(&models.Investment{}).
		Where("id = ? AND status = ? AND next_compound_date = ?",
			inv.ID, models.InvestmentStatusActive, inv.NextCompoundDate).
		Updates(map[string]interface{}{
			"current_balance":     newBalance,
			"total_profit_earned": newTotalProfit,
			"last_compound_date":  now,
			"next_compound_date":  nextCompound,
			"updated_at":          now,
		})
	if res.Error != nil {
		return decimal.Zero, false, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, false, nil
	}

	// Best-effort appends. The balance update above is authoritative;
	// failures here are logged and never rolled back or retried.
	record := models.CompoundRecord{
		InvestmentID:  inv.ID,
		CompoundDate:  now,
		BalanceBefore: inv.CurrentBalance,
		ProfitAmount:  profit,
		BalanceAfter:  newBalance,
	}
	if err := db.Create(&record).Error; err != nil {
		reportNonFatal("compound record append", inv.ID, err)
	}

	earning := models.Earning{
		UserID:       inv.UserID,
		Amount:       profit,
		Currency:     DefaultCurrency(),
		EarningsDate: now,
		Source:       models.EarningSourceCompounding,
		InvestmentID: inv.ID,
	}
	if err := db.Create(&earning).Error; err != nil {
		reportNonFatal("earning append", inv.ID, err)
	}

	txn := models.Transaction{
		UserID:          inv.UserID,
		Type:            models.TransactionTypeProfit,
		Amount:          profit,
		Status:          models.TransactionStatusCompleted,
		Description:     fmt.Sprintf("Weekly compounding profit on investment %s", inv.OrderID),
		ReferenceID:     inv.ID,
		TransactionDate: now,
	}
	if err := db.Create(&txn).Error; err != nil {
		reportNonFatal("transaction append", inv.ID, err)
	}

	if err := IncrementUserBalance(db, inv.UserID, BalanceColumnEarnings, profit); err != nil {
		reportNonFatal("earnings projection credit", inv.ID, err)
	}

	return profit, true, nil
}

// reportNonFatal is the side channel for secondary write failures. They are
// never surfaced as processing errors.
func reportNonFatal(op string, investmentID uint, err error) {
	log.Printf("[ENGINE] non-fatal: %s failed for investment %d: %v", op, investmentID, err)
}

// DefaultCurrency is the ledger currency every credit row is tagged with
func DefaultCurrency() string {
	if config.AppConfig != nil && config.AppConfig.Currency != "" {
		return config.AppConfig.Currency
	}
	return "USD"
}

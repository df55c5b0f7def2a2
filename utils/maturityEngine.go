package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaturityFlagResult reports one flagging pass (Phase A)
type MaturityFlagResult struct {
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// MaturityPayoutResult reports one payout pass (Phase B)
type MaturityPayoutResult struct {
	Processed   int             `json:"processed"`
	TotalPayout decimal.Decimal `json:"totalPayout"`
	Errors      []string        `json:"errors"`
}

// MaturityWorkflowResult aggregates the full scheduled workflow
type MaturityWorkflowResult struct {
	StatusUpdated        int             `json:"statusUpdated"`
	InvestmentsProcessed int             `json:"investmentsProcessed"`
	TotalPayout          decimal.Decimal `json:"totalPayout"`
	CompoundingProcessed int             `json:"compoundingProcessed"`
	Errors               []string        `json:"errors"`
}

// UpdateMaturityStatus flags active investments whose maturity date has
// passed. Pure status flip, never touches balances. Idempotent: already
// flagged rows are excluded by the filter itself.
func UpdateMaturityStatus(ctx context.Context, db *gorm.DB, now time.Time) MaturityFlagResult {
	result := MaturityFlagResult{Errors: []string{}}

	res := db.WithContext(ctx).Model(&models.Investment{}).
		Where("status = ? AND is_matured = ? AND maturity_date IS NOT NULL AND maturity_date <= ? AND is_deleted = false",
			models.InvestmentStatusActive, false, now).
		Updates(map[string]interface{}{"is_matured": true, "updated_at": now})

	if res.Error != nil {
		result.Errors = append(result.Errors, "failed to flag matured investments: "+res.Error.Error())
		return result
	}

	result.Updated = int(res.RowsAffected)
	if result.Updated > 0 {
		log.Printf("[MATURITY] Flagged %d investments as matured", result.Updated)
	}
	return result
}

// ProcessMaturedInvestments converts flagged, still-active investments into
// completed ones and releases their full compounded value to the user's
// payable balance. CurrentBalance is left untouched as the historical record
// of the final value.
func ProcessMaturedInvestments(ctx context.Context, db *gorm.DB, now time.Time) MaturityPayoutResult {
	result := MaturityPayoutResult{TotalPayout: decimal.Zero, Errors: []string{}}

	var matured []models.Investment
	if err := db.WithContext(ctx).
		Where("status = ? AND is_matured = ? AND is_deleted = false", models.InvestmentStatusActive, true).
		Find(&matured).Error; err != nil {
		result.Errors = append(result.Errors, "failed to fetch matured investments: "+err.Error())
		return result
	}

	log.Printf("[MATURITY] Found %d matured investments ready for payout", len(matured))

	for i := range matured {
		inv := &matured[i]

		if ctx.Err() != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("batch deadline exceeded, %d investments left unprocessed", len(matured)-i))
			break
		}

		payout, paid, err := payoutOne(db, inv, now)
		if err != nil {
			log.Printf("[MATURITY] Error processing investment %d: %v", inv.ID, err)
			result.Errors = append(result.Errors, fmt.Sprintf("investment %d: %v", inv.ID, err))
			continue
		}
		if !paid {
			log.Printf("[MATURITY] Investment %d no longer active, skipping payout", inv.ID)
			continue
		}

		result.Processed++
		result.TotalPayout = result.TotalPayout.Add(payout)
	}

	log.Printf("[MATURITY] Payout pass complete: processed=%d payout=%s errors=%d",
		result.Processed, result.TotalPayout.String(), len(result.Errors))
	return result
}

// payoutOne retires a single matured investment. The status transition is the
// primary, guarded write; the earning, transaction, projection credits and
// notification are best-effort after it.
func payoutOne(db *gorm.DB, inv *models.Investment, now time.Time) (decimal.Decimal, bool, error) {
	payout := inv.CurrentBalance

	// Guard on current status so completed/cancelled rows can never be
	// paid out twice
	res := db.Model(&models.Investment{}).
		Where("id = ? AND status = ?", inv.ID, models.InvestmentStatusActive).
		Updates(map[string]interface{}{
			"status":     models.InvestmentStatusCompleted,
			"end_date":   now,
			"updated_at": now,
		})
	if res.Error != nil {
		return decimal.Zero, false, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, false, nil
	}

	earning := models.Earning{
		UserID:       inv.UserID,
		Amount:       payout,
		Currency:     DefaultCurrency(),
		EarningsDate: now,
		Source:       models.EarningSourceMaturityPayout,
		InvestmentID: inv.ID,
	}
	if err := db.Create(&earning).Error; err != nil {
		reportNonFatal("maturity earning append", inv.ID, err)
	}

	txn := models.Transaction{
		UserID:          inv.UserID,
		Type:            models.TransactionTypeProfit,
		Amount:          payout,
		Status:          models.TransactionStatusCompleted,
		Description:     fmt.Sprintf("Maturity payout for investment %s", inv.OrderID),
		ReferenceID:     inv.ID,
		TransactionDate: now,
	}
	if err := db.Create(&txn).Error; err != nil {
		reportNonFatal("maturity transaction append", inv.ID, err)
	}

	// Keep the cached projection in step: principal plus profit moves from
	// invested to wallet
	if err := IncrementUserBalance(db, inv.UserID, BalanceColumnWallet, payout); err != nil {
		reportNonFatal("wallet projection credit", inv.ID, err)
	}
	if err := IncrementUserBalance(db, inv.UserID, BalanceColumnInvested, inv.InvestedAmount.Neg()); err != nil {
		reportNonFatal("invested projection debit", inv.ID, err)
	}
	if err := IncrementUserBalance(db, inv.UserID, BalanceColumnEarnings, payout); err != nil {
		reportNonFatal("earnings projection credit", inv.ID, err)
	}

	notifyMaturityPayout(db, inv, payout)

	return payout, true, nil
}

// notifyMaturityPayout emails the investor about the released funds
func notifyMaturityPayout(db *gorm.DB, inv *models.Investment, payout decimal.Decimal) {
	var user models.User
	if err := db.Select("name, email").First(&user, inv.UserID).Error; err != nil {
		log.Printf("[MATURITY] Error fetching user %d for notification: %v", inv.UserID, err)
		return
	}
	if user.Email == "" {
		return
	}
	SendInvestmentMaturedEmail(user.Email, user.Name, inv.OrderID, payout)
}

// RunMaturityWorkflow is the unit a scheduler invokes: flagging, then payout,
// then a compounding pass. A failure inside any phase is captured into the
// aggregated error list; the workflow itself never panics out.
func RunMaturityWorkflow(ctx context.Context, db *gorm.DB, now time.Time) MaturityWorkflowResult {
	result := MaturityWorkflowResult{TotalPayout: decimal.Zero, Errors: []string{}}

	runPhase("maturity flagging", &result.Errors, func() {
		flag := UpdateMaturityStatus(ctx, db, now)
		result.StatusUpdated = flag.Updated
		result.Errors = append(result.Errors, flag.Errors...)
	})

	runPhase("maturity payout", &result.Errors, func() {
		payout := ProcessMaturedInvestments(ctx, db, now)
		result.InvestmentsProcessed = payout.Processed
		result.TotalPayout = payout.TotalPayout
		result.Errors = append(result.Errors, payout.Errors...)
	})

	runPhase("compounding", &result.Errors, func() {
		compounding := ApplyWeeklyCompounding(ctx, db, now)
		result.CompoundingProcessed = compounding.ProcessedCount
		result.Errors = append(result.Errors, compounding.Errors...)
	})

	return result
}

// runPhase shields the workflow from a panicking phase, turning it into a
// single system-level error string
func runPhase(name string, errs *[]string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[MATURITY] %s phase panicked: %v", name, r)
			*errs = append(*errs, fmt.Sprintf("%s phase failed: %v", name, r))
		}
	}()
	fn()
}

package utils

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrConflict marks a write-conflict class failure on the balance read path.
// Only these errors are retried; everything else falls straight through to
// the next tier.
var ErrConflict = errors.New("balance read conflict")

const (
	balanceRetryAttempts  = 3
	balanceRetryBaseDelay = 500 * time.Millisecond
)

// Projection columns on the users table maintained through IncrementUserBalance
const (
	BalanceColumnWallet   = "wallet_balance"
	BalanceColumnInvested = "invested_balance"
	BalanceColumnEarnings = "total_earnings"
)

// BalanceSummary is derived on demand, never persisted
type BalanceSummary struct {
	AvailableBalance       decimal.Decimal `json:"availableBalance"`
	InvestedBalance        decimal.Decimal `json:"investedBalance"`
	TotalBalance           decimal.Decimal `json:"totalBalance"`
	ActiveInvestmentsCount int64           `json:"activeInvestmentsCount"`
	TotalInvested          decimal.Decimal `json:"totalInvested"`
	TotalProfitEarned      decimal.Decimal `json:"totalProfitEarned"`
}

// GetBalanceSummary resolves a user's balances through three tiers:
// the cached projection on the user row, the server-side recompute procedure
// (retried on conflicts), and finally manual ledger summation. It only fails
// when the ledger tables themselves are unreachable.
func GetBalanceSummary(ctx context.Context, db *gorm.DB, userID uint) (BalanceSummary, error) {
	summary, err := projectedSummary(db, userID)
	if err == nil && !projectionStale(summary) {
		return summary, nil
	}
	if err != nil {
		log.Printf("[BALANCE] projected read failed for user %d: %v", userID, err)
	}

	var recomputed BalanceSummary
	rpcErr := retryOnConflict(ctx, balanceRetryAttempts, balanceRetryBaseDelay, func() error {
		var e error
		recomputed, e = recomputeViaProcedure(db, userID)
		return e
	})
	if rpcErr == nil {
		return recomputed, nil
	}
	log.Printf("[BALANCE] recompute procedure failed for user %d, falling back to manual summation: %v", userID, rpcErr)

	return manualSummary(db, userID)
}

// RecomputeBalanceSummary skips the cached projection entirely
func RecomputeBalanceSummary(ctx context.Context, db *gorm.DB, userID uint) (BalanceSummary, error) {
	var recomputed BalanceSummary
	rpcErr := retryOnConflict(ctx, balanceRetryAttempts, balanceRetryBaseDelay, func() error {
		var e error
		recomputed, e = recomputeViaProcedure(db, userID)
		return e
	})
	if rpcErr == nil {
		return recomputed, nil
	}
	return manualSummary(db, userID)
}

// projectionStale treats an all-zero projection as likely stale: a user with
// any ledger history would have non-zero cached columns.
func projectionStale(s BalanceSummary) bool {
	return s.AvailableBalance.IsZero() && s.InvestedBalance.IsZero()
}

// projectedSummary trusts the denormalized balance columns on the user row
func projectedSummary(db *gorm.DB, userID uint) (BalanceSummary, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return BalanceSummary{}, err
	}

	count, totalInvested, err := investmentFigures(db, userID)
	if err != nil {
		return BalanceSummary{}, err
	}

	return BalanceSummary{
		AvailableBalance:       user.WalletBalance,
		InvestedBalance:        user.InvestedBalance,
		TotalBalance:           user.WalletBalance.Add(user.InvestedBalance),
		ActiveInvestmentsCount: count,
		TotalInvested:          totalInvested,
		TotalProfitEarned:      user.TotalEarnings,
	}, nil
}

// recomputeViaProcedure asks the database to re-derive the three balance
// figures from the ledger in one call
func recomputeViaProcedure(db *gorm.DB, userID uint) (BalanceSummary, error) {
	row := db.Raw(
		"SELECT available_balance, invested_balance, total_profit_earned FROM recompute_user_balance(?)",
		userID,
	).Row()

	var available, invested, profit decimal.NullDecimal
	if err := row.Scan(&available, &invested, &profit); err != nil {
		return BalanceSummary{}, err
	}

	count, totalInvested, err := investmentFigures(db, userID)
	if err != nil {
		return BalanceSummary{}, err
	}

	summary := BalanceSummary{
		AvailableBalance:       available.Decimal,
		InvestedBalance:        invested.Decimal,
		ActiveInvestmentsCount: count,
		TotalInvested:          totalInvested,
		TotalProfitEarned:      profit.Decimal,
	}
	summary.TotalBalance = summary.AvailableBalance.Add(summary.InvestedBalance)
	return summary, nil
}

// manualSummary recomputes the balances from first-principles ledger sums:
// available = approved deposits - completed wallet withdrawals,
// invested = invested_amount of active investments,
// profit = earnings - (pending + completed) earnings withdrawals.
func manualSummary(db *gorm.DB, userID uint) (BalanceSummary, error) {
	depositTotal, err := sumDecimal(db.Model(&models.Deposit{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND status = ? AND is_deleted = false", userID, models.DepositStatusApproved))
	if err != nil {
		return BalanceSummary{}, err
	}

	walletWithdrawn, err := sumDecimal(db.Model(&models.Withdrawal{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND withdrawal_type = ? AND status = ? AND is_deleted = false",
			userID, models.WithdrawalTypeWallet, models.WithdrawalStatusCompleted))
	if err != nil {
		return BalanceSummary{}, err
	}

	invested, err := sumDecimal(db.Model(&models.Investment{}).
		Select("COALESCE(SUM(invested_amount), 0)").
		Where("user_id = ? AND status = ? AND is_deleted = false", userID, models.InvestmentStatusActive))
	if err != nil {
		return BalanceSummary{}, err
	}

	earned, err := sumDecimal(db.Model(&models.Earning{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID))
	if err != nil {
		return BalanceSummary{}, err
	}

	earningsWithdrawn, err := sumDecimal(db.Model(&models.Withdrawal{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND withdrawal_type = ? AND status IN ? AND is_deleted = false",
			userID, models.WithdrawalTypeEarnings,
			[]models.WithdrawalStatus{models.WithdrawalStatusPending, models.WithdrawalStatusCompleted}))
	if err != nil {
		return BalanceSummary{}, err
	}

	count, totalInvested, err := investmentFigures(db, userID)
	if err != nil {
		return BalanceSummary{}, err
	}

	summary := BalanceSummary{
		AvailableBalance:       depositTotal.Sub(walletWithdrawn),
		InvestedBalance:        invested,
		ActiveInvestmentsCount: count,
		TotalInvested:          totalInvested,
		TotalProfitEarned:      earned.Sub(earningsWithdrawn),
	}
	summary.TotalBalance = summary.AvailableBalance.Add(summary.InvestedBalance)
	return summary, nil
}

// investmentFigures returns the active investment count and the lifetime
// invested total (cancelled investments excluded)
func investmentFigures(db *gorm.DB, userID uint) (int64, decimal.Decimal, error) {
	var count int64
	if err := db.Model(&models.Investment{}).
		Where("user_id = ? AND status = ? AND is_deleted = false", userID, models.InvestmentStatusActive).
		Count(&count).Error; err != nil {
		return 0, decimal.Zero, err
	}

	totalInvested, err := sumDecimal(db.Model(&models.Investment{}).
		Select("COALESCE(SUM(invested_amount), 0)").
		Where("user_id = ? AND status <> ? AND is_deleted = false", userID, models.InvestmentStatusCancelled))
	if err != nil {
		return 0, decimal.Zero, err
	}
	return count, totalInvested, nil
}

// sumDecimal scans a single aggregate column into a decimal
func sumDecimal(query *gorm.DB) (decimal.Decimal, error) {
	row := query.Row()
	var n decimal.NullDecimal
	if err := row.Scan(&n); err != nil {
		return decimal.Zero, err
	}
	if !n.Valid {
		return decimal.Zero, nil
	}
	return n.Decimal, nil
}

// retryOnConflict runs fn up to attempts times, sleeping with exponential
// backoff between tries. Only conflict-class errors are retried.
func retryOnConflict(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	var err error
	delay := baseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isConflictError(err) || attempt == attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}

// isConflictError reports whether err belongs to the retryable conflict
// class: the ErrConflict sentinel or a PostgreSQL serialization/deadlock code
func isConflictError(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return true
		}
	}
	return false
}

// IncrementUserBalance atomically adjusts one projection column on the user
// row. Used by the approval flows, investment creation and the maturity
// payout; the engines' own row updates go through their guarded UPDATEs.
func IncrementUserBalance(db *gorm.DB, userID uint, column string, delta decimal.Decimal) error {
	res := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

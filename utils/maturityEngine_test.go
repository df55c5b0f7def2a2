package utils

import (
	"context"
	"testing"
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setMaturity(t *testing.T, db *gorm.DB, invID uint, maturity time.Time, matured bool) {
	t.Helper()
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", invID).
		Updates(map[string]interface{}{"maturity_date": maturity, "is_matured": matured}).Error)
}

func TestUpdateMaturityStatusFlagsPastDue(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	due := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(24*time.Hour))
	setMaturity(t, db, due.ID, now.Add(-24*time.Hour), false)

	notDue := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(500), now.Add(24*time.Hour))
	setMaturity(t, db, notDue.ID, now.Add(24*time.Hour), false)

	result := UpdateMaturityStatus(context.Background(), db, now)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)

	flagged := reload(t, db, due.ID)
	assert.True(t, flagged.IsMatured)
	// Flagging never changes the lifecycle status itself
	assert.Equal(t, models.InvestmentStatusActive, flagged.Status)
	assert.False(t, reload(t, db, notDue.ID).IsMatured)

	// Already flagged rows are excluded, so a rerun is a no-op
	again := UpdateMaturityStatus(context.Background(), db, now)
	assert.Equal(t, 0, again.Updated)
}

func TestProcessMaturedInvestmentsPaysOutFullBalance(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(24*time.Hour))
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", inv.ID).
		Updates(map[string]interface{}{
			"current_balance":     decimal.NewFromInt(1100),
			"total_profit_earned": decimal.NewFromInt(100),
			"is_matured":          true,
		}).Error)
	require.NoError(t, IncrementUserBalance(db, user.ID, BalanceColumnInvested, decimal.NewFromInt(1000)))

	result := ProcessMaturedInvestments(context.Background(), db, now)
	assert.Equal(t, 1, result.Processed)
	assert.Empty(t, result.Errors)
	requireDecimalEqual(t, decimal.NewFromInt(1100), result.TotalPayout)

	got := reload(t, db, inv.ID)
	assert.Equal(t, models.InvestmentStatusCompleted, got.Status)
	require.NotNil(t, got.EndDate)
	assert.WithinDuration(t, now, *got.EndDate, time.Second)
	// The final compounded value stays on the row as the historical record
	requireDecimalEqual(t, decimal.NewFromInt(1100), got.CurrentBalance)

	var earning models.Earning
	require.NoError(t, db.Where("user_id = ? AND source = ?", user.ID, models.EarningSourceMaturityPayout).
		First(&earning).Error)
	requireDecimalEqual(t, decimal.NewFromInt(1100), earning.Amount)
	assert.Equal(t, inv.ID, earning.InvestmentID)

	var txn models.Transaction
	require.NoError(t, db.Where("user_id = ? AND reference_id = ?", user.ID, inv.ID).First(&txn).Error)
	assert.Equal(t, models.TransactionTypeProfit, txn.Type)
	requireDecimalEqual(t, decimal.NewFromInt(1100), txn.Amount)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	requireDecimalEqual(t, decimal.NewFromInt(1100), gotUser.WalletBalance)
	requireDecimalEqual(t, decimal.Zero, gotUser.InvestedBalance)
	requireDecimalEqual(t, decimal.NewFromInt(1100), gotUser.TotalEarnings)
}

func TestProcessMaturedInvestmentsNeverPaysTwice(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(24*time.Hour))
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", inv.ID).
		Update("is_matured", true).Error)

	first := ProcessMaturedInvestments(context.Background(), db, now)
	require.Equal(t, 1, first.Processed)

	second := ProcessMaturedInvestments(context.Background(), db, now)
	assert.Equal(t, 0, second.Processed)
	assert.Empty(t, second.Errors)

	var earnings int64
	require.NoError(t, db.Model(&models.Earning{}).
		Where("user_id = ? AND source = ?", user.ID, models.EarningSourceMaturityPayout).
		Count(&earnings).Error)
	assert.EqualValues(t, 1, earnings)
}

func TestProcessMaturedInvestmentsIgnoresUnflagged(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(24*time.Hour))

	result := ProcessMaturedInvestments(context.Background(), db, now)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, models.InvestmentStatusActive, reload(t, db, inv.ID).Status)
}

func TestRunMaturityWorkflowAggregatesPhases(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()

	// Matures this run, not due for compounding
	maturing := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1500), now.Add(24*time.Hour))
	setMaturity(t, db, maturing.ID, now.Add(-time.Hour), false)

	// Due for compounding, nowhere near maturity
	compounding := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(-time.Minute))
	setMaturity(t, db, compounding.ID, now.Add(60*24*time.Hour), false)

	result := RunMaturityWorkflow(context.Background(), db, now)

	assert.Equal(t, 1, result.StatusUpdated)
	assert.Equal(t, 1, result.InvestmentsProcessed)
	requireDecimalEqual(t, decimal.NewFromInt(1500), result.TotalPayout)
	assert.Equal(t, 1, result.CompoundingProcessed)
	assert.Empty(t, result.Errors)

	assert.Equal(t, models.InvestmentStatusCompleted, reload(t, db, maturing.ID).Status)
	requireDecimalEqual(t, decimal.NewFromInt(1100), reload(t, db, compounding.ID).CurrentBalance)
}

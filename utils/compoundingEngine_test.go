package utils

import (
	"context"
	"testing"
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/config"
	"github.com/iamspiddy/auto-yield-profits-sub001/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyWeeklyCompoundingAppliesOnePeriod(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(-time.Minute))

	result := ApplyWeeklyCompounding(context.Background(), db, now)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Empty(t, result.Errors)
	requireDecimalEqual(t, decimal.NewFromInt(100), result.TotalProfitApplied)

	got := reload(t, db, inv.ID)
	requireDecimalEqual(t, decimal.NewFromInt(1100), got.CurrentBalance)
	requireDecimalEqual(t, decimal.NewFromInt(100), got.TotalProfitEarned)
	require.NotNil(t, got.LastCompoundDate)
	require.NotNil(t, got.NextCompoundDate)
	assert.WithinDuration(t, now, *got.LastCompoundDate, time.Second)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), *got.NextCompoundDate, time.Second)

	var record models.CompoundRecord
	require.NoError(t, db.Where("investment_id = ?", inv.ID).First(&record).Error)
	requireDecimalEqual(t, decimal.NewFromInt(1000), record.BalanceBefore)
	requireDecimalEqual(t, decimal.NewFromInt(100), record.ProfitAmount)
	requireDecimalEqual(t, decimal.NewFromInt(1100), record.BalanceAfter)

	var earning models.Earning
	require.NoError(t, db.Where("user_id = ? AND investment_id = ?", user.ID, inv.ID).First(&earning).Error)
	assert.Equal(t, models.EarningSourceCompounding, earning.Source)
	requireDecimalEqual(t, decimal.NewFromInt(100), earning.Amount)

	var txn models.Transaction
	require.NoError(t, db.Where("user_id = ? AND reference_id = ?", user.ID, inv.ID).First(&txn).Error)
	assert.Equal(t, models.TransactionTypeProfit, txn.Type)
	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	requireDecimalEqual(t, decimal.NewFromInt(100), gotUser.TotalEarnings)
}

func TestApplyWeeklyCompoundingIsIdempotentWithinPeriod(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(-time.Minute))

	first := ApplyWeeklyCompounding(context.Background(), db, now)
	require.Equal(t, 1, first.ProcessedCount)

	// next_compound_date moved a week forward, nothing is due anymore
	second := ApplyWeeklyCompounding(context.Background(), db, now)
	assert.True(t, second.Success)
	assert.Equal(t, 0, second.ProcessedCount)
	assert.Empty(t, second.Errors)

	got := reload(t, db, inv.ID)
	requireDecimalEqual(t, decimal.NewFromInt(1100), got.CurrentBalance)

	var records int64
	require.NoError(t, db.Model(&models.CompoundRecord{}).Where("investment_id = ?", inv.ID).Count(&records).Error)
	assert.EqualValues(t, 1, records)
}

func TestApplyWeeklyCompoundingRebasesLateSchedule(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	// Three days overdue: still exactly one compound, schedule rebased to
	// now + 7d rather than catching up period by period
	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(-3*24*time.Hour))

	result := ApplyWeeklyCompounding(context.Background(), db, now)
	require.Equal(t, 1, result.ProcessedCount)
	requireDecimalEqual(t, decimal.NewFromInt(100), result.TotalProfitApplied)

	got := reload(t, db, inv.ID)
	requireDecimalEqual(t, decimal.NewFromInt(1100), got.CurrentBalance)
	require.NotNil(t, got.NextCompoundDate)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), *got.NextCompoundDate, time.Second)
}

func TestApplyWeeklyCompoundingSkipsNotDueAndInactive(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	future := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(24*time.Hour))

	paused := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(500), now.Add(-time.Minute))
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", paused.ID).
		Update("status", models.InvestmentStatusPaused).Error)

	result := ApplyWeeklyCompounding(context.Background(), db, now)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ProcessedCount)
	assert.Empty(t, result.Errors)

	requireDecimalEqual(t, decimal.NewFromInt(1000), reload(t, db, future.ID).CurrentBalance)
	requireDecimalEqual(t, decimal.NewFromInt(500), reload(t, db, paused.ID).CurrentBalance)
}

func TestApplyWeeklyCompoundingIsolatesFailures(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	broken := seedInvestment(t, db, user.ID, 9999, decimal.NewFromInt(1000), now.Add(-time.Minute))
	healthy := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(2000), now.Add(-time.Minute))

	result := ApplyWeeklyCompounding(context.Background(), db, now)

	assert.Equal(t, 1, result.ProcessedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "plan 9999 not found")

	requireDecimalEqual(t, decimal.NewFromInt(1000), reload(t, db, broken.ID).CurrentBalance)
	requireDecimalEqual(t, decimal.NewFromInt(2200), reload(t, db, healthy.ID).CurrentBalance)
}

func TestApplyWeeklyCompoundingHonorsBatchDeadline(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(-time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := ApplyWeeklyCompounding(ctx, db, now)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.ProcessedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "failed to fetch due investments")

	requireDecimalEqual(t, decimal.NewFromInt(1000), reload(t, db, inv.ID).CurrentBalance)
}

func TestApplyWeeklyCompoundingSecondaryWriteFailuresAreNonFatal(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(-time.Minute))

	// With the audit and earnings tables gone every secondary append fails;
	// only the balance update is authoritative, so the pass still succeeds
	require.NoError(t, db.Migrator().DropTable(&models.CompoundRecord{}))
	require.NoError(t, db.Migrator().DropTable(&models.Earning{}))

	result := ApplyWeeklyCompounding(context.Background(), db, now)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Empty(t, result.Errors)
	requireDecimalEqual(t, decimal.NewFromInt(100), result.TotalProfitApplied)

	got := reload(t, db, inv.ID)
	requireDecimalEqual(t, decimal.NewFromInt(1100), got.CurrentBalance)
	require.NotNil(t, got.NextCompoundDate)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), *got.NextCompoundDate, time.Second)

	// The surviving secondary writes still went through
	var txn models.Transaction
	require.NoError(t, db.Where("user_id = ? AND reference_id = ?", user.ID, inv.ID).First(&txn).Error)
	requireDecimalEqual(t, decimal.NewFromInt(100), txn.Amount)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	requireDecimalEqual(t, decimal.NewFromInt(100), gotUser.TotalEarnings)
}

func TestCompoundOnceSkipsStaleSnapshot(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	plan := seedPlan(t, db, "Starter", 10)

	now := time.Now()
	inv := seedInvestment(t, db, user.ID, plan.ID, decimal.NewFromInt(1000), now.Add(-time.Minute))

	first := ApplyWeeklyCompounding(context.Background(), db, now)
	require.Equal(t, 1, first.ProcessedCount)

	// A concurrent run holding the pre-pass snapshot loses the guarded
	// update: next_compound_date no longer matches, so nothing is applied
	profit, applied, err := compoundOnce(db, &inv, now)
	require.NoError(t, err)
	assert.False(t, applied)
	requireDecimalEqual(t, decimal.Zero, profit)

	got := reload(t, db, inv.ID)
	requireDecimalEqual(t, decimal.NewFromInt(1100), got.CurrentBalance)
	requireDecimalEqual(t, decimal.NewFromInt(100), got.TotalProfitEarned)

	var records int64
	require.NoError(t, db.Model(&models.CompoundRecord{}).Where("investment_id = ?", inv.ID).Count(&records).Error)
	assert.EqualValues(t, 1, records)
}

func TestDefaultCurrencyFollowsConfig(t *testing.T) {
	prev := config.AppConfig
	defer func() { config.AppConfig = prev }()

	config.AppConfig = nil
	assert.Equal(t, "USD", DefaultCurrency())

	config.AppConfig = &config.Config{Currency: "EUR"}
	assert.Equal(t, "EUR", DefaultCurrency())
}

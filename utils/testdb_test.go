package utils

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.BankDetails{},
		&models.UserKYC{},
		&models.InvestmentPlan{},
		&models.Investment{},
		&models.CompoundRecord{},
		&models.Earning{},
		&models.Transaction{},
		&models.Deposit{},
		&models.Withdrawal{},
	))
	return db
}

var testUserSeq int

// seedUser creates a user with zeroed projection columns
func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	testUserSeq++
	user := models.User{
		Name:     fmt.Sprintf("Test User %d", testUserSeq),
		Email:    fmt.Sprintf("user%d@example.com", testUserSeq),
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedPlan creates an active plan with the given weekly percentage
func seedPlan(t *testing.T, db *gorm.DB, name string, weeklyPercent int64) models.InvestmentPlan {
	t.Helper()
	plan := models.InvestmentPlan{
		Name:                name,
		MinimumAmount:       decimal.NewFromInt(100),
		WeeklyProfitPercent: decimal.NewFromInt(weeklyPercent),
		DurationWeeks:       12,
		IsActive:            true,
	}
	require.NoError(t, db.Create(&plan).Error)
	return plan
}

// seedInvestment creates an active investment due for compounding at nextCompound
func seedInvestment(t *testing.T, db *gorm.DB, userID, planID uint, balance decimal.Decimal, nextCompound time.Time) models.Investment {
	t.Helper()
	testUserSeq++
	start := nextCompound.Add(-7 * 24 * time.Hour)
	inv := models.Investment{
		UserID:            userID,
		PlanID:            planID,
		OrderID:           fmt.Sprintf("ORD-%d-%d", userID, testUserSeq),
		InvestedAmount:    balance,
		CurrentBalance:    balance,
		TotalProfitEarned: decimal.Zero,
		StartDate:         start,
		NextCompoundDate:  &nextCompound,
		DurationWeeks:     12,
		Status:            models.InvestmentStatusActive,
	}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

// reload fetches the current investment row
func reload(t *testing.T, db *gorm.DB, id uint) models.Investment {
	t.Helper()
	var inv models.Investment
	require.NoError(t, db.First(&inv, id).Error)
	return inv
}

// requireDecimalEqual compares decimals by value, not representation
func requireDecimalEqual(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.Truef(t, expected.Equal(actual), "expected %s, got %s: %v", expected.String(), actual.String(), msgAndArgs)
}

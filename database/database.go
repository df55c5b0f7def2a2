package database

import (
	"fmt"
	"log"
	"os"

	"github.com/iamspiddy/auto-yield-profits-sub001/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
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
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	installBalanceFunction(db)

	log.Println("Migrations completed successfully.")
}

// installBalanceFunction creates the server-side balance recompute procedure
// used by the reconciliation service. Failure is not fatal: the service
// degrades to manual summation when the function is missing.
func installBalanceFunction(db *gorm.DB) {
	const fn = `
CREATE OR REPLACE FUNCTION recompute_user_balance(p_user_id BIGINT)
RETURNS TABLE(available_balance NUMERIC, invested_balance NUMERIC, total_profit_earned NUMERIC) AS $$
BEGIN
	RETURN QUERY SELECT
		COALESCE((SELECT SUM(d.amount) FROM deposits d
			WHERE d.user_id = p_user_id AND d.status = 'approved' AND d.is_deleted = false), 0)
		-
		COALESCE((SELECT SUM(w.amount) FROM withdrawals w
			WHERE w.user_id = p_user_id AND w.withdrawal_type = 'wallet'
			AND w.status = 'completed' AND w.is_deleted = false), 0),
		COALESCE((SELECT SUM(i.invested_amount) FROM investments i
			WHERE i.user_id = p_user_id AND i.status = 'active' AND i.is_deleted = false), 0),
		COALESCE((SELECT SUM(e.amount) FROM earnings e
			WHERE e.user_id = p_user_id), 0)
		-
		COALESCE((SELECT SUM(w.amount) FROM withdrawals w
			WHERE w.user_id = p_user_id AND w.withdrawal_type = 'earnings'
			AND w.status IN ('pending', 'completed') AND w.is_deleted = false), 0);
END;
$$ LANGUAGE plpgsql STABLE;`

	if err := db.Exec(fn).Error; err != nil {
		log.Printf("Warning: failed to install recompute_user_balance: %v", err)
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EarningSource tags where a credit came from
type EarningSource string

const (
	EarningSourceCompounding       EarningSource = "investment_compounding"
	EarningSourceMaturityPayout    EarningSource = "maturity_payout"
	EarningSourceAdminDistribution EarningSource = "admin_distribution"
	EarningSourceReferralBonus     EarningSource = "referral_bonus"
)

// Earning is an immutable credit row. Never updated or deleted.
type Earning struct {
	gorm.Model
	UserID       uint            `gorm:"not null;index" json:"userId"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency     string          `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	EarningsDate time.Time       `gorm:"not null" json:"earningsDate"`
	Source       EarningSource   `gorm:"type:varchar(50);not null;index" json:"source"`
	InvestmentID uint            `gorm:"default:0" json:"investmentId"`
}

func (Earning) TableName() string {
	return "earnings"
}

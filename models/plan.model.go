package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentPlan is a catalog entry users buy into. Read-only to the
// profit engines.
type InvestmentPlan struct {
	gorm.Model
	Name          string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	MinimumAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"minimumAmount"`
	// Whole-number percentage, e.g. 10 means 10% per week
	WeeklyProfitPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"weeklyProfitPercent"`
	// 0 means the duration is chosen by the user at purchase time
	DurationWeeks int    `gorm:"default:0" json:"durationWeeks"`
	Description   string `gorm:"type:text" json:"description"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`
	IsDeleted     bool   `gorm:"default:false" json:"isDeleted"`
}

func (InvestmentPlan) TableName() string {
	return "investment_plans"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompoundRecord is the append-only audit row written once per applied
// compounding period per investment. Never updated or deleted.
type CompoundRecord struct {
	gorm.Model
	InvestmentID  uint            `gorm:"not null;index" json:"investmentId"`
	CompoundDate  time.Time       `gorm:"not null" json:"compoundDate"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balanceBefore"`
	ProfitAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"profitAmount"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balanceAfter"`
}

func (CompoundRecord) TableName() string {
	return "compound_records"
}

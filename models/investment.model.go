package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentStatus defines the lifecycle state of an investment
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusPaused    InvestmentStatus = "paused"
	InvestmentStatusCompleted InvestmentStatus = "completed"
	InvestmentStatusCancelled InvestmentStatus = "cancelled"
)

// Investment is the central mutable entity. Balance growth belongs to the
// compounding engine, the terminal payout to the maturity engine; everything
// else only reads it or flips the status.
type Investment struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"userId"`
	PlanID  uint   `gorm:"not null;index" json:"planId"`
	OrderID string `gorm:"type:varchar(64);uniqueIndex;not null" json:"orderId"`

	InvestedAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"investedAmount"`
	CurrentBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"currentBalance"`
	TotalProfitEarned decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"totalProfitEarned"`

	StartDate        time.Time  `gorm:"not null" json:"startDate"`
	LastCompoundDate *time.Time `json:"lastCompoundDate,omitempty"`
	NextCompoundDate *time.Time `gorm:"index" json:"nextCompoundDate,omitempty"`
	DurationWeeks    int        `gorm:"not null" json:"durationWeeks"`
	MaturityDate     *time.Time `gorm:"index" json:"maturityDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`

	Status InvestmentStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	// IsMatured is independent of Status: an active, matured investment is
	// "ready for payout". It only ever flips false to true.
	IsMatured bool `gorm:"default:false" json:"isMatured"`
	IsDeleted bool `gorm:"default:false" json:"isDeleted"`

	// Relations - omit in JSON by default (only load when needed)
	User User           `gorm:"foreignKey:UserID" json:"-"`
	Plan InvestmentPlan `gorm:"foreignKey:PlanID" json:"-"`
}

func (Investment) TableName() string {
	return "investments"
}

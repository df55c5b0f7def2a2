package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType defines the type of balance-affecting event
type TransactionType string

const (
	TransactionTypeDeposit       TransactionType = "deposit"
	TransactionTypeWithdrawal    TransactionType = "withdrawal"
	TransactionTypeProfit        TransactionType = "profit"
	TransactionTypeReferralBonus TransactionType = "referral_bonus"
)

// TransactionStatus defines the status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction mirrors every balance-affecting event for the user-facing
// history. The engines never use it as a balance source of truth.
type Transaction struct {
	gorm.Model
	UserID      uint              `gorm:"not null;index" json:"userId"`
	Type        TransactionType   `gorm:"type:varchar(30);not null" json:"type"`
	Amount      decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status      TransactionStatus `gorm:"type:varchar(20);default:'completed'" json:"status"`
	Description string            `gorm:"type:text" json:"description"`

	// ReferenceID points at the originating row (deposit, withdrawal or
	// investment id depending on Type)
	ReferenceID uint `gorm:"default:0;index" json:"referenceId"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
	IsDeleted       bool      `gorm:"default:false" json:"isDeleted"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

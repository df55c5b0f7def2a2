package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WithdrawalType distinguishes wallet-principal withdrawals from earnings
// withdrawals; the reconciliation service subtracts each from a different
// ledger sum.
type WithdrawalType string

const (
	WithdrawalTypeWallet   WithdrawalType = "wallet"
	WithdrawalTypeEarnings WithdrawalType = "earnings"
)

// WithdrawalStatus defines the review state of a withdrawal request
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusCompleted  WithdrawalStatus = "completed"
	WithdrawalStatusRejected   WithdrawalStatus = "rejected"
)

// Withdrawal is a user-submitted payout request processed by hand by admins
type Withdrawal struct {
	gorm.Model
	UserID         uint             `gorm:"not null;index" json:"userId"`
	Amount         decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"amount"`
	WithdrawalType WithdrawalType   `gorm:"type:varchar(20);not null" json:"withdrawalType"`
	BankDetailsID  uint             `gorm:"default:0" json:"bankDetailsId"`
	Status         WithdrawalStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ProcessedBy    uint             `gorm:"default:0" json:"processedBy"`
	ProcessedAt    *time.Time       `json:"processedAt,omitempty"`
	Remarks        string           `gorm:"type:text" json:"remarks"`
	IsDeleted      bool             `gorm:"default:false" json:"isDeleted"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

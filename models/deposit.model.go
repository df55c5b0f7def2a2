package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepositStatus defines the review state of a deposit request
type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
	DepositStatusRejected DepositStatus = "rejected"
)

// Deposit is a user-submitted funding request. Approval is a manual admin
// action; the engines only ever read these rows.
type Deposit struct {
	gorm.Model
	UserID     uint            `gorm:"not null;index" json:"userId"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method     string          `gorm:"type:varchar(50)" json:"method"` // bank_transfer, crypto, etc.
	ProofURL   string          `gorm:"type:varchar(255)" json:"proofUrl"`
	Status     DepositStatus   `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ApprovedBy uint            `gorm:"default:0" json:"approvedBy"`
	ApprovedAt *time.Time      `json:"approvedAt,omitempty"`
	IsDeleted  bool            `gorm:"default:false" json:"isDeleted"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Deposit) TableName() string {
	return "deposits"
}

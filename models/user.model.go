package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `gorm:"default:''"`
	Email    string `gorm:"unique;not null"`
	Mobile   string `gorm:"default:''"`
	Role     string `gorm:"default:'USER'"` // USER, ADMIN
	Password string `gorm:"not null"`

	// Cached balance projection. The reconciliation service trusts these
	// columns only while they are non-zero; approval flows and the maturity
	// payout keep them current through the atomic increment helper.
	WalletBalance   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"walletBalance"`
	InvestedBalance decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"investedBalance"`
	TotalEarnings   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"totalEarnings"`

	BankDetails     uint       `gorm:"foreignKey:BankID"`
	UserKYC         uint       `gorm:"foreignKey:KycID"`
	IsEmailVerified bool       `gorm:"default:false"`
	ReferralCode    string     `gorm:"default:''"`
	ReferredBy      uint       `gorm:"default:0"`
	LastLogin       time.Time  `gorm:"default:NULL"`
	IsBlocked       bool       `gorm:"default:false"`
	IsDeleted       bool       `gorm:"default:false"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// KYCStatus defines the review state of a KYC submission
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusApproved KYCStatus = "approved"
	KYCStatusRejected KYCStatus = "rejected"
)

type UserKYC struct {
	gorm.Model
	UserID       uint       `gorm:"not null;index"`
	Country      string     `gorm:"default:''"`
	DocumentType string     `gorm:"type:varchar(50)"` // passport, national_id, drivers_license
	DocumentNo   string     `gorm:"type:varchar(100)"`
	DocumentURL  string     `gorm:"type:varchar(255)"`
	Status       KYCStatus  `gorm:"type:varchar(20);default:'pending'"`
	ReviewedBy   uint       `gorm:"default:0"`
	ReviewedAt   *time.Time `json:"reviewedAt"`
	Remarks      string     `gorm:"type:text"`
	IsDeleted    bool       `gorm:"default:false"`
}

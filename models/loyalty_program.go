package models

import "time"

// LoyaltyProgram is the root of the loyalty ownership chain: every customer and
// reward belongs to exactly one program, and every program to one merchant.
type LoyaltyProgram struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID int64     `gorm:"not null;index" json:"merchant_id"`
	Merchant   Merchant  `gorm:"foreignKey:MerchantID" json:"-"`
	Name       string    `gorm:"not null" json:"name"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

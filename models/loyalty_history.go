package models

import "time"

type LoyaltyHistoryType string

const (
	LoyaltyHistoryRedeemed LoyaltyHistoryType = "redeemed"
	LoyaltyHistoryRefunded LoyaltyHistoryType = "refunded"
	LoyaltyHistoryAdjusted LoyaltyHistoryType = "adjusted"
)

// LoyaltyHistory is an append-only record of every change to a customer's
// current points.
type LoyaltyHistory struct {
	ID                int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	LoyaltyCustomerID int64              `gorm:"not null;index" json:"loyalty_customer_id"`
	Points            int64              `gorm:"not null" json:"points"` // signed delta applied to current_points
	Type              LoyaltyHistoryType `gorm:"not null" json:"type"`
	Description       string             `json:"description"`
	RedemptionID      *int64             `gorm:"index" json:"redemption_id,omitempty"`
	CreatedAt         time.Time          `gorm:"index" json:"created_at"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LoyaltyRedemption struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	LoyaltyCustomerID int64           `gorm:"not null;index" json:"loyalty_customer_id"`
	LoyaltyCustomer   LoyaltyCustomer `gorm:"foreignKey:LoyaltyCustomerID" json:"-"`
	RewardID          int64           `gorm:"not null;index" json:"reward_id"`
	Reward            LoyaltyReward   `gorm:"foreignKey:RewardID" json:"-"`
	OrderID           int64           `gorm:"not null;index" json:"order_id"`
	Order             Order           `gorm:"foreignKey:OrderID" json:"-"`
	RedeemedPoints    int64           `gorm:"not null" json:"redeemed_points"`
	RewardSnapshot    datatypes.JSON  `json:"reward_snapshot"` // reward name and cost at the time of redemption
	RedeemedAt        time.Time       `gorm:"not null;index" json:"redeemed_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (r *LoyaltyRedemption) BeforeCreate(tx *gorm.DB) error {
	if r.RedeemedAt.IsZero() {
		r.RedeemedAt = time.Now().UTC()
	}
	return nil
}

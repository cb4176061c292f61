package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoyaltyCouponStatus string

const (
	LoyaltyCouponStatusActive    LoyaltyCouponStatus = "ACTIVE"
	LoyaltyCouponStatusRedeemed  LoyaltyCouponStatus = "REDEEMED"
	LoyaltyCouponStatusExpired   LoyaltyCouponStatus = "EXPIRED"
	LoyaltyCouponStatusCancelled LoyaltyCouponStatus = "CANCELLED"
)

type LoyaltyCoupon struct {
	ID                int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	LoyaltyCustomerID int64               `gorm:"not null;index" json:"loyalty_customer_id"`
	LoyaltyCustomer   LoyaltyCustomer     `gorm:"foreignKey:LoyaltyCustomerID" json:"-"`
	RewardID          int64               `gorm:"not null;index" json:"reward_id"`
	Reward            LoyaltyReward       `gorm:"foreignKey:RewardID" json:"-"`
	Code              string              `gorm:"uniqueIndex;not null" json:"code"`
	Status            LoyaltyCouponStatus `gorm:"not null;default:ACTIVE;index" json:"status"`
	DiscountValue     decimal.Decimal     `gorm:"type:decimal(20,2);not null" json:"discount_value"`
	ExpiresAt         time.Time           `gorm:"not null" json:"expires_at"`
	RedeemedAt        *time.Time          `json:"redeemed_at"`
	CreatedAt         time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func (c *LoyaltyCoupon) BeforeCreate(tx *gorm.DB) error {
	c.Code = strings.TrimSpace(c.Code)
	if c.Status == "" {
		c.Status = LoyaltyCouponStatusActive
	}
	return nil
}

// CouponTransitions lists the statuses a coupon may move to from each status.
var CouponTransitions = map[LoyaltyCouponStatus][]LoyaltyCouponStatus{
	LoyaltyCouponStatusActive:    {LoyaltyCouponStatusRedeemed, LoyaltyCouponStatusExpired, LoyaltyCouponStatusCancelled},
	LoyaltyCouponStatusExpired:   {LoyaltyCouponStatusActive, LoyaltyCouponStatusCancelled},
	LoyaltyCouponStatusRedeemed:  {},
	LoyaltyCouponStatusCancelled: {},
}

// IsValidCouponStatus reports whether s is a known coupon status.
func IsValidCouponStatus(s LoyaltyCouponStatus) bool {
	_, ok := CouponTransitions[s]
	return ok
}

// IsValidCouponTransition checks if a coupon may move from one status to another.
// Staying in the same status is always allowed.
func IsValidCouponTransition(from, to LoyaltyCouponStatus) bool {
	if from == to {
		return true
	}
	for _, s := range CouponTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

package dtos

import (
	"time"

	"pos-backoffice/models"

	"github.com/shopspring/decimal"
)

type CreateLoyaltyCouponRequest struct {
	LoyaltyCustomerID int64           `json:"loyalty_customer_id" binding:"required,gt=0"`
	RewardID          int64           `json:"reward_id" binding:"required,gt=0"`
	Code              string          `json:"code" binding:"required,max=64"`
	Status            string          `json:"status" binding:"omitempty,oneof=ACTIVE REDEEMED EXPIRED CANCELLED"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	ExpiresAt         time.Time       `json:"expires_at" binding:"required"`
}

// UpdateLoyaltyCouponRequest holds a partial update; nil fields are left unchanged.
type UpdateLoyaltyCouponRequest struct {
	LoyaltyCustomerID *int64           `json:"loyalty_customer_id" binding:"omitempty,gt=0"`
	RewardID          *int64           `json:"reward_id" binding:"omitempty,gt=0"`
	Code              *string          `json:"code" binding:"omitempty,min=1,max=64"`
	Status            *string          `json:"status" binding:"omitempty,oneof=ACTIVE REDEEMED EXPIRED CANCELLED"`
	DiscountValue     *decimal.Decimal `json:"discount_value"`
	ExpiresAt         *time.Time       `json:"expires_at"`
}

type LoyaltyCouponQuery struct {
	PageQuery
	Status            string `form:"status" binding:"omitempty,oneof=ACTIVE REDEEMED EXPIRED CANCELLED"`
	LoyaltyCustomerID int64  `form:"loyalty_customer_id"`
	RewardID          int64  `form:"reward_id"`
	Code              string `form:"code"`
	MinDiscountValue  string `form:"min_discount_value"`
	MaxDiscountValue  string `form:"max_discount_value"`
}

type LoyaltyCouponResponse struct {
	ID                int64                      `json:"id"`
	LoyaltyCustomerID int64                      `json:"loyalty_customer_id"`
	RewardID          int64                      `json:"reward_id"`
	Code              string                     `json:"code"`
	Status            models.LoyaltyCouponStatus `json:"status"`
	DiscountValue     decimal.Decimal            `json:"discount_value"`
	ExpiresAt         time.Time                  `json:"expires_at"`
	RedeemedAt        *time.Time                 `json:"redeemed_at"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
	LoyaltyCustomer   *LoyaltyCustomerSummary    `json:"loyalty_customer,omitempty"`
	Reward            *LoyaltyRewardSummary      `json:"reward,omitempty"`
}

func NewLoyaltyCouponResponse(c models.LoyaltyCoupon) LoyaltyCouponResponse {
	return LoyaltyCouponResponse{
		ID:                c.ID,
		LoyaltyCustomerID: c.LoyaltyCustomerID,
		RewardID:          c.RewardID,
		Code:              c.Code,
		Status:            c.Status,
		DiscountValue:     c.DiscountValue,
		ExpiresAt:         c.ExpiresAt,
		RedeemedAt:        c.RedeemedAt,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		LoyaltyCustomer:   NewLoyaltyCustomerSummary(c.LoyaltyCustomer),
		Reward:            NewLoyaltyRewardSummary(c.Reward),
	}
}

func NewLoyaltyCouponResponses(coupons []models.LoyaltyCoupon) []LoyaltyCouponResponse {
	out := make([]LoyaltyCouponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, NewLoyaltyCouponResponse(c))
	}
	return out
}

package dtos

import (
	"time"

	"pos-backoffice/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type CreateLoyaltyRedemptionRequest struct {
	LoyaltyCustomerID int64 `json:"loyalty_customer_id" binding:"required,gt=0"`
	RewardID          int64 `json:"reward_id" binding:"required,gt=0"`
	OrderID           int64 `json:"order_id" binding:"required,gt=0"`
	// RedeemedPoints defaults to the reward's cost when omitted.
	RedeemedPoints *int64 `json:"redeemed_points" binding:"omitempty,gt=0"`
}

type UpdateLoyaltyRedemptionRequest struct {
	RewardID       *int64     `json:"reward_id" binding:"omitempty,gt=0"`
	OrderID        *int64     `json:"order_id" binding:"omitempty,gt=0"`
	RedeemedPoints *int64     `json:"redeemed_points" binding:"omitempty,gt=0"`
	RedeemedAt     *time.Time `json:"redeemed_at"`
}

type LoyaltyRedemptionQuery struct {
	PageQuery
	LoyaltyCustomerID int64  `form:"loyalty_customer_id"`
	RewardID          int64  `form:"reward_id"`
	OrderID           int64  `form:"order_id"`
	MinRedeemedPoints *int64 `form:"min_redeemed_points"`
	MaxRedeemedPoints *int64 `form:"max_redeemed_points"`
}

type OrderSummary struct {
	ID          int64              `json:"id"`
	OrderNumber string             `json:"order_number"`
	Status      models.OrderStatus `json:"status"`
	Total       decimal.Decimal    `json:"total"`
}

type LoyaltyRedemptionResponse struct {
	ID                int64                   `json:"id"`
	LoyaltyCustomerID int64                   `json:"loyalty_customer_id"`
	RewardID          int64                   `json:"reward_id"`
	OrderID           int64                   `json:"order_id"`
	RedeemedPoints    int64                   `json:"redeemed_points"`
	RewardSnapshot    datatypes.JSON          `json:"reward_snapshot,omitempty"`
	RedeemedAt        time.Time               `json:"redeemed_at"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
	LoyaltyCustomer   *LoyaltyCustomerSummary `json:"loyalty_customer,omitempty"`
	Reward            *LoyaltyRewardSummary   `json:"reward,omitempty"`
	Order             *OrderSummary           `json:"order,omitempty"`
}

func NewOrderSummary(o models.Order) *OrderSummary {
	if o.ID == 0 {
		return nil
	}
	return &OrderSummary{ID: o.ID, OrderNumber: o.OrderNumber, Status: o.Status, Total: o.Total}
}

func NewLoyaltyRedemptionResponse(r models.LoyaltyRedemption) LoyaltyRedemptionResponse {
	return LoyaltyRedemptionResponse{
		ID:                r.ID,
		LoyaltyCustomerID: r.LoyaltyCustomerID,
		RewardID:          r.RewardID,
		OrderID:           r.OrderID,
		RedeemedPoints:    r.RedeemedPoints,
		RewardSnapshot:    r.RewardSnapshot,
		RedeemedAt:        r.RedeemedAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		LoyaltyCustomer:   NewLoyaltyCustomerSummary(r.LoyaltyCustomer),
		Reward:            NewLoyaltyRewardSummary(r.Reward),
		Order:             NewOrderSummary(r.Order),
	}
}

func NewLoyaltyRedemptionResponses(redemptions []models.LoyaltyRedemption) []LoyaltyRedemptionResponse {
	out := make([]LoyaltyRedemptionResponse, 0, len(redemptions))
	for _, r := range redemptions {
		out = append(out, NewLoyaltyRedemptionResponse(r))
	}
	return out
}

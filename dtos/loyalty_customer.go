package dtos

import (
	"time"

	"pos-backoffice/models"
)

type LoyaltyCustomerSummary struct {
	ID               int64  `json:"id"`
	LoyaltyProgramID int64  `json:"loyalty_program_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	CurrentPoints    int64  `json:"current_points"`
	LifetimePoints   int64  `json:"lifetime_points"`
}

type LoyaltyRewardSummary struct {
	ID               int64  `json:"id"`
	LoyaltyProgramID int64  `json:"loyalty_program_id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	CostPoints       int64  `json:"cost_points"`
}

type LoyaltyCustomerResponse struct {
	ID               int64     `json:"id"`
	LoyaltyProgramID int64     `json:"loyalty_program_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	CurrentPoints    int64     `json:"current_points"`
	LifetimePoints   int64     `json:"lifetime_points"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type LoyaltyHistoryResponse struct {
	ID           int64                     `json:"id"`
	Points       int64                     `json:"points"`
	Type         models.LoyaltyHistoryType `json:"type"`
	Description  string                    `json:"description"`
	RedemptionID *int64                    `json:"redemption_id,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
}

func NewLoyaltyCustomerSummary(c models.LoyaltyCustomer) *LoyaltyCustomerSummary {
	if c.ID == 0 {
		return nil
	}
	return &LoyaltyCustomerSummary{
		ID:               c.ID,
		LoyaltyProgramID: c.LoyaltyProgramID,
		Name:             c.Name,
		Email:            c.Email,
		CurrentPoints:    c.CurrentPoints,
		LifetimePoints:   c.LifetimePoints,
	}
}

func NewLoyaltyRewardSummary(r models.LoyaltyReward) *LoyaltyRewardSummary {
	if r.ID == 0 {
		return nil
	}
	return &LoyaltyRewardSummary{
		ID:               r.ID,
		LoyaltyProgramID: r.LoyaltyProgramID,
		Name:             r.Name,
		Description:      r.Description,
		CostPoints:       r.CostPoints,
	}
}

func NewLoyaltyCustomerResponse(c models.LoyaltyCustomer) LoyaltyCustomerResponse {
	return LoyaltyCustomerResponse{
		ID:               c.ID,
		LoyaltyProgramID: c.LoyaltyProgramID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		CurrentPoints:    c.CurrentPoints,
		LifetimePoints:   c.LifetimePoints,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func NewLoyaltyHistoryResponses(entries []models.LoyaltyHistory) []LoyaltyHistoryResponse {
	out := make([]LoyaltyHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LoyaltyHistoryResponse{
			ID:           e.ID,
			Points:       e.Points,
			Type:         e.Type,
			Description:  e.Description,
			RedemptionID: e.RedemptionID,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out
}

package models

import "time"

type LoyaltyReward struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	LoyaltyProgramID int64          `gorm:"not null;index" json:"loyalty_program_id"`
	LoyaltyProgram   LoyaltyProgram `gorm:"foreignKey:LoyaltyProgramID" json:"-"`
	Name             string         `gorm:"not null" json:"name"`
	Description      string         `json:"description"`
	CostPoints       int64          `gorm:"not null" json:"cost_points"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

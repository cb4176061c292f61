package models

import "time"

type LoyaltyCustomer struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	LoyaltyProgramID int64          `gorm:"not null;index" json:"loyalty_program_id"`
	LoyaltyProgram   LoyaltyProgram `gorm:"foreignKey:LoyaltyProgramID" json:"-"`
	Name             string         `json:"name"`
	Email            string         `gorm:"index" json:"email"`
	Phone            string         `json:"phone"`
	CurrentPoints    int64          `gorm:"not null;default:0" json:"current_points"`  // spendable balance, never negative
	LifetimePoints   int64          `gorm:"not null;default:0" json:"lifetime_points"` // cumulative earned, never decremented by spend
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

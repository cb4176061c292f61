package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is owned by the ordering module. The loyalty core only reads it to bind
// redemptions to a ticket of the same merchant.
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID  int64           `gorm:"not null;index" json:"merchant_id"`
	Merchant    Merchant        `gorm:"foreignKey:MerchantID" json:"-"`
	OrderNumber string          `gorm:"uniqueIndex;not null" json:"order_number"`
	Status      OrderStatus     `gorm:"default:open" json:"status"`
	Total       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = fmt.Sprintf("ORD%s%s", time.Now().Format("20060102150405"), strings.ToUpper(uuid.NewString()[:6]))
	}
	return nil
}

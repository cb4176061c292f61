// Package repository is the ledger store behind the loyalty core: one small
// interface per entity plus a scoped transaction helper.
package repository

import (
	"context"
	"errors"
	"fmt"

	"pos-backoffice/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicate           = errors.New("duplicate record")
	ErrInsufficientBalance = errors.New("insufficient points balance")
)

type CustomerRepository interface {
	// FindByID loads the customer together with its program.
	FindByID(ctx context.Context, id int64) (*models.LoyaltyCustomer, error)
	// FindByIDForUpdate loads the customer row and, where the dialect supports
	// it, locks it until the enclosing transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*models.LoyaltyCustomer, error)
	// AdjustPoints adds delta to current_points. It fails with
	// ErrInsufficientBalance instead of letting the balance go negative.
	AdjustPoints(ctx context.Context, id int64, delta int64) error
}

type RewardRepository interface {
	FindByID(ctx context.Context, id int64) (*models.LoyaltyReward, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Order, error)
}

type CouponFilter struct {
	MerchantID        int64
	Status            string
	LoyaltyCustomerID int64
	RewardID          int64
	Code              string
	MinDiscountValue  *decimal.Decimal
	MaxDiscountValue  *decimal.Decimal
	Offset            int
	Limit             int
}

type CouponRepository interface {
	FindScoped(ctx context.Context, id, merchantID int64) (*models.LoyaltyCoupon, error)
	List(ctx context.Context, filter CouponFilter) ([]models.LoyaltyCoupon, int64, error)
	Create(ctx context.Context, coupon *models.LoyaltyCoupon) error
	// Update writes the coupon's columns to an existing row. A missing row is
	// ErrNotFound; the row is never re-inserted.
	Update(ctx context.Context, coupon *models.LoyaltyCoupon) error
	Delete(ctx context.Context, id int64) error
}

type RedemptionFilter struct {
	MerchantID        int64
	LoyaltyCustomerID int64
	RewardID          int64
	OrderID           int64
	MinRedeemedPoints *int64
	MaxRedeemedPoints *int64
	Offset            int
	Limit             int
}

type RedemptionRepository interface {
	FindScoped(ctx context.Context, id, merchantID int64) (*models.LoyaltyRedemption, error)
	List(ctx context.Context, filter RedemptionFilter) ([]models.LoyaltyRedemption, int64, error)
	Create(ctx context.Context, redemption *models.LoyaltyRedemption) error
	Update(ctx context.Context, redemption *models.LoyaltyRedemption) error
	Delete(ctx context.Context, id int64) error
}

type HistoryRepository interface {
	Append(ctx context.Context, entry *models.LoyaltyHistory) error
	ListByCustomer(ctx context.Context, customerID int64, offset, limit int) ([]models.LoyaltyHistory, int64, error)
}

// Ledger groups the repositories that share one connection or transaction.
type Ledger interface {
	Customers() CustomerRepository
	Rewards() RewardRepository
	Orders() OrderRepository
	Coupons() CouponRepository
	Redemptions() RedemptionRepository
	History() HistoryRepository

	// WithTransaction runs fn against a ledger bound to a new transaction. The
	// transaction commits when fn returns nil and rolls back when it returns an
	// error or panics; the handle is released on every path.
	WithTransaction(ctx context.Context, fn func(tx Ledger) error) error
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

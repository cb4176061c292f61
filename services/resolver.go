package services

import (
	"context"
	"errors"

	"pos-backoffice/models"
	"pos-backoffice/repository"
)

// ResolveCustomer loads a customer with its program. A customer owned by
// another merchant is reported as missing.
func ResolveCustomer(ctx context.Context, store repository.Ledger, customerID, merchantID int64) (*models.LoyaltyCustomer, error) {
	customer, err := store.Customers().FindByID(ctx, customerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, dbError(err)
	}
	if customer == nil || customer.LoyaltyProgram.MerchantID != merchantID {
		return nil, notFound("LOYALTY_CUSTOMER_NOT_FOUND", "Loyalty customer not found")
	}
	return customer, nil
}

func ResolveReward(ctx context.Context, store repository.Ledger, rewardID, merchantID int64) (*models.LoyaltyReward, error) {
	reward, err := store.Rewards().FindByID(ctx, rewardID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, dbError(err)
	}
	if reward == nil || reward.LoyaltyProgram.MerchantID != merchantID {
		return nil, notFound("LOYALTY_REWARD_NOT_FOUND", "Loyalty reward not found")
	}
	return reward, nil
}

func ResolveOrder(ctx context.Context, store repository.Ledger, orderID, merchantID int64) (*models.Order, error) {
	order, err := store.Orders().FindByID(ctx, orderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, dbError(err)
	}
	if order == nil || order.MerchantID != merchantID {
		return nil, notFound("ORDER_NOT_FOUND", "Order not found")
	}
	return order, nil
}

func ResolveCoupon(ctx context.Context, store repository.Ledger, id, merchantID int64) (*models.LoyaltyCoupon, error) {
	if id <= 0 {
		return nil, invalidID(id)
	}
	coupon, err := store.Coupons().FindScoped(ctx, id, merchantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("RESOURCE_NOT_FOUND", "Loyalty coupon not found")
		}
		return nil, dbError(err)
	}
	return coupon, nil
}

func ResolveRedemption(ctx context.Context, store repository.Ledger, id, merchantID int64) (*models.LoyaltyRedemption, error) {
	if id <= 0 {
		return nil, invalidID(id)
	}
	redemption, err := store.Redemptions().FindScoped(ctx, id, merchantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("RESOURCE_NOT_FOUND", "Loyalty redemption not found")
		}
		return nil, dbError(err)
	}
	return redemption, nil
}

// EnsureSameProgram fails when the customer and reward belong to different programs.
func EnsureSameProgram(customer *models.LoyaltyCustomer, reward *models.LoyaltyReward) error {
	if customer.LoyaltyProgramID != reward.LoyaltyProgramID {
		return badRequest(ErrProgramMismatch.Code, "Loyalty customer and reward belong to different loyalty programs")
	}
	return nil
}

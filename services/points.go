package services

import (
	"context"
	"errors"

	"pos-backoffice/models"
	"pos-backoffice/repository"
)

// Debit removes amount from the customer's spendable balance in memory.
// Lifetime points are never touched.
func Debit(customer *models.LoyaltyCustomer, amount int64) error {
	if customer.CurrentPoints < amount {
		return insufficientPoints(customer.CurrentPoints, amount)
	}
	customer.CurrentPoints -= amount
	return nil
}

// Credit returns amount to the customer's spendable balance in memory. The
// balance is not capped at lifetime points.
func Credit(customer *models.LoyaltyCustomer, amount int64) {
	customer.CurrentPoints += amount
}

// applyBalance persists delta for the customer and records it in the history.
// It must run inside a transaction so the history row and the balance change
// commit together with the caller's own writes.
func applyBalance(ctx context.Context, tx repository.Ledger, customer *models.LoyaltyCustomer, delta int64, entry models.LoyaltyHistory) error {
	if err := tx.Customers().AdjustPoints(ctx, customer.ID, delta); err != nil {
		return dbError(err)
	}

	entry.LoyaltyCustomerID = customer.ID
	entry.Points = delta
	if err := tx.History().Append(ctx, &entry); err != nil {
		return dbError(err)
	}
	return nil
}

// lockCustomerForUpdate re-reads the customer inside tx so the balance checks
// run against the committed value rather than the pre-transaction read.
func lockCustomerForUpdate(ctx context.Context, tx repository.Ledger, customerID int64) (*models.LoyaltyCustomer, error) {
	customer, err := tx.Customers().FindByIDForUpdate(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("LOYALTY_CUSTOMER_NOT_FOUND", "Loyalty customer not found")
		}
		return nil, dbError(err)
	}
	return customer, nil
}

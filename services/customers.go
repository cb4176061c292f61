package services

import (
	"context"

	"pos-backoffice/dtos"
	"pos-backoffice/repository"
)

// CustomerService exposes read-only balance views. Balances themselves are
// only changed by the redemption flow.
type CustomerService struct {
	store repository.Ledger
}

func NewCustomerService(store repository.Ledger) *CustomerService {
	return &CustomerService{store: store}
}

func (s *CustomerService) FindOne(ctx context.Context, id, merchantID int64) (*dtos.Response, error) {
	if id <= 0 {
		return nil, invalidID(id)
	}
	customer, err := ResolveCustomer(ctx, s.store, id, merchantID)
	if err != nil {
		return nil, err
	}
	return respond(PhaseRetrieved, "Loyalty customer", dtos.NewLoyaltyCustomerResponse(*customer)), nil
}

// History lists the customer's balance changes, newest first.
func (s *CustomerService) History(ctx context.Context, id, merchantID int64, query dtos.PageQuery) (*dtos.PaginatedResponse, error) {
	if id <= 0 {
		return nil, invalidID(id)
	}
	customer, err := ResolveCustomer(ctx, s.store, id, merchantID)
	if err != nil {
		return nil, err
	}

	page, limit, offset := Paginate(query.Page, query.Limit)
	entries, total, err := s.store.History().ListByCustomer(ctx, customer.ID, offset, limit)
	if err != nil {
		return nil, dbError(err)
	}
	return NewPage("Loyalty history retrieved successfully", dtos.NewLoyaltyHistoryResponses(entries), total, page, limit), nil
}

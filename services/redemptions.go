package services

import (
	"context"
	"encoding/json"
	"fmt"

	"pos-backoffice/dtos"
	"pos-backoffice/models"
	"pos-backoffice/repository"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// RedemptionService exchanges customer points for rewards. Every create,
// points update and removal moves the balance in the same transaction as
// the redemption row.
type RedemptionService struct {
	store  repository.Ledger
	locker CustomerLocker
}

func NewRedemptionService(store repository.Ledger, locker CustomerLocker) *RedemptionService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &RedemptionService{store: store, locker: locker}
}

type rewardSnapshot struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CostPoints int64  `json:"cost_points"`
}

func snapshotReward(reward *models.LoyaltyReward) (datatypes.JSON, error) {
	raw, err := json.Marshal(rewardSnapshot{ID: reward.ID, Name: reward.Name, CostPoints: reward.CostPoints})
	if err != nil {
		return nil, fmt.Errorf("encode reward snapshot: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func validateRedeemedPoints(points int64, reward *models.LoyaltyReward) error {
	if points <= 0 {
		return badRequest("INVALID_REDEEMED_POINTS", "Redeemed points must be greater than zero")
	}
	if points < reward.CostPoints {
		return badRequest("INVALID_REDEEMED_POINTS",
			fmt.Sprintf("Redeemed points %d are below the reward cost of %d", points, reward.CostPoints))
	}
	return nil
}

func (s *RedemptionService) Create(ctx context.Context, merchantID int64, req dtos.CreateLoyaltyRedemptionRequest) (*dtos.Response, error) {
	customer, err := ResolveCustomer(ctx, s.store, req.LoyaltyCustomerID, merchantID)
	if err != nil {
		return nil, err
	}
	reward, err := ResolveReward(ctx, s.store, req.RewardID, merchantID)
	if err != nil {
		return nil, err
	}
	order, err := ResolveOrder(ctx, s.store, req.OrderID, merchantID)
	if err != nil {
		return nil, err
	}
	if err := EnsureSameProgram(customer, reward); err != nil {
		return nil, err
	}

	points := reward.CostPoints
	if req.RedeemedPoints != nil {
		points = *req.RedeemedPoints
	}
	if err := validateRedeemedPoints(points, reward); err != nil {
		return nil, err
	}
	if customer.CurrentPoints < points {
		return nil, insufficientPoints(customer.CurrentPoints, points)
	}

	snapshot, err := snapshotReward(reward)
	if err != nil {
		return nil, dbError(err)
	}

	unlock, err := s.locker.Lock(ctx, customer.ID)
	if err != nil {
		return nil, dbError(err)
	}
	defer unlock()

	redemption := &models.LoyaltyRedemption{
		LoyaltyCustomerID: customer.ID,
		RewardID:          reward.ID,
		OrderID:           order.ID,
		RedeemedPoints:    points,
		RewardSnapshot:    snapshot,
	}

	err = s.store.WithTransaction(ctx, func(tx repository.Ledger) error {
		locked, err := lockCustomerForUpdate(ctx, tx, customer.ID)
		if err != nil {
			return err
		}
		if err := Debit(locked, points); err != nil {
			return err
		}
		if err := tx.Redemptions().Create(ctx, redemption); err != nil {
			return dbError(err)
		}
		return applyBalance(ctx, tx, locked, -points, models.LoyaltyHistory{
			Type:         models.LoyaltyHistoryRedeemed,
			Description:  "Redeemed " + reward.Name,
			RedemptionID: &redemption.ID,
		})
	})
	if err != nil {
		return nil, dbError(err)
	}

	log.WithFields(log.Fields{
		"redemption_id": redemption.ID,
		"merchant_id":   merchantID,
		"customer_id":   customer.ID,
		"points":        points,
	}).Info("loyalty reward redeemed")

	return s.FindOne(ctx, redemption.ID, merchantID, PhaseCreated)
}

func (s *RedemptionService) FindAll(ctx context.Context, merchantID int64, query dtos.LoyaltyRedemptionQuery) (*dtos.PaginatedResponse, error) {
	page, limit, offset := Paginate(query.Page, query.Limit)

	redemptions, total, err := s.store.Redemptions().List(ctx, repository.RedemptionFilter{
		MerchantID:        merchantID,
		LoyaltyCustomerID: query.LoyaltyCustomerID,
		RewardID:          query.RewardID,
		OrderID:           query.OrderID,
		MinRedeemedPoints: query.MinRedeemedPoints,
		MaxRedeemedPoints: query.MaxRedeemedPoints,
		Offset:            offset,
		Limit:             limit,
	})
	if err != nil {
		return nil, dbError(err)
	}
	return NewPage("Loyalty redemptions retrieved successfully", dtos.NewLoyaltyRedemptionResponses(redemptions), total, page, limit), nil
}

func (s *RedemptionService) FindOne(ctx context.Context, id, merchantID int64, phase Phase) (*dtos.Response, error) {
	redemption, err := ResolveRedemption(ctx, s.store, id, merchantID)
	if err != nil {
		return nil, err
	}
	return respond(phase, "Loyalty redemption", dtos.NewLoyaltyRedemptionResponse(*redemption)), nil
}

// Update applies a partial change. A new redeemed_points value moves the
// customer balance by the difference and fails if the customer cannot cover
// an increase. The customer lock is held for every update and the redemption
// is re-read inside the transaction, so a concurrent Remove either finishes
// first (Update reports the redemption missing) or waits for Update.
func (s *RedemptionService) Update(ctx context.Context, id, merchantID int64, req dtos.UpdateLoyaltyRedemptionRequest) (*dtos.Response, error) {
	current, err := ResolveRedemption(ctx, s.store, id, merchantID)
	if err != nil {
		return nil, err
	}

	// A redemption never changes customer, so the lock key is stable.
	unlock, err := s.locker.Lock(ctx, current.LoyaltyCustomerID)
	if err != nil {
		return nil, dbError(err)
	}
	defer unlock()

	err = s.store.WithTransaction(ctx, func(tx repository.Ledger) error {
		redemption, err := ResolveRedemption(ctx, tx, id, merchantID)
		if err != nil {
			return err
		}
		delta, err := mergeRedemptionUpdate(ctx, tx, redemption, merchantID, req)
		if err != nil {
			return err
		}

		if delta != 0 {
			locked, err := lockCustomerForUpdate(ctx, tx, redemption.LoyaltyCustomerID)
			if err != nil {
				return err
			}
			if delta > 0 {
				if err := Debit(locked, delta); err != nil {
					return err
				}
			} else {
				Credit(locked, -delta)
			}
			err = applyBalance(ctx, tx, locked, -delta, models.LoyaltyHistory{
				Type:         models.LoyaltyHistoryAdjusted,
				Description:  fmt.Sprintf("Redemption %d adjusted to %d points", redemption.ID, redemption.RedeemedPoints),
				RedemptionID: &redemption.ID,
			})
			if err != nil {
				return err
			}
		}
		return tx.Redemptions().Update(ctx, redemption)
	})
	if err != nil {
		return nil, dbError(err)
	}

	return s.FindOne(ctx, id, merchantID, PhaseUpdated)
}

// mergeRedemptionUpdate applies req to redemption and returns the change in
// redeemed points.
func mergeRedemptionUpdate(ctx context.Context, tx repository.Ledger, redemption *models.LoyaltyRedemption, merchantID int64, req dtos.UpdateLoyaltyRedemptionRequest) (int64, error) {
	reward := &redemption.Reward

	var err error
	if req.RewardID != nil && *req.RewardID != redemption.RewardID {
		if reward, err = ResolveReward(ctx, tx, *req.RewardID, merchantID); err != nil {
			return 0, err
		}
		if err := EnsureSameProgram(&redemption.LoyaltyCustomer, reward); err != nil {
			return 0, err
		}
		snapshot, err := snapshotReward(reward)
		if err != nil {
			return 0, err
		}
		redemption.RewardID = reward.ID
		redemption.Reward = *reward
		redemption.RewardSnapshot = snapshot
	}
	if req.OrderID != nil && *req.OrderID != redemption.OrderID {
		order, err := ResolveOrder(ctx, tx, *req.OrderID, merchantID)
		if err != nil {
			return 0, err
		}
		redemption.OrderID = order.ID
		redemption.Order = *order
	}

	var delta int64
	if req.RedeemedPoints != nil {
		delta = *req.RedeemedPoints - redemption.RedeemedPoints
		redemption.RedeemedPoints = *req.RedeemedPoints
	}
	if err := validateRedeemedPoints(redemption.RedeemedPoints, reward); err != nil {
		return 0, err
	}
	if req.RedeemedAt != nil {
		redemption.RedeemedAt = req.RedeemedAt.UTC()
	}
	return delta, nil
}

// Remove deletes the redemption and refunds its points to the customer. The
// refund uses the points stored on the row read under the customer lock.
func (s *RedemptionService) Remove(ctx context.Context, id, merchantID int64) (*dtos.Response, error) {
	current, err := ResolveRedemption(ctx, s.store, id, merchantID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, current.LoyaltyCustomerID)
	if err != nil {
		return nil, dbError(err)
	}
	defer unlock()

	var redemption *models.LoyaltyRedemption
	err = s.store.WithTransaction(ctx, func(tx repository.Ledger) error {
		var err error
		if redemption, err = ResolveRedemption(ctx, tx, id, merchantID); err != nil {
			return err
		}
		locked, err := lockCustomerForUpdate(ctx, tx, redemption.LoyaltyCustomerID)
		if err != nil {
			return err
		}
		Credit(locked, redemption.RedeemedPoints)
		if err := tx.Redemptions().Delete(ctx, redemption.ID); err != nil {
			return dbError(err)
		}
		return applyBalance(ctx, tx, locked, redemption.RedeemedPoints, models.LoyaltyHistory{
			Type:         models.LoyaltyHistoryRefunded,
			Description:  fmt.Sprintf("Refund for redemption %d", redemption.ID),
			RedemptionID: &redemption.ID,
		})
	})
	if err != nil {
		return nil, dbError(err)
	}

	log.WithFields(log.Fields{
		"redemption_id": redemption.ID,
		"merchant_id":   merchantID,
		"customer_id":   redemption.LoyaltyCustomerID,
		"points":        redemption.RedeemedPoints,
	}).Info("loyalty redemption removed")

	return respond(PhaseDeleted, "Loyalty redemption", dtos.NewLoyaltyRedemptionResponse(*redemption)), nil
}

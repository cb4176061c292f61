package services

import (
	"context"
	"strings"
	"time"

	"pos-backoffice/dtos"
	"pos-backoffice/models"
	"pos-backoffice/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// CouponService issues and maintains coupons. Coupons never move points.
type CouponService struct {
	store repository.Ledger
}

func NewCouponService(store repository.Ledger) *CouponService {
	return &CouponService{store: store}
}

func (s *CouponService) Create(ctx context.Context, merchantID int64, req dtos.CreateLoyaltyCouponRequest) (*dtos.Response, error) {
	customer, err := ResolveCustomer(ctx, s.store, req.LoyaltyCustomerID, merchantID)
	if err != nil {
		return nil, err
	}
	reward, err := ResolveReward(ctx, s.store, req.RewardID, merchantID)
	if err != nil {
		return nil, err
	}
	if err := EnsureSameProgram(customer, reward); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, badRequest("INVALID_COUPON_CODE", "Coupon code is required")
	}
	if req.DiscountValue.IsNegative() {
		return nil, badRequest("INVALID_DISCOUNT_VALUE", "Discount value must not be negative")
	}
	status := models.LoyaltyCouponStatusActive
	if req.Status != "" {
		status = models.LoyaltyCouponStatus(req.Status)
		if !models.IsValidCouponStatus(status) {
			return nil, badRequest("INVALID_COUPON_STATUS", "Invalid coupon status: "+req.Status)
		}
	}

	coupon := &models.LoyaltyCoupon{
		LoyaltyCustomerID: customer.ID,
		RewardID:          reward.ID,
		Code:              code,
		Status:            status,
		DiscountValue:     req.DiscountValue,
		ExpiresAt:         req.ExpiresAt.UTC(),
	}
	if status == models.LoyaltyCouponStatusRedeemed {
		now := time.Now().UTC()
		coupon.RedeemedAt = &now
	}

	err = s.store.WithTransaction(ctx, func(tx repository.Ledger) error {
		return tx.Coupons().Create(ctx, coupon)
	})
	if err != nil {
		return nil, couponWriteError(err)
	}

	log.WithFields(log.Fields{
		"coupon_id":   coupon.ID,
		"merchant_id": merchantID,
		"customer_id": customer.ID,
	}).Info("loyalty coupon created")

	return s.FindOne(ctx, coupon.ID, merchantID, PhaseCreated)
}

func (s *CouponService) FindAll(ctx context.Context, merchantID int64, query dtos.LoyaltyCouponQuery) (*dtos.PaginatedResponse, error) {
	page, limit, offset := Paginate(query.Page, query.Limit)

	filter := repository.CouponFilter{
		MerchantID:        merchantID,
		Status:            query.Status,
		LoyaltyCustomerID: query.LoyaltyCustomerID,
		RewardID:          query.RewardID,
		Code:              query.Code,
		Offset:            offset,
		Limit:             limit,
	}
	var err error
	if filter.MinDiscountValue, err = parseDecimalFilter(query.MinDiscountValue, "min_discount_value"); err != nil {
		return nil, err
	}
	if filter.MaxDiscountValue, err = parseDecimalFilter(query.MaxDiscountValue, "max_discount_value"); err != nil {
		return nil, err
	}

	coupons, total, err := s.store.Coupons().List(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	return NewPage("Loyalty coupons retrieved successfully", dtos.NewLoyaltyCouponResponses(coupons), total, page, limit), nil
}

func (s *CouponService) FindOne(ctx context.Context, id, merchantID int64, phase Phase) (*dtos.Response, error) {
	coupon, err := ResolveCoupon(ctx, s.store, id, merchantID)
	if err != nil {
		return nil, err
	}
	return respond(phase, "Loyalty coupon", dtos.NewLoyaltyCouponResponse(*coupon)), nil
}

// Update merges req onto the coupon. Whenever the customer or reward changes,
// the pair is re-checked for program consistency, including the side that
// was left unchanged. The coupon is read and written in one transaction, so a
// coupon deleted concurrently is reported as missing rather than re-created.
func (s *CouponService) Update(ctx context.Context, id, merchantID int64, req dtos.UpdateLoyaltyCouponRequest) (*dtos.Response, error) {
	if id <= 0 {
		return nil, invalidID(id)
	}

	err := s.store.WithTransaction(ctx, func(tx repository.Ledger) error {
		coupon, err := ResolveCoupon(ctx, tx, id, merchantID)
		if err != nil {
			return err
		}
		if err := mergeCouponUpdate(ctx, tx, coupon, merchantID, req); err != nil {
			return err
		}
		return tx.Coupons().Update(ctx, coupon)
	})
	if err != nil {
		return nil, couponWriteError(err)
	}

	return s.FindOne(ctx, id, merchantID, PhaseUpdated)
}

func mergeCouponUpdate(ctx context.Context, tx repository.Ledger, coupon *models.LoyaltyCoupon, merchantID int64, req dtos.UpdateLoyaltyCouponRequest) error {
	customer := &coupon.LoyaltyCustomer
	reward := &coupon.Reward
	relationChanged := false

	var err error
	if req.LoyaltyCustomerID != nil && *req.LoyaltyCustomerID != coupon.LoyaltyCustomerID {
		if customer, err = ResolveCustomer(ctx, tx, *req.LoyaltyCustomerID, merchantID); err != nil {
			return err
		}
		coupon.LoyaltyCustomerID = customer.ID
		coupon.LoyaltyCustomer = *customer
		relationChanged = true
	}
	if req.RewardID != nil && *req.RewardID != coupon.RewardID {
		if reward, err = ResolveReward(ctx, tx, *req.RewardID, merchantID); err != nil {
			return err
		}
		coupon.RewardID = reward.ID
		coupon.Reward = *reward
		relationChanged = true
	}
	if relationChanged {
		if err := EnsureSameProgram(customer, reward); err != nil {
			return err
		}
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return badRequest("INVALID_COUPON_CODE", "Coupon code is required")
		}
		coupon.Code = code
	}
	if req.DiscountValue != nil {
		if req.DiscountValue.IsNegative() {
			return badRequest("INVALID_DISCOUNT_VALUE", "Discount value must not be negative")
		}
		coupon.DiscountValue = *req.DiscountValue
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt.UTC()
	}
	if req.Status != nil {
		next := models.LoyaltyCouponStatus(*req.Status)
		if !models.IsValidCouponStatus(next) {
			return badRequest("INVALID_COUPON_STATUS", "Invalid coupon status: "+*req.Status)
		}
		if !models.IsValidCouponTransition(coupon.Status, next) {
			return badRequest("INVALID_STATUS_TRANSITION",
				"Cannot change coupon status from "+string(coupon.Status)+" to "+string(next))
		}
		if next == models.LoyaltyCouponStatusRedeemed && coupon.RedeemedAt == nil {
			now := time.Now().UTC()
			coupon.RedeemedAt = &now
		}
		coupon.Status = next
	}
	return nil
}

func (s *CouponService) Remove(ctx context.Context, id, merchantID int64) (*dtos.Response, error) {
	if id <= 0 {
		return nil, invalidID(id)
	}

	var snapshot dtos.LoyaltyCouponResponse
	err := s.store.WithTransaction(ctx, func(tx repository.Ledger) error {
		coupon, err := ResolveCoupon(ctx, tx, id, merchantID)
		if err != nil {
			return err
		}
		snapshot = dtos.NewLoyaltyCouponResponse(*coupon)
		return tx.Coupons().Delete(ctx, coupon.ID)
	})
	if err != nil {
		return nil, dbError(err)
	}

	log.WithFields(log.Fields{"coupon_id": id, "merchant_id": merchantID}).Info("loyalty coupon deleted")
	return respond(PhaseDeleted, "Loyalty coupon", snapshot), nil
}

func couponWriteError(err error) error {
	mapped := dbError(err)
	if e, ok := mapped.(*Error); ok && e.Kind == KindConflict {
		return &Error{Kind: KindConflict, Code: "LOYALTY_COUPON_CODE_EXISTS", Message: "A coupon with this code already exists", Err: err}
	}
	return mapped
}

func parseDecimalFilter(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, badRequest("INVALID_QUERY", "Invalid "+field+": "+raw)
	}
	return &value, nil
}

package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"pos-backoffice/dtos"
	"pos-backoffice/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponCreate(t *testing.T) {
	db, store := newTestStore(t)
	tn := seedTenant(t, db, "Bistro", 100, 10)
	svc := NewCouponService(store)

	resp, err := svc.Create(context.Background(), tn.merchant.ID, couponRequest(tn, "  WELCOME5 "))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Loyalty coupon created successfully", resp.Message)

	data := resp.Data.(dtos.LoyaltyCouponResponse)
	assert.Equal(t, "WELCOME5", data.Code)
	assert.Equal(t, models.LoyaltyCouponStatusActive, data.Status)
	assert.True(t, decimal.RequireFromString("5").Equal(data.DiscountValue))
	assert.Nil(t, data.RedeemedAt)
	require.NotNil(t, data.LoyaltyCustomer)
	assert.Equal(t, tn.customer.ID, data.LoyaltyCustomer.ID)
	require.NotNil(t, data.Reward)
	assert.Equal(t, tn.reward.ID, data.Reward.ID)

	assert.Equal(t, int64(100), reloadCustomer(t, db, tn.customer.ID).CurrentPoints, "coupons never move points")
}

func TestCouponCreateProgramMismatchPersistsNothing(t *testing.T) {
	db, store := newTestStore(t)
	tn := seedTenant(t, db, "Bistro", 100, 10)
	secondProgram := seedProgram(t, db, tn.merchant.ID)
	foreignReward := seedReward(t, db, secondProgram.ID, 10)
	svc := NewCouponService(store)

	req := couponRequest(tn, "MISMATCH")
	req.RewardID = foreignReward.ID
	_, err := svc.Create(context.Background(), tn.merchant.ID, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProgramMismatch))
	assert.Zero(t, countRows(t, db, &models.LoyaltyCoupon{}))
}

func TestCouponCreateNotFoundAcrossMerchants(t *testing.T) {
	db, store := newTestStore(t)
	own := seedTenant(t, db, "Bistro", 100, 10)
	other := seedTenant(t, db, "Elsewhere", 100, 10)
	svc := NewCouponService(store)

	_, err := svc.Create(context.Background(), other.merchant.ID, couponRequest(own, "LEAK"))
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, KindNotFound, svcErr.Kind)
	assert.Equal(t, "LOYALTY_CUSTOMER_NOT_FOUND", svcErr.Code)

	req := couponRequest(own, "LEAK")
	req.RewardID = other.reward.ID
	_, err = svc.Create(context.Background(), own.merchant.ID, req)
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "LOYALTY_REWARD_NOT_FOUND", svcErr.Code)
}

func TestCouponCreateDuplicateCodeIsConflict(t *testing.T) {
	db, store := newTestStore(t)
	tn := seedTenant(t, db, "Bistro", 100, 10)
	svc := NewCouponService(store)

	_, err := svc.Create(context.Background(), tn.merchant.ID, couponRequest(tn, "ONCE"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), tn.merchant.ID, couponRequest(tn, "ONCE"))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, int64(1), countRows(t, db, &models.LoyaltyCoupon{}))
}

func TestCouponCreateRejectsNegativeDiscount(t *testing.T) {
	db, store := newTestStore(t)
	tn := seedTenant(t, db, "Bistro", 100, 10)
	req := couponRequest(tn, "NEG")
	req.DiscountValue = decimal.NewFromInt(-1)

	_, err := NewCouponService(store).Create(context.Background(), tn.merchant.ID, req)
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func createCoupon(t *testing.T, svc *CouponService, tn tenant, code string) dtos.LoyaltyCouponResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), tn.merchant.ID, couponRequest(tn, code))
	require.NoError(t, err)
	return resp.Data.(dtos.LoyaltyCouponResponse)
}

func TestCouponFindOneScopeAndPhase(t *testing.T) {
	db, store := newTestStore(t)
	own := seedTenant(t, db, "Bistro", 100, 10)
	other := seedTenant(t, db, "Elsewhere", 100, 10)
	svc := NewCouponService(store)
	coupon := createCoupon(t, svc, own, "FIND")
	ctx := context.Background()

	resp, err := svc.FindOne(ctx, coupon.ID, own.merchant.ID, PhaseRetrieved)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Loyalty coupon retrieved successfully", resp.Message)

	updated, err := svc.FindOne(ctx, coupon.ID, own.merchant.ID, PhaseUpdated)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, updated.StatusCode)
	assert.Equal(t, resp.Data, updated.Data)

	_, err = svc.FindOne(ctx, coupon.ID, other.merchant.ID, PhaseRetrieved)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, KindNotFound, svcErr.Kind)
	assert.Equal(t, "RESOURCE_NOT_FOUND", svcErr.Code)

	_, err = svc.FindOne(ctx, -4, own.merchant.ID, PhaseRetrieved)
	assert.True(t, errors.Is(err, ErrInvalidID))
}

func TestCouponUpdateRevalidatesProgramOnRewardChange(t *testing.T) {
	db, store := newTestStore(t)
	tn := seedTenant(t, db, "Bistro", 100, 10)
	secondProgram := seedProgram(t, db, tn.merchant.ID)
	foreignReward := seedReward(t, db, secondProgram.ID, 10)
	svc := NewCouponService(store)
	coupon := createCoupon(t, svc, tn, "SWAP")

	_, err := svc.Update(context.Background(), coupon.ID, tn.merchant.ID, dtos.UpdateLoyaltyCouponRequest{RewardID: int64Ptr(foreignReward.ID)})
	assert.True(t, errors.Is(err, ErrProgramMismatch))

	var stored models.LoyaltyCoupon
	require.NoError(t, db.First(&stored, coupon.ID).Error)
	assert.Equal(t, tn.reward.ID, stored.RewardID)
}

func TestCouponUpdateRevalidatesProgramOnCustomerChange(t *testing.T) {
	db, store := newTestStore(t)
	tn := seedTenant(t, db, "Bistro", 100, 10)
	secondProgram := seedProgram(t, db, tn.merchant.ID)
	foreignCustomer := seedCustomer(t, db, secondProgram.ID, 0)
	sameProgramCustomer := seedCustomer(t, db, tn.program.ID, 0)
	svc := NewCouponService(store)
	coupon := createCoupon(t, svc, tn, "MOVE")
	ctx := context.Background()

	_, err := svc.Update(ctx, coupon.ID, tn.merchant.ID, dtos.UpdateLoyaltyCouponRequest{LoyaltyCustomerID: int64Ptr(foreignCustomer.ID)})
	assert.True(t, errors.Is(err, ErrProgramMismatch))

	resp, err := svc.Update(ctx, coupon.ID, tn.merchant.ID, dtos.UpdateLoyaltyCouponRequest{LoyaltyCustomerID: int64Ptr(sameProgramCustomer.ID)})
	require.NoError(t, err)
	assert.Equal(t, sameProgramCustomer.ID, resp.Data.(dtos.LoyaltyCouponResponse).LoyaltyCustomerID)
}

func TestCouponUpdateScalarsAndRedeemedAt(t *testing.T) {
	db, store := newTestStore(t)
	tn := seedTenant(t, db, "Bistro", 100, 10)
	svc := NewCouponService(store)
	coupon := createCoupon(t, svc, tn, "SCALARS")
	ctx := context.Background()

	value := decimal.RequireFromString("12.50")
	resp, err := svc.Update(ctx, coupon.ID, tn.merchant.ID, dtos.UpdateLoyaltyCouponRequest{
		Code:          stringPtr("SCALARS-2"),
		DiscountValue: &value,
		Status:        stringPtr("REDEEMED"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := resp.Data.(dtos.LoyaltyCouponResponse)
	assert.Equal(t, "SCALARS-2", data.Code)
	assert.True(t, value.Equal(data.DiscountValue))
	assert.Equal(t, models.LoyaltyCouponStatusRedeemed, data.Status)
	require.NotNil(t, data.RedeemedAt)

	_, err = svc.Update(ctx, coupon.ID, tn.merchant.ID, dtos.UpdateLoyaltyCouponRequest{Status: stringPtr("ACTIVE")})
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "INVALID_STATUS_TRANSITION", svcErr.Code)
}

func TestCouponUpdateAndRemoveOtherMerchant(t *testing.T) {
	db, store := newTestStore(t)
	own := seedTenant(t, db, "Bistro", 100, 10)
	other := seedTenant(t, db, "Elsewhere", 100, 10)
	svc := NewCouponService(store)
	coupon := createCoupon(t, svc, own, "MINE")
	ctx := context.Background()

	_, err := svc.Update(ctx, coupon.ID, other.merchant.ID, dtos.UpdateLoyaltyCouponRequest{Code: stringPtr("THEIRS")})
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = svc.Remove(ctx, coupon.ID, other.merchant.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int64(1), countRows(t, db, &models.LoyaltyCoupon{}))
}

func TestCouponRemoveReturnsSnapshot(t *testing.T) {
	db, store := newTestStore(t)
	tn := seedTenant(t, db, "Bistro", 100, 10)
	svc := NewCouponService(store)
	coupon := createCoupon(t, svc, tn, "GONE")

	resp, err := svc.Remove(context.Background(), coupon.ID, tn.merchant.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Loyalty coupon deleted successfully", resp.Message)
	assert.Equal(t, "GONE", resp.Data.(dtos.LoyaltyCouponResponse).Code)
	assert.Zero(t, countRows(t, db, &models.LoyaltyCoupon{}))

	_, err = svc.Remove(context.Background(), coupon.ID, tn.merchant.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCouponFindAll(t *testing.T) {
	db, store := newTestStore(t)
	own := seedTenant(t, db, "Bistro", 100, 10)
	other := seedTenant(t, db, "Elsewhere", 100, 10)
	svc := NewCouponService(store)
	for _, code := range []string{"SPRING-A", "SPRING-B", "AUTUMN-A"} {
		createCoupon(t, svc, own, code)
	}
	createCoupon(t, svc, other, "SPRING-X")
	ctx := context.Background()

	all, err := svc.FindAll(ctx, own.merchant.ID, dtos.LoyaltyCouponQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 10, all.Limit)

	spring, err := svc.FindAll(ctx, own.merchant.ID, dtos.LoyaltyCouponQuery{Code: "spring"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), spring.Total)

	paged, err := svc.FindAll(ctx, own.merchant.ID, dtos.LoyaltyCouponQuery{PageQuery: dtos.PageQuery{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, paged.Data.([]dtos.LoyaltyCouponResponse), 1)
	assert.False(t, paged.HasNext)
	assert.True(t, paged.HasPrev)

	none, err := svc.FindAll(ctx, own.merchant.ID, dtos.LoyaltyCouponQuery{MinDiscountValue: "6"})
	require.NoError(t, err)
	assert.Zero(t, none.Total)

	_, err = svc.FindAll(ctx, own.merchant.ID, dtos.LoyaltyCouponQuery{MaxDiscountValue: "lots"})
	assert.True(t, errors.Is(err, ErrBadRequest))

	far, err := svc.FindAll(ctx, own.merchant.ID, dtos.LoyaltyCouponQuery{PageQuery: dtos.PageQuery{Page: math.MaxInt, Limit: 2}})
	require.NoError(t, err)
	assert.Empty(t, far.Data.([]dtos.LoyaltyCouponResponse))
	assert.True(t, far.HasPrev)
}

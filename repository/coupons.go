package repository

import (
	"context"
	"strings"
	"time"

	"pos-backoffice/database"
	"pos-backoffice/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormCoupons struct {
	db *gorm.DB
}

func (r *gormCoupons) FindScoped(ctx context.Context, id, merchantID int64) (*models.LoyaltyCoupon, error) {
	var coupon models.LoyaltyCoupon
	err := r.db.WithContext(ctx).
		Scopes(merchantScope("loyalty_coupons", merchantID)).
		Preload("LoyaltyCustomer.LoyaltyProgram").
		Preload("Reward").
		Where("loyalty_coupons.id = ?", id).
		First(&coupon).Error
	if err != nil {
		return nil, translate(err)
	}
	return &coupon, nil
}

func (r *gormCoupons) List(ctx context.Context, filter CouponFilter) ([]models.LoyaltyCoupon, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LoyaltyCoupon{}).
		Scopes(merchantScope("loyalty_coupons", filter.MerchantID)).
		Joins("JOIN loyalty_rewards ON loyalty_rewards.id = loyalty_coupons.reward_id")

	if filter.Status != "" {
		query = query.Where("loyalty_coupons.status = ?", filter.Status)
	}
	if filter.LoyaltyCustomerID > 0 {
		query = query.Where("loyalty_coupons.loyalty_customer_id = ?", filter.LoyaltyCustomerID)
	}
	if filter.RewardID > 0 {
		query = query.Where("loyalty_coupons.reward_id = ?", filter.RewardID)
	}
	if code := strings.TrimSpace(filter.Code); code != "" {
		query = query.Where(database.CaseInsensitiveLikeExpr(r.db, "loyalty_coupons.code"), database.ContainsPattern(r.db, code))
	}
	if filter.MinDiscountValue != nil {
		query = query.Where("loyalty_coupons.discount_value >= ?", *filter.MinDiscountValue)
	}
	if filter.MaxDiscountValue != nil {
		query = query.Where("loyalty_coupons.discount_value <= ?", *filter.MaxDiscountValue)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var coupons []models.LoyaltyCoupon
	err := query.
		Preload("LoyaltyCustomer").
		Preload("Reward").
		Order("loyalty_coupons.created_at DESC").
		Order("loyalty_coupons.id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&coupons).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return coupons, total, nil
}

func (r *gormCoupons) Create(ctx context.Context, coupon *models.LoyaltyCoupon) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(coupon).Error)
}

func (r *gormCoupons) Update(ctx context.Context, coupon *models.LoyaltyCoupon) error {
	coupon.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.LoyaltyCoupon{}).
		Where("id = ?", coupon.ID).
		Updates(map[string]any{
			"loyalty_customer_id": coupon.LoyaltyCustomerID,
			"reward_id":           coupon.RewardID,
			"code":                coupon.Code,
			"status":              coupon.Status,
			"discount_value":      coupon.DiscountValue,
			"expires_at":          coupon.ExpiresAt,
			"redeemed_at":         coupon.RedeemedAt,
			"updated_at":          coupon.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormCoupons) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.LoyaltyCoupon{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"pos-backoffice/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRedemptions struct {
	db *gorm.DB
}

func (r *gormRedemptions) FindScoped(ctx context.Context, id, merchantID int64) (*models.LoyaltyRedemption, error) {
	var redemption models.LoyaltyRedemption
	err := r.db.WithContext(ctx).
		Scopes(merchantScope("loyalty_redemptions", merchantID)).
		Preload("LoyaltyCustomer.LoyaltyProgram").
		Preload("Reward").
		Preload("Order").
		Where("loyalty_redemptions.id = ?", id).
		First(&redemption).Error
	if err != nil {
		return nil, translate(err)
	}
	return &redemption, nil
}

func (r *gormRedemptions) List(ctx context.Context, filter RedemptionFilter) ([]models.LoyaltyRedemption, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LoyaltyRedemption{}).
		Scopes(merchantScope("loyalty_redemptions", filter.MerchantID))

	if filter.LoyaltyCustomerID > 0 {
		query = query.Where("loyalty_redemptions.loyalty_customer_id = ?", filter.LoyaltyCustomerID)
	}
	if filter.RewardID > 0 {
		query = query.Where("loyalty_redemptions.reward_id = ?", filter.RewardID)
	}
	if filter.OrderID > 0 {
		query = query.Where("loyalty_redemptions.order_id = ?", filter.OrderID)
	}
	if filter.MinRedeemedPoints != nil {
		query = query.Where("loyalty_redemptions.redeemed_points >= ?", *filter.MinRedeemedPoints)
	}
	if filter.MaxRedeemedPoints != nil {
		query = query.Where("loyalty_redemptions.redeemed_points <= ?", *filter.MaxRedeemedPoints)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var redemptions []models.LoyaltyRedemption
	err := query.
		Preload("LoyaltyCustomer").
		Preload("Reward").
		Preload("Order").
		Order("loyalty_redemptions.redeemed_at DESC").
		Order("loyalty_redemptions.id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&redemptions).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return redemptions, total, nil
}

func (r *gormRedemptions) Create(ctx context.Context, redemption *models.LoyaltyRedemption) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(redemption).Error)
}

func (r *gormRedemptions) Update(ctx context.Context, redemption *models.LoyaltyRedemption) error {
	redemption.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.LoyaltyRedemption{}).
		Where("id = ?", redemption.ID).
		Updates(map[string]any{
			"reward_id":       redemption.RewardID,
			"order_id":        redemption.OrderID,
			"redeemed_points": redemption.RedeemedPoints,
			"reward_snapshot": redemption.RewardSnapshot,
			"redeemed_at":     redemption.RedeemedAt,
			"updated_at":      redemption.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRedemptions) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.LoyaltyRedemption{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"pos-backoffice/database"
	"pos-backoffice/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedger implements Ledger on top of a gorm connection or transaction.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Customers() CustomerRepository     { return &gormCustomers{db: l.db} }
func (l *GormLedger) Rewards() RewardRepository         { return &gormRewards{db: l.db} }
func (l *GormLedger) Orders() OrderRepository           { return &gormOrders{db: l.db} }
func (l *GormLedger) Coupons() CouponRepository         { return &gormCoupons{db: l.db} }
func (l *GormLedger) Redemptions() RedemptionRepository { return &gormRedemptions{db: l.db} }
func (l *GormLedger) History() HistoryRepository        { return &gormHistory{db: l.db} }

func (l *GormLedger) WithTransaction(ctx context.Context, fn func(tx Ledger) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormLedger{db: tx})
	})
}

type gormCustomers struct {
	db *gorm.DB
}

func (r *gormCustomers) FindByID(ctx context.Context, id int64) (*models.LoyaltyCustomer, error) {
	var customer models.LoyaltyCustomer
	if err := r.db.WithContext(ctx).Preload("LoyaltyProgram").First(&customer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *gormCustomers) FindByIDForUpdate(ctx context.Context, id int64) (*models.LoyaltyCustomer, error) {
	query := r.db.WithContext(ctx)
	if !database.IsSQLite(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var customer models.LoyaltyCustomer
	if err := query.Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *gormCustomers) AdjustPoints(ctx context.Context, id int64, delta int64) error {
	res := r.db.WithContext(ctx).Model(&models.LoyaltyCustomer{}).
		Where("id = ? AND current_points + ? >= 0", id, delta).
		Updates(map[string]any{
			"current_points": gorm.Expr("current_points + ?", delta),
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

type gormRewards struct {
	db *gorm.DB
}

func (r *gormRewards) FindByID(ctx context.Context, id int64) (*models.LoyaltyReward, error) {
	var reward models.LoyaltyReward
	if err := r.db.WithContext(ctx).Preload("LoyaltyProgram").First(&reward, id).Error; err != nil {
		return nil, translate(err)
	}
	return &reward, nil
}

type gormOrders struct {
	db *gorm.DB
}

func (r *gormOrders) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

type gormHistory struct {
	db *gorm.DB
}

func (r *gormHistory) Append(ctx context.Context, entry *models.LoyaltyHistory) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *gormHistory) ListByCustomer(ctx context.Context, customerID int64, offset, limit int) ([]models.LoyaltyHistory, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LoyaltyHistory{}).
		Where("loyalty_customer_id = ?", customerID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var entries []models.LoyaltyHistory
	if err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, translate(err)
	}
	return entries, total, nil
}

// merchantScope joins a table holding loyalty_customer_id through the
// customer's program so rows can be filtered by merchant.
func merchantScope(table string, merchantID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN loyalty_customers ON loyalty_customers.id = "+table+".loyalty_customer_id").
			Joins("JOIN loyalty_programs ON loyalty_programs.id = loyalty_customers.loyalty_program_id").
			Where("loyalty_programs.merchant_id = ?", merchantID)
	}
}

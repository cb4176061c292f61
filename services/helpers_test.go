package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"pos-backoffice/database"
	"pos-backoffice/dtos"
	"pos-backoffice/models"
	"pos-backoffice/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*gorm.DB, *repository.GormLedger) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db, repository.NewGormLedger(db)
}

func seedMerchant(t *testing.T, db *gorm.DB, name string) models.Merchant {
	t.Helper()
	m := models.Merchant{Name: name, IsActive: true}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func seedProgram(t *testing.T, db *gorm.DB, merchantID int64) models.LoyaltyProgram {
	t.Helper()
	p := models.LoyaltyProgram{MerchantID: merchantID, Name: "Stamps", IsActive: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedCustomer(t *testing.T, db *gorm.DB, programID, points int64) models.LoyaltyCustomer {
	t.Helper()
	c := models.LoyaltyCustomer{
		LoyaltyProgramID: programID,
		Name:             "Grace",
		Email:            "grace@example.com",
		CurrentPoints:    points,
		LifetimePoints:   points,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedReward(t *testing.T, db *gorm.DB, programID, cost int64) models.LoyaltyReward {
	t.Helper()
	r := models.LoyaltyReward{LoyaltyProgramID: programID, Name: "Free dessert", CostPoints: cost, IsActive: true}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedOrder(t *testing.T, db *gorm.DB, merchantID int64) models.Order {
	t.Helper()
	o := models.Order{MerchantID: merchantID, Total: decimal.RequireFromString("42.50")}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func reloadCustomer(t *testing.T, db *gorm.DB, id int64) models.LoyaltyCustomer {
	t.Helper()
	var c models.LoyaltyCustomer
	require.NoError(t, db.First(&c, id).Error)
	return c
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// tenant is one merchant with a program, a customer, a reward and an order.
type tenant struct {
	merchant models.Merchant
	program  models.LoyaltyProgram
	customer models.LoyaltyCustomer
	reward   models.LoyaltyReward
	order    models.Order
}

func seedTenant(t *testing.T, db *gorm.DB, name string, points, cost int64) tenant {
	t.Helper()
	var tn tenant
	tn.merchant = seedMerchant(t, db, name)
	tn.program = seedProgram(t, db, tn.merchant.ID)
	tn.customer = seedCustomer(t, db, tn.program.ID, points)
	tn.reward = seedReward(t, db, tn.program.ID, cost)
	tn.order = seedOrder(t, db, tn.merchant.ID)
	return tn
}

func couponRequest(tn tenant, code string) dtos.CreateLoyaltyCouponRequest {
	return dtos.CreateLoyaltyCouponRequest{
		LoyaltyCustomerID: tn.customer.ID,
		RewardID:          tn.reward.ID,
		Code:              code,
		DiscountValue:     decimal.RequireFromString("5.00"),
		ExpiresAt:         time.Now().Add(72 * time.Hour),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

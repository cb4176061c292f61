package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pos-backoffice/models"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=pos_backoffice port=5432 sslmode=disable"

// Connect opens the ledger store. Postgres URLs and key/value DSNs go through pgx,
// anything that looks like a file path or "file:" URI is opened as SQLite.
func Connect(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = defaultDSN
	}

	switch detectDialect(dsn) {
	case DialectPostgres:
		return openPostgres(dsn)
	default:
		return openSQLite(dsn)
	}
}

// NewGormConfig returns the gorm configuration shared by every connection.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(
			log.StandardLogger(),
			logger.Config{
				SlowThreshold:             500 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
		TranslateError: true,
	}
}

func detectDialect(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case strings.Contains(lower, "host=") || strings.Contains(lower, "dbname=") || strings.Contains(lower, "sslmode="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	sqlDB := stdlib.OpenDB(*cfg)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), NewGormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := ping(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func openSQLite(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(strings.ToLower(dsn), "sqlite://") {
		dsn = "file:" + dsn[len("sqlite://"):]
	}

	db, err := gorm.Open(sqlite.Open(dsn), NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; keep every statement on one connection.
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}
	if err := ping(sqlDB); err != nil {
		return nil, err
	}
	return db, nil
}

func ping(sqlDB *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Merchant{},
		&models.Order{},
		&models.LoyaltyProgram{},
		&models.LoyaltyCustomer{},
		&models.LoyaltyReward{},
		&models.LoyaltyCoupon{},
		&models.LoyaltyRedemption{},
		&models.LoyaltyHistory{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("error closing database connection")
		return
	}
	log.Info("database connection closed")
}

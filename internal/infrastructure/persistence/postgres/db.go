package postgres

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/blend/internal/infrastructure/config"
)

// NewDB opens the Postgres connection pool and, when enabled, migrates the
// schema.
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// 1. SQL logging only in debug mode
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 2. connect
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// 3. pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))

	// 4. schema
	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		log.Info("database schema migrated")
	}

	return db, nil
}

// Migrate creates or extends every table. It never drops columns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CategoryModel{},
		&SubcategoryModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&UserModel{},
		&VerificationCodeModel{},
		&AdminModel{},
		&BannerModel{},
	)
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/configs"
)

// Connect opens the pool. Callers own the returned handle and close it via Close.
func Connect(cfg configs.DatabaseConfig, debug bool) (*gorm.DB, error) {
	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("connecting to PostgreSQL")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // works behind PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(debug),
		TranslateError: false,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	TunePool(db, cfg)
	log.Info().Msg("DB connected")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DatabaseConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn().Err(err).Msg("pool tune")
		return
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

//go:build integration

// Package dbtest starts a throwaway PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/configs"
	database "fisiocatania_backend/internals/databases"
)

var (
	once    sync.Once
	shared  *gorm.DB
	initErr error
)

// DB returns a migrated database shared by the tests of one package run,
// truncated before it is handed out.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	once.Do(func() { shared, initErr = start() })
	require.NoError(t, initErr)
	Reset(t, shared)
	return shared
}

func start() (*gorm.DB, error) {
	ctx := context.Background()
	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("fisiocatania"),
		postgres.WithUsername("fisio"),
		postgres.WithPassword("fisio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90*time.Second)),
	)
	if err != nil {
		return nil, err
	}
	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}
	db, err := database.Connect(configs.DatabaseConfig{URL: dsn, MaxOpen: 5, MaxIdle: 2}, false)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Reset empties every table and restarts the id sequences.
func Reset(t *testing.T, db *gorm.DB) {
	t.Helper()
	tables := []string{"report_sigle", "token_blacklist", "allegati", "terapie", "operatori", "trattamenti", "distretti", "anagrafica"}
	require.NoError(t, db.Exec("TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE").Error)
}

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL activity log
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL activity log
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DriverFor picks the sql driver from the connection string
func DriverFor(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return DriverPostgres
	}
	return DriverMySQL
}

// New opens the activity log database (MySQL or PostgreSQL)
func New(databaseURL string) (*sqlx.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	db, err := sqlx.Open(DriverFor(databaseURL), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Ping runs a trivial query and reports how long it took
func Ping(ctx context.Context, db *sqlx.DB) (time.Duration, error) {
	start := time.Now()
	var result int
	if err := db.GetContext(ctx, &result, "SELECT 1"); err != nil {
		return 0, fmt.Errorf("failed to execute ping query: %w", err)
	}
	return time.Since(start), nil
}

package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/platform/logger"
)

// NewSQLiteService opens path (":memory:" when empty). SQLite allows a single writer,
// so the pool is pinned to one connection.
func NewSQLiteService(logg *logger.Logger, path string) (*Service, error) {
	serviceLog := logg.With("service", "SQLiteService")
	db, err := OpenSQLite(path, gormConfig())
	if err != nil {
		return nil, err
	}
	serviceLog.Info("opened sqlite", "path", path)
	return &Service{db: db, log: serviceLog, driver: DriverSQLite}, nil
}

func OpenSQLite(path string, cfg *gorm.Config) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = ":memory:"
	}
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

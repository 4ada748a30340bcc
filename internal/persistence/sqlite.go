package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/spec-kit/complaint-service/internal/config"
)

// SQLite wraps a gorm handle on an embedded database file.
type SQLite struct {
	DB *gorm.DB
}

// NewSQLite opens (creating if needed) the database at cfg.Path.
func NewSQLite(cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	db, err := OpenGorm(sqlite.Open(sqliteDSN(cfg.Path)))
	if err != nil {
		return nil, err
	}
	logger.Info("opened sqlite store", zap.String("path", cfg.Path))
	return &SQLite{DB: db}, nil
}

// OpenGorm opens a gorm handle with error translation enabled so unique violations
// surface as gorm.ErrDuplicatedKey.
func OpenGorm(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// Ping verifies the underlying connection.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite store not configured")
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection.
func (s *SQLite) Close() {
	if s == nil || s.DB == nil {
		return
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func sqliteDSN(path string) string {
	// foreign keys are off by default in sqlite; history rows rely on cascading deletes
	return fmt.Sprintf("file:%s?_foreign_keys=on", path)
}

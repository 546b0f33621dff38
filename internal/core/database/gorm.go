package database

import (
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobly/internal/core/config"
	corelog "jobly/internal/core/logger"
)

type Opts struct {
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	SlowThreshold      time.Duration
}

func OptsFrom(c config.DB) Opts {
	return Opts{
		DSN:                c.DSN,
		MaxOpenConns:       c.MaxOpenConns,
		MaxIdleConns:       c.MaxIdleConns,
		ConnMaxLifetimeMin: c.ConnMaxLifetimeMin,
		LogLevel:           c.LogLevel,
	}
}

var ErrEmptyDSN = errors.New("database: empty dsn")

func gormLevel(s string) logger.LogLevel {
	switch s {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// NewGormLogger 把 gorm 日志接到 zap 上
func NewGormLogger(l *zap.Logger, level string, slow time.Duration) logger.Interface {
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	std, err := corelog.ToStdLogger(l.Named("gorm"), zapcore.InfoLevel)
	if err != nil {
		return logger.Default.LogMode(gormLevel(level))
	}
	return logger.New(std, logger.Config{
		SlowThreshold:             slow,
		LogLevel:                  gormLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// NewGorm opens the postgres pool. Queries are raw SQL with $n placeholders.
func NewGorm(o Opts, l *zap.Logger) (*gorm.DB, error) {
	if o.DSN == "" {
		return nil, ErrEmptyDSN
	}
	db, err := gorm.Open(postgres.Open(o.DSN), &gorm.Config{
		Logger:                 NewGormLogger(l, o.LogLevel, o.SlowThreshold),
		SkipDefaultTransaction: true, // 只在需要时手动开 Tx
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	return db, nil
}

// FromSQL wraps an existing *sql.DB, e.g. a sqlmock connection in tests.
func FromSQL(sqlDB *sql.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
}

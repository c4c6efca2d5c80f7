package postgres

import (
	"context"
	"fmt"
	"time"

	"lost-and-found/internal/config"
	"lost-and-found/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// healthTimeout bounds a /health ping so a stuck pool answers 503 instead of hanging.
const healthTimeout = 2 * time.Second

type DB struct {
	*gorm.DB
}

// NewDB opens the pool sized from cfg.Database and pings it once. SQL is
// logged at info outside production.
func NewDB(cfg *config.Config) (*DB, error) {
	level := gormLogger.Info
	if cfg.IsProduction() {
		level = gormLogger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	pool := cfg.Database
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	wrapped := &DB{DB: db}
	if err := wrapped.Health(context.Background()); err != nil {
		return nil, err
	}

	logger.Info("Database connection established",
		zap.String("host", pool.Host),
		zap.String("database", pool.DBName),
		zap.Int("max_open_connections", pool.MaxOpenConns),
		zap.Int("max_idle_connections", pool.MaxIdleConns),
		zap.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
	)

	return wrapped, nil
}

// Wrap adopts an already opened gorm handle, used by integration tests.
func Wrap(db *gorm.DB) *DB {
	return &DB{DB: db}
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health pings the database, giving up after healthTimeout.
func (d *DB) Health(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

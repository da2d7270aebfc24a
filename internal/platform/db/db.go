package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps a gorm handle for either supported dialect.
// Keep transaction helpers here to support outbox + state consistency.
type Database struct {
	DB     *gorm.DB
	Driver string
}

// Connect opens and pings a postgres database.
func Connect(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}
	return ping(db, "postgres")
}

// OpenSQLite opens a sqlite file, creating it if needed. Foreign keys are
// enabled per connection so cascades match postgres.
func OpenSQLite(path string) (*Database, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open gorm sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite sql db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return ping(db, "sqlite")
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

func ping(db *gorm.DB, driver string) (*Database, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve %s sql db handle: %w", driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return &Database{DB: db, Driver: driver}, nil
}

// Migrate runs each migration in order against the handle.
func (d *Database) Migrate(migrations ...func(*gorm.DB) error) error {
	for _, migrate := range migrations {
		if err := migrate(d.DB); err != nil {
			return fmt.Errorf("migrate %s: %w", d.Driver, err)
		}
	}
	return nil
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

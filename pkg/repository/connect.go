package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"droscher.com/CookBook/configs"
	"droscher.com/CookBook/pkg/model"
)

// Repository owns the database handle and hands out units of work.
type Repository struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

const (
	maxIdleTime = 5 * time.Minute
	maxLifetime = time.Hour
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

func Open(conf *configs.Config, logger *zap.Logger) (*Repository, error) {
	dialector, err := dialectorFor(conf.DB)
	if err != nil {
		return nil, err
	}

	gormLogger := zapgorm2.New(logger)
	gormLogger.IgnoreRecordNotFoundError = true
	gormLogger.SetAsDefault()

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if conf.DB.Driver == configs.DriverSQLite {
		// sqlite admits one writer at a time
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(conf.DB.MaxIdleConnections)
		sqlDB.SetMaxOpenConns(conf.DB.MaxOpenConnections)
	}

	sqlDB.SetConnMaxIdleTime(maxIdleTime)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	return &Repository{DB: db, Logger: logger}, nil
}

func dialectorFor(conf configs.DB) (gorm.Dialector, error) {
	switch conf.Driver {
	case configs.DriverSQLite:
		return sqlite.Open(conf.Path + "?_pragma=foreign_keys(1)"), nil
	case configs.DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			conf.Host, conf.User, conf.Password, conf.Database, conf.Port)

		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, conf.Driver)
	}
}

// Migrate creates any missing tables, columns and constraints. It never drops anything.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(model.Models()...)
}

// Session runs fn inside a unit of work. The work is committed when fn returns nil and rolled
// back when fn returns an error or panics; a panic is re-raised after the rollback.
func (r *Repository) Session(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.DB.WithContext(ctx).Transaction(fn)
}

func (r *Repository) Close() {
	sqlDB, err := r.DB.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

package postgres

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Schema holding every relational table of the service.
const Schema = "gym_app"

// Options describes how to reach the relational store.
type Options struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

func (o Options) DSN() string {
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		o.Host, o.Port, o.User, o.Password, o.Name, sslMode,
	)
}

// Connect opens a gorm pool and pings the server. When AutoMigrate is set the
// schema, tables and the partial unique index on active assignments are created.
func Connect(ctx context.Context, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(opts.DSN()), &gorm.Config{
		// Maps unique violations to gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if opts.AutoMigrate {
		if err := migrate(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		log.Infof("postgres schema %s migrated", Schema)
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func migrate(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	if err := tx.Exec("CREATE SCHEMA IF NOT EXISTS " + Schema).Error; err != nil {
		return err
	}
	if err := tx.AutoMigrate(
		&identityRow{},
		&assignmentRow{},
		&userMonthlyStatRow{},
		&instructorMonthlyStatRow{},
	); err != nil {
		return err
	}
	return tx.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS assignment_one_active_per_user ON " +
			Schema + ".assignment (user_id) WHERE end_date IS NULL",
	).Error
}

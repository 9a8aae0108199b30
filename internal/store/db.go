// Package store persists plans, users and the settings singleton in SQLite
// through GORM.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	bnccdoc "github.com/alnah/go-bnccdoc"
)

// Sentinel errors for store operations.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrOpen           = errors.New("failed to open database")
	ErrMigrate        = errors.New("database migration failed")
)

// sqliteParams are appended to file paths without their own query string.
const sqliteParams = "_busy_timeout=5000&_foreign_keys=on"

// slowQuery is the threshold above which GORM logs a statement as slow.
const slowQuery = 500 * time.Millisecond

// Open connects to the SQLite database at path and runs Migrate.
// A nil logger disables statement logging.
func Open(ctx context.Context, path string, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?" + sqliteParams
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             slowQuery,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY churn.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("database ready", zap.String("path", path))
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

// Migrate creates or updates the tables and seeds settings row 1 with the
// institutional defaults. Existing settings are left untouched.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&userModel{}, &planModel{}, &settingsModel{}); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	seed := settingsFromDomain(bnccdoc.DefaultSettings())
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error
	if err != nil {
		return fmt.Errorf("%w: seeding settings: %v", ErrMigrate, err)
	}
	return nil
}

// Store groups the repositories sharing one database handle.
type Store struct {
	Plans    PlanRepository
	Users    UserRepository
	Settings SettingsRepository
}

// New creates the repositories over db.
func New(db *gorm.DB) *Store {
	return &Store{
		Plans:    NewPlanRepo(db),
		Users:    NewUserRepo(db),
		Settings: NewSettingsRepo(db),
	}
}

// notFound maps GORM's missing-record error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

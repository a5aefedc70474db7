package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"payflow/models"
)

// Store owns every collection the service works on. Handlers and services
// receive it explicitly; there is no package-level database handle.
type Store struct {
	db *gorm.DB

	Employees   *EmployeeRepo
	Departments *DepartmentRepo
	Attendance  *AttendanceRepo
	Settings    *SettingsRepo
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Employees:   &EmployeeRepo{db: db},
		Departments: &DepartmentRepo{db: db},
		Attendance:  &AttendanceRepo{db: db},
		Settings:    &SettingsRepo{db: db},
	}
}

// Open connects to the SQLite database at path (":memory:" keeps everything
// in process memory), migrates the schema and seeds the default settings.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// One connection: an in-memory database exists per connection, and a
	// single connection also serializes writers.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	s := New(db)
	if err := s.Migrate(context.Background()); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Info("Database ready", zap.String("path", path))
	return s, nil
}

// Migrate creates the tables and seeds the settings row when it is missing.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&models.Employee{},
		&models.Department{},
		&models.Attendance{},
		&models.Settings{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	defaults := models.DefaultSettings()
	if err := s.db.WithContext(ctx).Where("id = ?", models.SettingsID).FirstOrCreate(&defaults).Error; err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

// Transaction runs fn against a Store bound to a single transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package services

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"payflow/store"
)

// Clock reports the current wall-clock time. Attendance days and check-in
// classification are derived from it, so it should already be in the
// company's time zone.
type Clock func() time.Time

type Options struct {
	DefaultPassword string
	BcryptCost      int
	JWTSecret       string
	TokenExpiry     time.Duration
	Currency        string
	Clock           Clock
}

// Services bundles the business services over one store.
type Services struct {
	Settings    *SettingsService
	Departments *DepartmentService
	Employees   *EmployeeService
	Attendance  *AttendanceService
	Auth        *AuthService
	Reports     *ReportService
}

func New(st *store.Store, opts Options, logger *zap.Logger) *Services {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Currency == "" {
		opts.Currency = "KES"
	}

	tokens := NewTokenManager(opts.JWTSecret, opts.TokenExpiry, opts.Clock)

	return &Services{
		Settings:    NewSettingsService(st, logger),
		Departments: NewDepartmentService(st, logger),
		Employees:   NewEmployeeService(st, opts.DefaultPassword, opts.BcryptCost, opts.Clock, logger),
		Attendance:  NewAttendanceService(st, opts.Clock, logger),
		Auth:        NewAuthService(st, tokens, opts.BcryptCost, opts.Clock, logger),
		Reports:     NewReportService(st, opts.Currency, opts.Clock, logger),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

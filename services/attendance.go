package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"payflow/models"
	"payflow/store"
)

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

// Check-in before earlyCutoff is early; from lateFrom on it is late.
const (
	earlyCutoffHour   = 8
	earlyCutoffMinute = 30
	lateFromHour      = 9
)

type MarkAttendanceRequest struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Action     string `json:"action"`
}

type BulkAttendanceRecord struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Status     string `json:"status"`
}

type BulkAttendanceRequest struct {
	Date    string                 `json:"date"`
	Records []BulkAttendanceRecord `json:"records" validate:"dive"`
}

type ListAttendanceRequest struct {
	Date       string
	EmployeeID *uint
}

// DayStatus is an employee's attendance state for today.
type DayStatus struct {
	Status     string             `json:"status"`
	Attendance *models.Attendance `json:"attendance,omitempty"`
}

// Classification is the outcome of checking in at a given time.
type Classification struct {
	Status   string
	Points   int
	IsEarly  bool
	IsOnTime bool
}

// Classify maps a check-in time to a status and the points it earns.
func Classify(at time.Time, settings models.Settings) Classification {
	hour, minute := at.Hour(), at.Minute()
	c := Classification{
		IsEarly:  hour < earlyCutoffHour || (hour == earlyCutoffHour && minute < earlyCutoffMinute),
		IsOnTime: hour < lateFromHour,
	}

	switch {
	case hour >= lateFromHour:
		c.Status = models.StatusLate
	case c.IsEarly:
		c.Status = models.StatusEarly
		c.Points = settings.EarlyPoints
	default:
		c.Status = models.StatusPresent
		c.Points = settings.OnTimePoints
	}
	return c
}

// pointsForStatus is the award table used when a status is given directly.
func pointsForStatus(status string, settings models.Settings) int {
	switch status {
	case models.StatusEarly:
		return settings.EarlyPoints
	case models.StatusPresent:
		return settings.OnTimePoints
	default:
		return 0
	}
}

type AttendanceService struct {
	store  *store.Store
	now    Clock
	logger *zap.Logger
}

func NewAttendanceService(st *store.Store, now Clock, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{store: st, now: now, logger: logger}
}

// Mark dispatches a check-in or check-out for today.
func (s *AttendanceService) Mark(ctx context.Context, req *MarkAttendanceRequest) (*models.Attendance, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.store.Employees.GetByID(ctx, req.EmployeeID); err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	switch req.Action {
	case ActionCheckIn:
		return s.CheckIn(ctx, req.EmployeeID)
	case ActionCheckOut:
		return s.CheckOut(ctx, req.EmployeeID)
	default:
		return nil, ErrInvalidAction
	}
}

// CheckIn creates today's record for the employee and credits the points
// the check-in time earns. Points are never taken back later.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID uint) (*models.Attendance, error) {
	now := s.now()
	today := now.Format(models.DateLayout)

	var record *models.Attendance
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.Employees.GetByID(ctx, employeeID); err != nil {
			if isNotFound(err) {
				return ErrEmployeeNotFound
			}
			return err
		}

		if _, err := tx.Attendance.GetForDay(ctx, employeeID, today); err == nil {
			return ErrAlreadyCheckedIn
		} else if !isNotFound(err) {
			return err
		}

		settings, err := tx.Settings.Get(ctx)
		if err != nil {
			return err
		}
		c := Classify(now, *settings)

		record = &models.Attendance{
			EmployeeID:   employeeID,
			Date:         today,
			Status:       c.Status,
			CheckInTime:  now.Format(models.ClockLayout),
			PointsEarned: c.Points,
			IsEarly:      c.IsEarly,
			IsOnTime:     c.IsOnTime,
		}
		if err := tx.Attendance.Create(ctx, record); err != nil {
			return err
		}
		return tx.Employees.AddPoints(ctx, employeeID, c.Points)
	})
	if err != nil {
		return nil, s.attendanceError("Failed to check in", err)
	}

	s.logger.Info("Attendance marked",
		zap.Uint("employee_id", employeeID),
		zap.String("status", record.Status),
		zap.Int("points", record.PointsEarned),
	)
	return record, nil
}

// CheckOut stamps the check-out time on today's record, once.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID uint) (*models.Attendance, error) {
	now := s.now()
	today := now.Format(models.DateLayout)

	var record *models.Attendance
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		existing, err := tx.Attendance.GetForDay(ctx, employeeID, today)
		if err != nil {
			if isNotFound(err) {
				return ErrNotCheckedIn
			}
			return err
		}
		if existing.CheckOutTime != nil {
			return ErrAlreadyCheckedOut
		}

		checkOut := now.Format(models.ClockLayout)
		existing.CheckOutTime = &checkOut
		if err := tx.Attendance.Save(ctx, existing); err != nil {
			return err
		}
		record = existing
		return nil
	})
	if err != nil {
		return nil, s.attendanceError("Failed to check out", err)
	}

	s.logger.Info("Check-out recorded", zap.Uint("employee_id", employeeID))
	return record, nil
}

// Today reports whether the employee has not marked, clocked in or clocked
// out today.
func (s *AttendanceService) Today(ctx context.Context, employeeID uint) (*DayStatus, error) {
	if _, err := s.store.Employees.GetByID(ctx, employeeID); err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	today := s.now().Format(models.DateLayout)
	record, err := s.store.Attendance.GetForDay(ctx, employeeID, today)
	if err != nil {
		if isNotFound(err) {
			return &DayStatus{Status: models.DayNotMarked}, nil
		}
		return nil, err
	}

	if record.CheckOutTime != nil {
		return &DayStatus{Status: models.DayClockedOut, Attendance: record}, nil
	}
	return &DayStatus{Status: models.DayClockedIn, Attendance: record}, nil
}

func (s *AttendanceService) List(ctx context.Context, req *ListAttendanceRequest) ([]models.Attendance, error) {
	if req.Date != "" {
		if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
			return nil, invalid("Invalid date %q, expected YYYY-MM-DD", req.Date)
		}
	}

	records, err := s.store.Attendance.List(ctx, store.AttendanceFilter{
		Date:       req.Date,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		s.logger.Error("Failed to list attendance", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// BulkMark sets a status for several employees on one day. An existing
// record only has its status overwritten and its points stay as they were;
// a new record earns points by the given status, when the employee exists.
func (s *AttendanceService) BulkMark(ctx context.Context, req *BulkAttendanceRequest) ([]models.Attendance, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = s.now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, invalid("Invalid date %q, expected YYYY-MM-DD", date)
	}

	marked := make([]models.Attendance, 0, len(req.Records))
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		settings, err := tx.Settings.Get(ctx)
		if err != nil {
			return err
		}

		for _, r := range req.Records {
			status := r.Status
			if status == "" {
				status = models.StatusPresent
			}

			existing, err := tx.Attendance.GetForDay(ctx, r.EmployeeID, date)
			switch {
			case err == nil:
				existing.Status = status
				if err := tx.Attendance.Save(ctx, existing); err != nil {
					return err
				}
				marked = append(marked, *existing)
				continue
			case !isNotFound(err):
				return err
			}

			record := models.Attendance{
				EmployeeID: r.EmployeeID,
				Date:       date,
				Status:     status,
				IsEarly:    status == models.StatusEarly,
				IsOnTime:   status == models.StatusEarly || status == models.StatusPresent,
			}

			points := pointsForStatus(status, *settings)
			if _, err := tx.Employees.GetByID(ctx, r.EmployeeID); err == nil {
				record.PointsEarned = points
			} else if !isNotFound(err) {
				return err
			}

			if err := tx.Attendance.Create(ctx, &record); err != nil {
				return err
			}
			if record.PointsEarned > 0 {
				if err := tx.Employees.AddPoints(ctx, r.EmployeeID, record.PointsEarned); err != nil {
					return err
				}
			}
			marked = append(marked, record)
		}
		return nil
	})
	if err != nil {
		return nil, s.attendanceError("Failed to bulk mark attendance", err)
	}

	s.logger.Info("Bulk attendance marked", zap.String("date", date), zap.Int("records", len(marked)))
	return marked, nil
}

func (s *AttendanceService) attendanceError(msg string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyCheckedIn
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEmployeeNotFound),
		errors.Is(err, ErrAlreadyCheckedIn),
		errors.Is(err, ErrNotCheckedIn),
		errors.Is(err, ErrAlreadyCheckedOut):
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

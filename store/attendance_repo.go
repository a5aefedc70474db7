package store

import (
	"context"

	"gorm.io/gorm"

	"payflow/models"
)

type AttendanceRepo struct {
	db *gorm.DB
}

// AttendanceFilter narrows List; zero fields are ignored.
type AttendanceFilter struct {
	Date       string
	EmployeeID *uint
}

func (r *AttendanceRepo) Create(ctx context.Context, record *models.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *AttendanceRepo) GetForDay(ctx context.Context, employeeID uint, date string) (*models.Attendance, error) {
	var record models.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepo) List(ctx context.Context, filter AttendanceFilter) ([]models.Attendance, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{})
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	var records []models.Attendance
	err := query.Order("id").Find(&records).Error
	return records, err
}

// Recent returns the employee's last limit records, oldest first.
func (r *AttendanceRepo) Recent(ctx context.Context, employeeID uint, limit int) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (r *AttendanceRepo) Save(ctx context.Context, record *models.Attendance) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *AttendanceRepo) CountForDay(ctx context.Context, date string, statuses ...string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{}).Where("date = ?", date)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

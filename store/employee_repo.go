package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"payflow/models"
)

type EmployeeRepo struct {
	db *gorm.DB
}

func (r *EmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).Order("id").Find(&employees).Error
	return employees, err
}

// Save writes every column of employee, zero values included.
func (r *EmployeeRepo) Save(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *EmployeeRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Employee{}, id).Error
}

func (r *EmployeeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error
	return count, err
}

func (r *EmployeeRepo) CountByDepartment(ctx context.Context, departmentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

// CountsByDepartment returns department id -> number of employees in it.
func (r *EmployeeRepo) CountsByDepartment(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		DepartmentID uint
		Count        int64
	}
	err := r.db.WithContext(ctx).Model(&models.Employee{}).
		Select("department_id, COUNT(*) AS count").
		Where("department_id IS NOT NULL").
		Group("department_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.DepartmentID] = row.Count
	}
	return counts, nil
}

// AddPoints increments the employee's points in place.
func (r *EmployeeRepo) AddPoints(ctx context.Context, id uint, delta int) error {
	result := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConsumeOneTimePassword flips password_used from false to true. It reports
// false when the password had already been consumed.
func (r *EmployeeRepo) ConsumeOneTimePassword(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ? AND password_used = ?", id, false).
		UpdateColumn("password_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// SetPassword stores a password the employee chose and clears the
// must-change flag.
func (r *EmployeeRepo) SetPassword(ctx context.Context, id uint, hash string, changedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        hash,
			"password_used":        true,
			"must_change_password": false,
			"password_changed_at":  changedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

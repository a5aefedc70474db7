package models

import (
	"time"
)

// Attendance statuses. Bulk marking may store other labels; they earn nothing.
const (
	StatusEarly   = "early"
	StatusPresent = "present"
	StatusLate    = "late"
)

// Per-day attendance states of an employee.
const (
	DayNotMarked  = "not_marked"
	DayClockedIn  = "clocked_in"
	DayClockedOut = "clocked_out"
)

const DateLayout = "2006-01-02"
const ClockLayout = "15:04:05"

type Employee struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string     `gorm:"not null" json:"name"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	DepartmentID       *uint      `gorm:"index" json:"department_id"`
	BaseSalary         float64    `gorm:"not null" json:"base_salary"`
	Allowances         float64    `gorm:"not null;default:0" json:"allowances"`
	Deductions         float64    `gorm:"not null;default:0" json:"deductions"`
	Points             int        `gorm:"not null;default:0" json:"points"`
	IsPromoted         bool       `gorm:"not null;default:false" json:"is_promoted"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	PasswordUsed       bool       `gorm:"not null;default:false" json:"password_used"`
	MustChangePassword bool       `gorm:"not null;default:true" json:"must_change_password"`
	PasswordChangedAt  *time.Time `json:"password_changed_at,omitempty"`
	HireDate           time.Time  `json:"hire_date"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type Department struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Manager   string    `json:"manager"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attendance is one employee's record for one calendar day. EmployeeID has no
// foreign key: records outlive the employee they belong to.
type Attendance struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID   uint      `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Date         string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_employee_date;index" json:"date"`
	Status       string    `gorm:"not null" json:"status"`
	CheckInTime  string    `json:"check_in_time,omitempty"`
	CheckOutTime *string   `json:"check_out_time"`
	PointsEarned int       `gorm:"not null;default:0" json:"points_earned"`
	IsEarly      bool      `json:"is_early"`
	IsOnTime     bool      `json:"is_on_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Settings is a singleton row; SettingsID is its primary key.
type Settings struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	RaiseAfterYears int       `gorm:"not null" json:"raise_after_years"`
	RaisePercentage float64   `gorm:"not null" json:"raise_percentage"`
	PointValue      float64   `gorm:"not null" json:"point_value"`
	PaymentMethod   string    `gorm:"not null" json:"payment_method"`
	EarlyPoints     int       `gorm:"not null" json:"early_points"`
	OnTimePoints    int       `gorm:"not null" json:"on_time_points"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const SettingsID = 1

// DefaultSettings is what a fresh store is seeded with.
func DefaultSettings() Settings {
	return Settings{
		ID:              SettingsID,
		RaiseAfterYears: 2,
		RaisePercentage: 10.0,
		PointValue:      100.0,
		PaymentMethod:   "Bank Transfer",
		EarlyPoints:     5,
		OnTimePoints:    3,
	}
}

package leave

import (
	"time"

	"leave-portal/internal/employee"

	"github.com/google/uuid"
)

const (
	TypeAnnual    = "annual"
	TypeSick      = "sick"
	TypePersonal  = "personal"
	TypeRelax     = "relax"
	TypeUnpaid    = "unpaid"
	TypeMaternity = "maternity"
	TypeOther     = "other"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Leave struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`
	Employee   *employee.Employee `gorm:"constraint:OnDelete:CASCADE"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	Reason    string    `gorm:"type:text;not null;default:''"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index"`

	// Deducted records whether this request's days are currently subtracted
	// from the employee's balance. Only the reconciliation engine flips it.
	Deducted bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

package auth

import (
	"time"

	"leave-portal/internal/employee"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleLead     = "lead"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User is the login account. Every account points at exactly one employee
// record; the role on the account decides what the portal lets it do.
type User struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Username     string             `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string             `gorm:"size:255;not null"`
	Role         string             `gorm:"size:20;not null;default:'employee'"`
	EmployeeID   uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null"`
	Employee     *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleLead, RoleManager, RoleAdmin:
		return true
	}
	return false
}

package employee

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(100);not null;uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(200);not null"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Position string    `gorm:"type:varchar(100);not null;default:''"`

	TeamID     *uuid.UUID `gorm:"type:uuid;index"`
	Team       *Team      `gorm:"constraint:OnDelete:SET NULL"`
	IsTeamLead bool       `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

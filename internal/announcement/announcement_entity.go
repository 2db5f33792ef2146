package announcement

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a portal-wide notice. Pinned ones sort first; an expired
// one drops out of the default listing but stays queryable by managers.
type Announcement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	Body        string    `gorm:"type:text;not null"`
	Pinned      bool      `gorm:"not null;default:false"`
	PublishedAt time.Time `gorm:"not null"`
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package holiday

import (
	"time"

	"github.com/google/uuid"
)

// Holiday is a single company-wide day off. Requests overlapping one are
// still accepted, the portal just flags the overlap to the requester.
type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:200;not null"`
	Date      time.Time `gorm:"type:date;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

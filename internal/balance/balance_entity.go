package balance

import (
	"time"

	"github.com/google/uuid"
)

// Default grants handed to an employee when their balance row is first created.
const (
	DefaultAnnual    = 10
	DefaultSick      = 30
	DefaultPersonal  = 5
	DefaultRelax     = 0
	DefaultMaternity = 0
	DefaultOther     = 0
)

// Counter column names. The reconciliation engine addresses counters by these
// names; "unpaid" leave has no counter on purpose.
const (
	FieldAnnual    = "annual_leave"
	FieldSick      = "sick_leave"
	FieldPersonal  = "personal_leave"
	FieldRelax     = "relax_leave"
	FieldMaternity = "maternity_leave"
	FieldOther     = "other_leave"
)

type Balance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	AnnualLeave    int `gorm:"type:int;not null;default:10"`
	SickLeave      int `gorm:"type:int;not null;default:30"`
	PersonalLeave  int `gorm:"type:int;not null;default:5"`
	RelaxLeave     int `gorm:"type:int;not null;default:0"`
	MaternityLeave int `gorm:"type:int;not null;default:0"`
	OtherLeave     int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Balance) counter(field string) *int {
	switch field {
	case FieldAnnual:
		return &b.AnnualLeave
	case FieldSick:
		return &b.SickLeave
	case FieldPersonal:
		return &b.PersonalLeave
	case FieldRelax:
		return &b.RelaxLeave
	case FieldMaternity:
		return &b.MaternityLeave
	case FieldOther:
		return &b.OtherLeave
	default:
		return nil
	}
}

// Get returns the counter value, or 0 for an unknown field.
func (b *Balance) Get(field string) int {
	if c := b.counter(field); c != nil {
		return *c
	}
	return 0
}

// Add applies a signed delta to the named counter: positive days refund,
// negative days deduct. The counter floors at 0 rather than going negative.
// An unknown field is a no-op and returns false.
func (b *Balance) Add(field string, days int) bool {
	c := b.counter(field)
	if c == nil {
		return false
	}
	next := *c + days
	if next < 0 {
		next = 0
	}
	*c = next
	return true
}

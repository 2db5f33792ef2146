package balance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetOrCreate(ctx context.Context, employeeID uuid.UUID) (*Balance, error)
	GetOrCreateForUpdate(ctx context.Context, employeeID uuid.UUID) (*Balance, error)
	Save(ctx context.Context, b *Balance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// ensure inserts the row if absent. ON CONFLICT DO NOTHING makes concurrent
// first-access safe: exactly one row per employee, no duplicate-key error.
func (r *repository) ensure(ctx context.Context, employeeID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO balances (
			id, employee_id,
			annual_leave, sick_leave, personal_leave,
			relax_leave, maternity_leave, other_leave,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (employee_id) DO NOTHING
	`, uuid.New(), employeeID,
		DefaultAnnual, DefaultSick, DefaultPersonal,
		DefaultRelax, DefaultMaternity, DefaultOther,
	).Error
}

func (r *repository) GetOrCreate(ctx context.Context, employeeID uuid.UUID) (*Balance, error) {
	if err := r.ensure(ctx, employeeID); err != nil {
		return nil, err
	}
	var b Balance
	err := r.db.WithContext(ctx).
		First(&b, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetOrCreateForUpdate takes the row lock that serializes reconciliation.
// Must run inside the caller's transaction or the lock is released at once.
func (r *repository) GetOrCreateForUpdate(ctx context.Context, employeeID uuid.UUID) (*Balance, error) {
	if err := r.ensure(ctx, employeeID); err != nil {
		return nil, err
	}
	var b Balance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Save(ctx context.Context, b *Balance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows the query surface; scoping by role is the service's job,
// the repository just applies whatever the caller resolved.
type ListFilter struct {
	EmployeeID        *uuid.UUID
	TeamID            *uuid.UUID
	ExcludeEmployeeID *uuid.UUID
	Status            string
	LeaveType         string
	// OverlapsFrom/OverlapsTo select requests whose date range touches the
	// window (end >= from, start <= to).
	OverlapsFrom *time.Time
	OverlapsTo   *time.Time
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	List(ctx context.Context, f ListFilter) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error

	// ActiveOn returns approved requests covering the given day, employee
	// preloaded, for the daily digest.
	ActiveOn(ctx context.Context, day time.Time) ([]Leave, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Team").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Leave, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Preload("Employee").
		Preload("Employee.Team")

	if f.EmployeeID != nil {
		db = db.Where("leaves.employee_id = ?", *f.EmployeeID)
	}
	if f.TeamID != nil {
		db = db.Joins("JOIN employees ON employees.id = leaves.employee_id").
			Where("employees.team_id = ?", *f.TeamID)
	}
	if f.ExcludeEmployeeID != nil {
		db = db.Where("leaves.employee_id <> ?", *f.ExcludeEmployeeID)
	}
	if f.Status != "" {
		db = db.Where("leaves.status = ?", f.Status)
	}
	if f.LeaveType != "" {
		db = db.Where("leaves.leave_type = ?", f.LeaveType)
	}
	if f.OverlapsFrom != nil {
		db = db.Where("leaves.end_date >= ?", *f.OverlapsFrom)
	}
	if f.OverlapsTo != nil {
		db = db.Where("leaves.start_date <= ?", *f.OverlapsTo)
	}
	if f.CreatedFrom != nil {
		db = db.Where("leaves.created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		db = db.Where("leaves.created_at < ?", *f.CreatedTo)
	}

	var leaves []Leave
	err := db.Order("leaves.created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) ActiveOn(ctx context.Context, day time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Team").
		Where("status = ?", StatusApproved).
		Where("start_date <= ?", day).
		Where("end_date >= ?", day).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

package announcement

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	Search         string
	IncludeExpired bool
	Offset         int
	Limit          int
}

type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	FindByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, f ListFilter) ([]Announcement, int64, error)
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Announcement, error) {
	var a Announcement
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Announcement, int64, error) {
	db := r.db.WithContext(ctx).Model(&Announcement{})

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		db = db.Where("title ILIKE ? OR body ILIKE ?", pattern, pattern)
	}
	if !f.IncludeExpired {
		db = db.Where("expires_at IS NULL OR expires_at > ?", time.Now())
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var announcements []Announcement
	err := db.Order("pinned DESC, published_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&announcements).Error
	return announcements, total, err
}

func (r *repository) Update(ctx context.Context, a *Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Announcement{}, "id = ?", id).Error
}

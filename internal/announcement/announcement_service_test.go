package announcement

import (
	"context"
	"testing"
	"time"

	announcementerrors "leave-portal/internal/announcement/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	items      map[string]Announcement
	lastFilter ListFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Announcement{}}
}

func (r *fakeRepo) Create(ctx context.Context, a *Announcement) error {
	r.items[a.ID.String()] = *a
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeRepo) List(ctx context.Context, f ListFilter) ([]Announcement, int64, error) {
	r.lastFilter = f
	var out []Announcement
	for _, a := range r.items {
		if !f.IncludeExpired && a.ExpiresAt != nil && a.ExpiresAt.Before(time.Now()) {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) Update(ctx context.Context, a *Announcement) error {
	r.items[a.ID.String()] = *a
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func TestAnnouncementCreateAndGet(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), CreateAnnouncementRequest{
		Title:  "Office closed",
		Body:   "The office is closed on Friday.",
		Pinned: true,
	})
	assert.NoError(t, err)
	assert.True(t, created.Pinned)

	got, err := svc.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Office closed", got.Title)
}

func TestAnnouncementCreateRejectsBadExpiry(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateAnnouncementRequest{
		Title:     "Bad",
		Body:      "x",
		ExpiresAt: "next tuesday",
	})
	assert.ErrorIs(t, err, announcementerrors.ErrInvalidTimeFormat)
}

func TestAnnouncementListHidesExpiredForEmployees(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	_, err := svc.Create(context.Background(), CreateAnnouncementRequest{
		Title: "Old news", Body: "x", ExpiresAt: past,
	})
	assert.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateAnnouncementRequest{
		Title: "Current", Body: "y",
	})
	assert.NoError(t, err)

	visible, meta, err := svc.GetAll(context.Background(), ListQuery{}, false)
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, int64(1), meta.Total)

	// include_expired only works for managers.
	_, _, err = svc.GetAll(context.Background(), ListQuery{IncludeExpired: true}, false)
	assert.NoError(t, err)
	assert.False(t, repo.lastFilter.IncludeExpired)

	all, _, err := svc.GetAll(context.Background(), ListQuery{IncludeExpired: true}, true)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAnnouncementDeleteUnknown(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop())

	err := svc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, announcementerrors.ErrAnnouncementNotFound)
}

package announcement

import (
	"context"
	"errors"
	"time"

	announcementerrors "leave-portal/internal/announcement/errors"
	"leave-portal/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPageSize = 20

type Service interface {
	Create(ctx context.Context, req CreateAnnouncementRequest) (AnnouncementResponse, error)
	GetAll(ctx context.Context, q ListQuery, isManager bool) ([]AnnouncementResponse, response.PaginationMeta, error)
	GetByID(ctx context.Context, id string) (AnnouncementResponse, error)
	Update(ctx context.Context, id string, req UpdateAnnouncementRequest) (AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("announcement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("announcement.service")
	}
	return &service{repo: repo, logger: l}
}

func parseExpiry(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, announcementerrors.ErrInvalidTimeFormat
	}
	return &t, nil
}

func (s *service) Create(ctx context.Context, req CreateAnnouncementRequest) (AnnouncementResponse, error) {
	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return AnnouncementResponse{}, err
	}

	a := &Announcement{
		ID:          uuid.New(),
		Title:       req.Title,
		Body:        req.Body,
		Pinned:      req.Pinned,
		PublishedAt: time.Now(),
		ExpiresAt:   expiresAt,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create announcement failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}

	s.logger.Info("announcement created",
		zap.String("announcement_id", a.ID.String()),
		zap.Bool("pinned", a.Pinned),
	)
	return MapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, q ListQuery, isManager bool) ([]AnnouncementResponse, response.PaginationMeta, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}

	f := ListFilter{
		Search:         q.Search,
		IncludeExpired: q.IncludeExpired && isManager,
		Offset:         (page - 1) * limit,
		Limit:          limit,
	}

	announcements, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}
	return MapToListResponse(announcements), response.NewPaginationMeta(total, page, limit), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AnnouncementResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return AnnouncementResponse{}, err
	}
	return MapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAnnouncementRequest) (AnnouncementResponse, error) {
	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return AnnouncementResponse{}, err
	}

	a, err := s.find(ctx, id)
	if err != nil {
		return AnnouncementResponse{}, err
	}

	a.Title = req.Title
	a.Body = req.Body
	a.Pinned = req.Pinned
	a.ExpiresAt = expiresAt
	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("update announcement failed", zap.String("announcement_id", id), zap.Error(err))
		return AnnouncementResponse{}, err
	}
	return MapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) find(ctx context.Context, id string) (*Announcement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, announcementerrors.ErrInvalidAnnouncementID
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, announcementerrors.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return a, nil
}

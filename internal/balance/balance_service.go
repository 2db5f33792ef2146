package balance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheTTL = 30 * time.Second

type Service interface {
	GetBalance(ctx context.Context, employeeID uuid.UUID) (BalanceResponse, error)
	Invalidate(ctx context.Context, employeeID uuid.UUID)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

// NewService wires the read-only query surface. Display reads go through a
// short-lived redis cache and do not take the reconciliation lock; rdb may be
// nil, which disables caching.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func cacheKey(employeeID uuid.UUID) string {
	return "balance:" + employeeID.String()
}

func (s *service) GetBalance(ctx context.Context, employeeID uuid.UUID) (BalanceResponse, error) {
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey(employeeID)).Result(); err == nil {
			var resp BalanceResponse
			if err := json.Unmarshal([]byte(val), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Collapse a stampede of concurrent reads for one employee into a single
	// database round trip.
	v, err, _ := s.group.Do(employeeID.String(), func() (any, error) {
		b, err := s.repo.GetOrCreate(ctx, employeeID)
		if err != nil {
			return BalanceResponse{}, err
		}
		resp := MapToResponse(*b)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey(employeeID), payload, cacheTTL).Err(); err != nil {
					s.logger.Warn("balance cache set failed",
						zap.String("employee_id", employeeID.String()),
						zap.Error(err),
					)
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get balance failed",
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}
	return v.(BalanceResponse), nil
}

// Invalidate drops the cached snapshot after a reconciliation commits.
func (s *service) Invalidate(ctx context.Context, employeeID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey(employeeID)).Err(); err != nil {
		s.logger.Warn("balance cache invalidate failed",
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
	}
}

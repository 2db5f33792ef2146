package employee

import (
	"context"
	"errors"

	"leave-portal/internal/balance"
	employeeerrors "leave-portal/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	CreateTeam(ctx context.Context, req CreateTeamRequest) (TeamResponse, error)
	GetTeams(ctx context.Context) ([]TeamResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	balances balance.Repository
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, balances balance.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, balances: balances, logger: l}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create provisions an employee together with their quota balance so the
// 1:1 invariant holds from the first moment the record exists.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested", zap.String("email", req.Email))

	teamID, err := parseOptionalTeamID(req.TeamID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:         uuid.New(),
		FullName:   req.FullName,
		Email:      req.Email,
		Position:   req.Position,
		TeamID:     teamID,
		IsTeamLead: req.IsLead,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
			return err
		}
		if _, err := s.balances.WithTx(tx).GetOrCreate(ctx, e.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("create employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success", zap.String("employee_id", e.ID.String()))
	return MapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return MapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	teamID, err := parseOptionalTeamID(req.TeamID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	e.FullName = req.FullName
	e.Position = req.Position
	e.TeamID = teamID
	e.Team = nil
	e.IsTeamLead = req.IsLead

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return MapToResponse(*e), nil
}

// Delete removes the employee. Leave requests go with it through the FK
// cascade; the balance row has no FK back to employees, so it is removed in
// the same transaction.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM balances WHERE employee_id = ?`, id).Error
	})
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) CreateTeam(ctx context.Context, req CreateTeamRequest) (TeamResponse, error) {
	t := &Team{ID: uuid.New(), Name: req.Name}
	if err := s.repo.CreateTeam(ctx, t); err != nil {
		if isUniqueViolation(err) {
			return TeamResponse{}, employeeerrors.ErrTeamNameTaken
		}
		return TeamResponse{}, err
	}
	return TeamResponse{ID: t.ID.String(), Name: t.Name}, nil
}

func (s *service) GetTeams(ctx context.Context) ([]TeamResponse, error) {
	teams, err := s.repo.FindAllTeams(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]TeamResponse, len(teams))
	for i, t := range teams {
		resp[i] = TeamResponse{ID: t.ID.String(), Name: t.Name}
	}
	return resp, nil
}

func parseOptionalTeamID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, employeeerrors.ErrInvalidTeamID
	}
	return &id, nil
}
